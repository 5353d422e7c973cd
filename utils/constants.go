package utils

// Application constants
const (
	// Application name
	AppName = "OrderSphere"

	// API version
	APIVersion = "v1"

	// Minimum length of a client password
	MinPasswordLength = 6

	// Number of payments shown in the client's payment history
	RecentPaymentsLimit = 5

	// Number of featured offers shown on the dashboard
	FeaturedOffersLimit = 3

	// Days of order history visible to a client
	OrderHistoryDays = 365
)

// Context keys
const (
	ContextClientKey = "client"
	ContextAdminKey  = "admin"
	ContextTokenKey  = "token"
	ContextClaimsKey = "claims"
)
