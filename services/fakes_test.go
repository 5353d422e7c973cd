package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/pricing"
	"github.com/Govind-619/OrderSphere/repository"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var (
	testNow   = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
	testClock = Clock(func() time.Time { return testNow })
	errBoom   = errors.New("boom")
)

func day(s string) time.Time {
	d, err := pricing.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func product(id uint, name string, price float64, stock int) models.Product {
	return models.Product{
		Model:     gorm.Model{ID: id},
		Code:      "P" + name[:1],
		Name:      name,
		BasePrice: price,
		Stock:     stock,
		Brand:     &models.Brand{Name: "Acme"},
	}
}

func offer(id uint, kind pricing.Kind, mode pricing.PriceMode, value float64, start, end string, products ...models.Product) models.Offer {
	o := models.Offer{
		Model:      gorm.Model{ID: id},
		Title:      "Offer " + string(rune('A'+id-1)),
		Kind:       string(kind),
		PriceMode:  string(mode),
		PriceValue: value,
		IsActive:   true,
		StartDate:  day(start),
		EndDate:    day(end),
	}
	for _, p := range products {
		p := p
		o.Products = append(o.Products, models.OfferProduct{OfferID: id, ProductID: p.ID, Product: &p})
	}
	return o
}

type fakeProducts struct {
	products map[uint]models.Product
	err      error
}

func newFakeProducts(products ...models.Product) *fakeProducts {
	return &fakeProducts{products: lo.KeyBy(products, func(p models.Product) uint { return p.ID })}
}

func (f *fakeProducts) sorted() []models.Product {
	out := lo.Values(f.products)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeProducts) ListAvailable(ctx context.Context) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return lo.Filter(f.sorted(), func(p models.Product, _ int) bool { return p.Available() }), nil
}

func (f *fakeProducts) Search(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	q := strings.ToLower(filter.Query)
	return lo.Filter(f.sorted(), func(p models.Product, _ int) bool {
		return p.Available() && (q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Code), q))
	}), nil
}

func (f *fakeProducts) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return lo.Filter(f.sorted(), func(p models.Product, _ int) bool { return lo.Contains(ids, p.ID) }), nil
}

func (f *fakeProducts) Brands(ctx context.Context) ([]string, error) {
	return lo.Uniq(lo.Map(f.sorted(), func(p models.Product, _ int) string { return p.BrandName() })), f.err
}

func (f *fakeProducts) Packagings(ctx context.Context) ([]string, error) {
	return lo.Uniq(lo.Map(f.sorted(), func(p models.Product, _ int) string {
		if p.Packaging == nil {
			return ""
		}
		return p.Packaging.Name
	})), f.err
}

type fakeOffers struct {
	offers map[uint]models.Offer
	nextID uint
	err    error
}

func newFakeOffers(offers ...models.Offer) *fakeOffers {
	f := &fakeOffers{offers: lo.KeyBy(offers, func(o models.Offer) uint { return o.ID }), nextID: 100}
	return f
}

func (f *fakeOffers) sorted() []models.Offer {
	out := lo.Values(f.offers)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func pageOf[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (f *fakeOffers) ListActive(ctx context.Context, offset, limit int) ([]models.Offer, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	active := lo.Filter(f.sorted(), func(o models.Offer, _ int) bool { return o.IsActive })
	return pageOf(active, offset, limit), int64(len(active)), nil
}

func (f *fakeOffers) ListAll(ctx context.Context, offset, limit int) ([]models.Offer, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	all := f.sorted()
	return pageOf(all, offset, limit), int64(len(all)), nil
}

func vigentOn(o models.Offer, d time.Time) bool {
	return o.IsActive && !o.StartDate.After(d) && !o.EndDate.Before(d)
}

func (f *fakeOffers) ListVigent(ctx context.Context, d time.Time) ([]models.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return lo.Filter(f.sorted(), func(o models.Offer, _ int) bool { return vigentOn(o, d) }), nil
}

func (f *fakeOffers) ListVigentForProduct(ctx context.Context, productID uint, d time.Time) ([]models.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return lo.Filter(f.sorted(), func(o models.Offer, _ int) bool {
		return vigentOn(o, d) && lo.ContainsBy(o.Products, func(p models.OfferProduct) bool { return p.ProductID == productID })
	}), nil
}

func (f *fakeOffers) FindByID(ctx context.Context, id uint) (*models.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.offers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOffers) FindByIDs(ctx context.Context, ids []uint) ([]models.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return lo.Filter(f.sorted(), func(o models.Offer, _ int) bool { return lo.Contains(ids, o.ID) }), nil
}

func (f *fakeOffers) Create(ctx context.Context, o *models.Offer) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	o.ID = f.nextID
	f.offers[o.ID] = *o
	return nil
}

func (f *fakeOffers) Update(ctx context.Context, o *models.Offer) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.offers[o.ID]; !ok {
		return repository.ErrNotFound
	}
	f.offers[o.ID] = *o
	return nil
}

func (f *fakeOffers) Deactivate(ctx context.Context, id uint) error {
	o, ok := f.offers[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.IsActive = false
	f.offers[id] = o
	return nil
}

type fakeDrafts struct {
	drafts     map[uint]models.DraftOrder
	nextID     uint
	nextItemID uint
	err        error
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: make(map[uint]models.DraftOrder)}
}

func (f *fakeDrafts) assignItemIDs(items []models.DraftOrderItem, draftID uint) {
	for i := range items {
		f.nextItemID++
		items[i].ID = f.nextItemID
		items[i].DraftOrderID = draftID
	}
}

func (f *fakeDrafts) Create(ctx context.Context, d *models.DraftOrder) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	d.ID = f.nextID
	d.CreatedAt = testNow
	f.assignItemIDs(d.Items, d.ID)
	f.drafts[d.ID] = *d
	return nil
}

func (f *fakeDrafts) FindForClients(ctx context.Context, id uint, clientIDs []uint) (*models.DraftOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.drafts[id]
	if !ok || !lo.Contains(clientIDs, d.ClientID) {
		return nil, repository.ErrNotFound
	}
	d.Items = append([]models.DraftOrderItem(nil), d.Items...)
	return &d, nil
}

func (f *fakeDrafts) List(ctx context.Context, filter repository.DraftFilter) ([]models.DraftOrder, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	all := lo.Filter(lo.Values(f.drafts), func(d models.DraftOrder, _ int) bool {
		return lo.Contains(filter.ClientIDs, d.ClientID) && (filter.Status == "" || d.Status == filter.Status)
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return pageOf(all, filter.Offset, filter.Limit), int64(len(all)), nil
}

func (f *fakeDrafts) ReplaceItems(ctx context.Context, d *models.DraftOrder) error {
	if f.err != nil {
		return f.err
	}
	stored, ok := f.drafts[d.ID]
	if !ok || stored.Status != models.DraftStatusDraft {
		return repository.ErrStateChanged
	}
	f.assignItemIDs(d.Items, d.ID)
	stored.Notes = d.Notes
	stored.Items = d.Items
	f.drafts[d.ID] = stored
	return nil
}

func (f *fakeDrafts) MarkSubmitted(ctx context.Context, id uint, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	stored, ok := f.drafts[id]
	if !ok || stored.Status != models.DraftStatusDraft {
		return repository.ErrStateChanged
	}
	stored.Status = models.DraftStatusSubmitted
	stored.SubmittedAt = &at
	f.drafts[id] = stored
	return nil
}

func (f *fakeDrafts) Delete(ctx context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	stored, ok := f.drafts[id]
	if !ok || stored.Status != models.DraftStatusDraft {
		return repository.ErrStateChanged
	}
	delete(f.drafts, id)
	return nil
}

func (f *fakeDrafts) CountOpen(ctx context.Context, clientIDs []uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(lo.CountBy(lo.Values(f.drafts), func(d models.DraftOrder) bool {
		return lo.Contains(clientIDs, d.ClientID)
	})), nil
}

func (f *fakeDrafts) ListSubmittedBetween(ctx context.Context, from, to time.Time) ([]models.DraftOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return lo.Filter(lo.Values(f.drafts), func(d models.DraftOrder, _ int) bool {
		return d.Status == models.DraftStatusSubmitted && d.SubmittedAt != nil &&
			!d.SubmittedAt.Before(from) && d.SubmittedAt.Before(to)
	}), nil
}

type fakeOrders struct {
	orders []models.Order
	err    error
}

func (f *fakeOrders) ListDeliveredSince(ctx context.Context, clientIDs []uint, since time.Time) ([]models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := lo.Filter(f.orders, func(o models.Order, _ int) bool {
		return lo.Contains(clientIDs, o.ClientID) && !o.DeliveredAt.Before(since)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveredAt.After(out[j].DeliveredAt) })
	return out, nil
}

func (f *fakeOrders) FindForClients(ctx context.Context, id uint, clientIDs []uint) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := lo.Find(f.orders, func(o models.Order) bool { return o.ID == id && lo.Contains(clientIDs, o.ClientID) })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, id uint, clientIDs []uint, status string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.orders {
		if f.orders[i].ID == id && lo.Contains(clientIDs, f.orders[i].ClientID) {
			f.orders[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeOrders) CountDeliveredBetween(ctx context.Context, clientID uint, from, to time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(lo.CountBy(f.orders, func(o models.Order) bool {
		return o.ClientID == clientID && !o.DeliveredAt.Before(from) && o.DeliveredAt.Before(to)
	})), nil
}

type fakePayments struct {
	payments []models.Payment
	gotLimit int
}

func (f *fakePayments) Latest(ctx context.Context, clientID uint, limit int) ([]models.Payment, error) {
	f.gotLimit = limit
	out := lo.Filter(f.payments, func(p models.Payment, _ int) bool { return p.ClientID == clientID })
	return pageOf(out, 0, limit), nil
}

type fakeAccounts struct {
	clients  map[uint]models.Client
	admins   map[uint]models.Admin
	revoked  map[string]time.Time
	logins   []uint
	err      error
	purgedAt time.Time
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		clients: make(map[uint]models.Client),
		admins:  make(map[uint]models.Admin),
		revoked: make(map[string]time.Time),
	}
}

func (f *fakeAccounts) FindClientByUsername(ctx context.Context, username string) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.clients {
		if c.Username == username {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) FindClientByID(ctx context.Context, id uint) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeAccounts) UpdateClientProfile(ctx context.Context, client *models.Client) error {
	if f.err != nil {
		return f.err
	}
	stored := f.clients[client.ID]
	stored.TaxID = client.TaxID
	stored.Markup1, stored.Markup2, stored.Markup3 = client.Markup1, client.Markup2, client.Markup3
	f.clients[client.ID] = stored
	return nil
}

func (f *fakeAccounts) UpdateClientPassword(ctx context.Context, id uint, hash string) error {
	if f.err != nil {
		return f.err
	}
	stored := f.clients[id]
	stored.Password = hash
	f.clients[id] = stored
	return nil
}

func (f *fakeAccounts) TouchClientLogin(ctx context.Context, id uint, at time.Time) error {
	f.logins = append(f.logins, id)
	return nil
}

func (f *fakeAccounts) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) FindAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAccounts) TouchAdminLogin(ctx context.Context, id uint, at time.Time) error {
	return nil
}

func (f *fakeAccounts) RevokeToken(ctx context.Context, token string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[token] = expiresAt
	return nil
}

func (f *fakeAccounts) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	_, ok := f.revoked[token]
	return ok, nil
}

func (f *fakeAccounts) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	f.purgedAt = now
	var n int64
	for token, exp := range f.revoked {
		if exp.Before(now) {
			delete(f.revoked, token)
			n++
		}
	}
	return n, nil
}

type fakeNotifier struct {
	sent []DraftView
	err  error
}

func (f *fakeNotifier) DraftSubmitted(ctx context.Context, client models.Client, draft DraftView) error {
	f.sent = append(f.sent, draft)
	return f.err
}

type fakeMailer struct {
	enabled bool
	to      []string
	subject string
	body    string
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) Send(to []string, subject, htmlBody string) error {
	f.to, f.subject, f.body = to, subject, htmlBody
	return nil
}
