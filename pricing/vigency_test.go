package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offerWindow(t *testing.T, id uint, active bool, start, end time.Time) Offer {
	t.Helper()
	o, err := NewOffer(OfferSpec{
		ID:        id,
		Kind:      KindUnit,
		PriceMode: ModePercentOff,
		Active:    active,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return o
}

func TestCheckVigency(t *testing.T) {
	today := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	expired := offerWindow(t, 1, true, october1, yesterday)
	inactive := offerWindow(t, 2, false, october1, october31)
	inactiveAndOld := offerWindow(t, 3, false, october1, yesterday)
	vigent := offerWindow(t, 4, true, october1, october31)
	lastDay := offerWindow(t, 5, true, october1, today)
	firstDay := offerWindow(t, 6, true, today, october31)
	future := offerWindow(t, 7, true, tomorrow, october31)

	report := CheckVigency([]Offer{expired, inactive, inactiveAndOld, vigent, lastDay, firstDay, future}, today)

	require.Len(t, report.Expired, 1)
	assert.Equal(t, uint(1), report.Expired[0].ID())

	require.Len(t, report.Inactive, 2)
	assert.Equal(t, uint(2), report.Inactive[0].ID())
	assert.Equal(t, uint(3), report.Inactive[1].ID())

	require.Len(t, report.NotStarted, 1)
	assert.Equal(t, uint(7), report.NotStarted[0].ID())

	assert.False(t, report.OK())
	assert.True(t, vigent.IsVigent(today))
	assert.True(t, lastDay.IsVigent(today))
	assert.True(t, firstDay.IsVigent(today))
}

func TestCheckVigency_AllVigent(t *testing.T) {
	today := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	report := CheckVigency([]Offer{offerWindow(t, 1, true, october1, october31)}, today)
	assert.True(t, report.OK())

	assert.True(t, CheckVigency(nil, today).OK())
}

func TestVigencyOn_UsesCalendarDateOfToday(t *testing.T) {
	buenosAires := time.FixedZone("ART", -3*60*60)
	end := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	offer := offerWindow(t, 1, true, october1, end)

	lateEvening := time.Date(2026, 10, 14, 23, 30, 0, 0, buenosAires)
	assert.Equal(t, Vigent, offer.VigencyOn(lateEvening))

	nextMorning := time.Date(2026, 10, 15, 0, 5, 0, 0, buenosAires)
	assert.Equal(t, Expired, offer.VigencyOn(nextMorning))
}
