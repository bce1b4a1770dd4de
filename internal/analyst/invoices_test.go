package analyst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesengine/internal/core"
)

func TestAverageInvoicesPerMerchant(t *testing.T) {
	a := invoiceCountFixture()

	avg, err := a.AverageInvoicesPerMerchant()
	require.NoError(t, err)
	assert.Equal(t, 5.00, avg)

	sd, err := a.AverageInvoicesPerMerchantStandardDeviation()
	require.NoError(t, err)
	assert.Equal(t, 1.89, sd)
}

func TestTopMerchantsByInvoiceCount(t *testing.T) {
	a := invoiceCountFixture()

	got, err := a.TopMerchantsByInvoiceCount()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].ID, "nine invoices clears mean + 2 sigma")
}

func TestBottomMerchantsByInvoiceCount(t *testing.T) {
	a := invoiceCountFixture()

	got, err := a.BottomMerchantsByInvoiceCount()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(9), got[0].ID, "a single invoice falls below mean - 2 sigma")
}

func TestInvoicesByWeekday(t *testing.T) {
	a := weekdayFixture()

	byDay := a.InvoicesByWeekday()
	require.Len(t, byDay, 3)
	assert.Len(t, byDay[time.Monday], 5)
	assert.Len(t, byDay[time.Wednesday], 1)
	assert.Len(t, byDay[time.Saturday], 3)
}

func TestAverageInvoicesPerDay(t *testing.T) {
	a := weekdayFixture()

	avg, err := a.AverageInvoicesPerDay()
	require.NoError(t, err)
	assert.Equal(t, 3.00, avg)

	sd, err := a.AverageInvoicesPerDayStandardDeviation()
	require.NoError(t, err)
	assert.Equal(t, 2.00, sd)
}

func TestTopDaysByInvoiceCount(t *testing.T) {
	a := weekdayFixture()

	got, err := a.TopDaysByInvoiceCount()
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday"}, got)
}

func TestInvoiceStatusPercentage(t *testing.T) {
	a := weekdayFixture()

	pending, err := a.InvoiceStatusPercentage(core.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 33.33, pending)

	shipped, err := a.InvoiceStatusPercentage(core.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, 55.56, shipped)

	returned, err := a.InvoiceStatusPercentage(core.StatusReturned)
	require.NoError(t, err)
	assert.Equal(t, 11.11, returned)

	// every invoice carries exactly one status, so the shares cover 100%
	assert.InDelta(t, 100.0, pending+shipped+returned, 0.01)
}

func TestInvoiceStatusPercentageErrors(t *testing.T) {
	a := weekdayFixture()

	_, err := a.InvoiceStatusPercentage(core.InvoiceStatus("cancelled"))
	require.ErrorIs(t, err, core.ErrInvalidArgument)

	empty := New(newDataset(nil, nil, nil, nil, nil))
	_, err = empty.InvoiceStatusPercentage(core.StatusPending)
	require.ErrorIs(t, err, core.ErrEmptyPopulation)
}
