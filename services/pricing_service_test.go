package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriceQuoteThreeNights(t *testing.T) {
	quote := PriceQuote(testVilla(), date(2024, time.June, 10), date(2024, time.June, 13))

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, int64(1_000_000), quote.NightlyRate)
	assert.Equal(t, int64(3_000_000), quote.Subtotal)
	assert.Equal(t, int64(500_000), quote.CleaningFee)
	assert.Equal(t, int64(300_000), quote.ServiceFee) // default 10%
	assert.Equal(t, int64(3_800_000), quote.Total)
}

func TestPriceQuoteZeroNights(t *testing.T) {
	quote := PriceQuote(testVilla(), date(2024, time.June, 10), date(2024, time.June, 10))

	assert.Equal(t, 0, quote.Nights)
	assert.Equal(t, int64(0), quote.Subtotal)
	assert.Equal(t, int64(0), quote.ServiceFee)
	assert.Equal(t, int64(500_000), quote.Total) // cleaning fee still applies
}

func TestPriceQuoteReversedRangeCollapses(t *testing.T) {
	quote := PriceQuote(testVilla(), date(2024, time.June, 13), date(2024, time.June, 10))
	assert.Equal(t, 0, quote.Nights)
	assert.Equal(t, int64(0), quote.Subtotal)
}

func TestFixedServiceFeeTakesPrecedence(t *testing.T) {
	villa := testVilla()
	villa.ServiceFeeAmount = 250_000
	villa.ServiceFeeBps = 1500 // ignored while the fixed amount is set

	quote := PriceQuote(villa, date(2024, time.June, 10), date(2024, time.June, 13))
	assert.Equal(t, int64(250_000), quote.ServiceFee)
	assert.Equal(t, int64(3_750_000), quote.Total)
}

func TestServiceFeeRoundsHalfUp(t *testing.T) {
	villa := testVilla()
	villa.ServiceFeeBps = 250 // 2.5%

	// 1,000,100 * 2.5% = 25,002.5, which rounds up to 25,003.
	assert.Equal(t, int64(25_003), ServiceFee(villa, 1_000_100))

	// 1,000,040 * 2.5% = 25,001, exact.
	assert.Equal(t, int64(25_001), ServiceFee(villa, 1_000_040))
}

func TestTotalInvariant(t *testing.T) {
	villa := testVilla()
	quote := PriceQuote(villa, date(2024, time.June, 10), date(2024, time.June, 17))
	assert.Equal(t, quote.Subtotal+quote.CleaningFee+quote.ServiceFee, quote.Total)
}
