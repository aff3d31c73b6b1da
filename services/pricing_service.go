package services

import (
	"time"

	"stayinubud/models"
	"stayinubud/utils"
)

// Quote is a full price breakdown, in IDR whole units. All arithmetic is
// integer; the percentage service fee rounds half-up on the last whole unit.
type Quote struct {
	Nights      int   `json:"nights"`
	NightlyRate int64 `json:"nightlyRate"`
	Subtotal    int64 `json:"subtotal"`
	CleaningFee int64 `json:"cleaningFee"`
	ServiceFee  int64 `json:"serviceFee"`
	Total       int64 `json:"total"`
}

// Nights counts billable nights, never negative. With no usable range the
// quote collapses to zero nights rather than partial pricing.
func Nights(checkIn, checkOut time.Time) int {
	n := utils.DaysBetween(checkIn, checkOut)
	if n < 0 {
		return 0
	}
	return n
}

// ServiceFee computes the fee for a subtotal: the villa's fixed amount when
// one is set, otherwise the percentage rate in basis points, rounded half-up.
func ServiceFee(villa *models.Villa, subtotal int64) int64 {
	if villa.ServiceFeeAmount > 0 {
		return villa.ServiceFeeAmount
	}
	bps := int64(villa.EffectiveServiceFeeBps())
	return (subtotal*bps + 5000) / 10000
}

// PriceQuote prices a stay at the villa. Invariant: Total is exactly
// subtotal + cleaning fee + service fee, and never below the fees alone.
func PriceQuote(villa *models.Villa, checkIn, checkOut time.Time) Quote {
	nights := Nights(checkIn, checkOut)
	subtotal := villa.PricePerNight * int64(nights)
	fee := ServiceFee(villa, subtotal)
	return Quote{
		Nights:      nights,
		NightlyRate: villa.PricePerNight,
		Subtotal:    subtotal,
		CleaningFee: villa.CleaningFee,
		ServiceFee:  fee,
		Total:       subtotal + villa.CleaningFee + fee,
	}
}
