package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayinubud/errors"
	"stayinubud/models"
)

func testVilla() *models.Villa {
	return &models.Villa{
		ID:            1,
		Name:          "Villa Sari",
		Location:      "Penestanan",
		Capacity:      4,
		PricePerNight: 1_000_000,
		CleaningFee:   500_000,
		IsAvailable:   true,
	}
}

func newTestRules(villa *models.Villa, booked []string) *BookingRules {
	return NewBookingRules(villa, NewAvailabilityIndex(booked), date(2024, time.June, 1))
}

func reasonCodes(reasons []errors.FailureReason) []errors.ReasonCode {
	codes := make([]errors.ReasonCode, 0, len(reasons))
	for _, reason := range reasons {
		codes = append(codes, reason.Code)
	}
	return codes
}

func TestEvaluateCleanAttempt(t *testing.T) {
	rules := newTestRules(testVilla(), nil)
	attempt := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 13), 2)

	assert.Empty(t, rules.Evaluate(attempt))
}

func TestEvaluatePastCheckIn(t *testing.T) {
	rules := newTestRules(testVilla(), nil)
	attempt := models.NewBookingAttempt(1, date(2024, time.May, 28), date(2024, time.May, 31), 2)

	assert.Contains(t, reasonCodes(rules.Evaluate(attempt)), errors.ReasonPastDate)
}

func TestEvaluateCapacity(t *testing.T) {
	rules := newTestRules(testVilla(), nil)

	tooMany := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 13), 5)
	assert.Contains(t, reasonCodes(rules.Evaluate(tooMany)), errors.ReasonCapacityExceeded)

	nobody := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 13), 0)
	assert.Contains(t, reasonCodes(rules.Evaluate(nobody)), errors.ReasonCapacityExceeded)
}

func TestEvaluateMinimumStay(t *testing.T) {
	villa := testVilla()
	villa.MinimumStay = 3
	rules := newTestRules(villa, nil)

	attempt := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 12), 2)
	assert.Contains(t, reasonCodes(rules.Evaluate(attempt)), errors.ReasonMinimumStay)
}

func TestEvaluateMaximumStayDefault(t *testing.T) {
	rules := newTestRules(testVilla(), nil)

	// 31 nights against the default cap of 30.
	attempt := models.NewBookingAttempt(1, date(2024, time.June, 1), date(2024, time.July, 2), 2)
	assert.Contains(t, reasonCodes(rules.Evaluate(attempt)), errors.ReasonMaximumStay)
}

func TestEvaluateVillaUnavailable(t *testing.T) {
	villa := testVilla()
	villa.IsAvailable = false
	rules := newTestRules(villa, nil)

	attempt := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	assert.Contains(t, reasonCodes(rules.Evaluate(attempt)), errors.ReasonVillaUnavailable)
}

func TestEvaluateDateConflict(t *testing.T) {
	rules := newTestRules(testVilla(), []string{"2024-06-11"})

	attempt := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	assert.Contains(t, reasonCodes(rules.Evaluate(attempt)), errors.ReasonDateConflict)
}

func TestEvaluateCheckInOnOccupiedDate(t *testing.T) {
	// The occupied day cannot open a new stay even though the rest is free.
	rules := newTestRules(testVilla(), []string{"2024-06-12"})

	attempt := models.NewBookingAttempt(1, date(2024, time.June, 12), date(2024, time.June, 14), 2)
	assert.Contains(t, reasonCodes(rules.Evaluate(attempt)), errors.ReasonDateConflict)
}

func TestEvaluateBackToBackStayIsClean(t *testing.T) {
	// An existing stay ends on the 13th: its checkout day can be our check-in.
	rules := newTestRules(testVilla(), []string{"2024-06-10", "2024-06-11", "2024-06-12"})

	attempt := models.NewBookingAttempt(1, date(2024, time.June, 13), date(2024, time.June, 15), 2)
	assert.Empty(t, rules.Evaluate(attempt))
}

func TestEvaluateZeroNightStay(t *testing.T) {
	rules := newTestRules(testVilla(), nil)

	attempt := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 10), 2)
	codes := reasonCodes(rules.Evaluate(attempt))
	assert.Contains(t, codes, errors.ReasonMinimumStay)
	assert.NotContains(t, codes, errors.ReasonDateConflict)
}

func TestEvaluateCollectsEveryFailure(t *testing.T) {
	villa := testVilla()
	villa.IsAvailable = false
	rules := newTestRules(villa, nil)

	// Unavailable villa, past dates and too many guests at once.
	attempt := models.NewBookingAttempt(1, date(2024, time.May, 20), date(2024, time.May, 23), 9)
	codes := reasonCodes(rules.Evaluate(attempt))
	assert.Len(t, codes, 3)
	assert.Contains(t, codes, errors.ReasonVillaUnavailable)
	assert.Contains(t, codes, errors.ReasonPastDate)
	assert.Contains(t, codes, errors.ReasonCapacityExceeded)
}

func TestEvaluateFailFastStopsAtFirst(t *testing.T) {
	villa := testVilla()
	villa.IsAvailable = false
	rules := newTestRules(villa, nil)

	attempt := models.NewBookingAttempt(1, date(2024, time.May, 20), date(2024, time.May, 23), 9)
	reasons := rules.EvaluateFailFast(attempt)
	assert.Len(t, reasons, 1)
	assert.Equal(t, errors.ReasonVillaUnavailable, reasons[0].Code)
}

func TestCanSelectCheckout(t *testing.T) {
	villa := testVilla()
	villa.MinimumStay = 2
	villa.MaximumStay = 7
	rules := newTestRules(villa, []string{"2024-06-15"})
	checkIn := date(2024, time.June, 10)

	assert.False(t, rules.CanSelectCheckout(checkIn, date(2024, time.June, 11))) // below minimum
	assert.True(t, rules.CanSelectCheckout(checkIn, date(2024, time.June, 12)))
	assert.True(t, rules.CanSelectCheckout(checkIn, date(2024, time.June, 15))) // lands on the next arrival's check-in
	assert.False(t, rules.CanSelectCheckout(checkIn, date(2024, time.June, 16))) // would span the booked night
	assert.False(t, rules.CanSelectCheckout(checkIn, date(2024, time.June, 20))) // beyond maximum and across the booked night
}
