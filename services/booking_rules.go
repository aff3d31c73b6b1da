package services

import (
	"fmt"
	"time"

	"stayinubud/errors"
	"stayinubud/models"
	"stayinubud/utils"
)

// BookingRules is the stateless policy layer: given a villa, that villa's
// availability index and "today", it evaluates a booking attempt and returns
// the violated constraints. It never mutates anything.
type BookingRules struct {
	Villa *models.Villa
	Index *AvailabilityIndex
	Today time.Time
}

func NewBookingRules(villa *models.Villa, index *AvailabilityIndex, today time.Time) *BookingRules {
	return &BookingRules{Villa: villa, Index: index, Today: utils.NormalizeDate(today)}
}

// Evaluate runs every check and collects all failures, so the checkout flow
// can show each violated constraint at once.
func (r *BookingRules) Evaluate(attempt *models.BookingAttempt) []errors.FailureReason {
	return r.evaluate(attempt, false)
}

// EvaluateFailFast stops at the first failure, for interactive validation
// while the guest is still picking dates.
func (r *BookingRules) EvaluateFailFast(attempt *models.BookingAttempt) []errors.FailureReason {
	return r.evaluate(attempt, true)
}

func (r *BookingRules) evaluate(attempt *models.BookingAttempt, failFast bool) []errors.FailureReason {
	var reasons []errors.FailureReason

	add := func(reason errors.FailureReason) bool {
		reasons = append(reasons, reason)
		return failFast
	}

	if !r.Villa.IsAvailable {
		if add(errors.NewFailureReason(errors.ReasonVillaUnavailable, "villa", "this villa is not accepting bookings")) {
			return reasons
		}
	}

	if utils.IsPastDate(attempt.CheckIn, r.Today) {
		if add(errors.NewFailureReason(errors.ReasonPastDate, "dates", "check-in date is in the past")) {
			return reasons
		}
	}

	if attempt.Guests < 1 || attempt.Guests > r.Villa.Capacity {
		msg := fmt.Sprintf("guest count must be between 1 and %d", r.Villa.Capacity)
		if add(errors.NewFailureReason(errors.ReasonCapacityExceeded, "guests", msg)) {
			return reasons
		}
	}

	nights := utils.DaysBetween(attempt.CheckIn, attempt.CheckOut)

	minStay := r.Villa.EffectiveMinimumStay()
	if nights < minStay {
		msg := fmt.Sprintf("stay must be at least %d nights", minStay)
		if add(errors.NewFailureReason(errors.ReasonMinimumStay, "dates", msg)) {
			return reasons
		}
	}

	maxStay := r.Villa.EffectiveMaximumStay()
	if nights > maxStay {
		msg := fmt.Sprintf("stay must be at most %d nights", maxStay)
		if add(errors.NewFailureReason(errors.ReasonMaximumStay, "dates", msg)) {
			return reasons
		}
	}

	// In this layer a non-positive night count is user input to correct,
	// so it surfaces as the minimum-stay reason above rather than the hard
	// InvalidRange error the low-level date helpers would raise. Skipping
	// the conflict check keeps those helpers off a malformed range.
	if nights > 0 {
		conflict, err := r.Index.RangeHasConflict(attempt.CheckIn, attempt.CheckOut)
		if err != nil {
			reasons = append(reasons, errors.NewFailureReason(errors.ReasonInvalidRange, "dates", "invalid date range"))
		} else if conflict {
			reasons = append(reasons, errors.NewFailureReason(errors.ReasonDateConflict, "dates", "the selected dates overlap an existing booking"))
		}
	}

	return reasons
}

// CanSelectCheckout decides whether candidate is a legal checkout for a stay
// starting at checkIn: at or past the minimum stay, within the maximum stay,
// and with no occupied night strictly between check-in and the candidate.
// The check-in's own occupancy was validated when it was chosen.
func (r *BookingRules) CanSelectCheckout(checkIn, candidate time.Time) bool {
	nights := utils.DaysBetween(checkIn, candidate)
	if nights < r.Villa.EffectiveMinimumStay() || nights > r.Villa.EffectiveMaximumStay() {
		return false
	}
	conflict, err := r.Index.InteriorHasConflict(checkIn, candidate)
	if err != nil {
		return false
	}
	return !conflict
}
