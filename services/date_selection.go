package services

import (
	"time"

	"stayinubud/models"
	"stayinubud/utils"
)

// SelectionPhase tracks which date the guest is picking next.
type SelectionPhase int

const (
	AwaitingCheckIn SelectionPhase = iota
	AwaitingCheckOut
	SelectionReady
)

// DayStatus classifies a calendar day for the picker UI.
type DayStatus string

const (
	DayPast         DayStatus = "past"
	DayBooked       DayStatus = "booked"
	DayCheckoutOnly DayStatus = "checkout-only"
	DayAvailable    DayStatus = "available"
)

// DateSelection is the date-picking state machine, decoupled from any
// rendering: AwaitingCheckIn -> AwaitingCheckOut -> SelectionReady. Picking
// a day while a completed range exists starts a fresh selection.
type DateSelection struct {
	rules    *BookingRules
	phase    SelectionPhase
	checkIn  time.Time
	checkOut time.Time
}

func NewDateSelection(rules *BookingRules) *DateSelection {
	return &DateSelection{rules: rules}
}

func (s *DateSelection) Phase() SelectionPhase {
	return s.phase
}

// Range returns the picked dates; the zero time stands for "not chosen yet".
func (s *DateSelection) Range() (checkIn, checkOut time.Time) {
	return s.checkIn, s.checkOut
}

// DayStatusFor classifies date for display. Checkout-only is a hint, not a
// blocker: such a day still accepts a new check-out, just not a check-in.
func (s *DateSelection) DayStatusFor(date time.Time) DayStatus {
	switch {
	case utils.IsPastDate(date, s.rules.Today):
		return DayPast
	case s.rules.Index.IsOccupied(date):
		return DayBooked
	case s.rules.Index.IsCheckoutOnlyDay(date):
		return DayCheckoutOnly
	default:
		return DayAvailable
	}
}

// CanSelect reports whether date is pickable in the current phase.
func (s *DateSelection) CanSelect(date time.Time) bool {
	if s.phase == AwaitingCheckOut {
		return s.rules.CanSelectCheckout(s.checkIn, date)
	}
	return s.rules.Index.CanBeCheckIn(date, s.rules.Today)
}

// Select picks date and advances the machine. Returns false when the date is
// not pickable; the selection is left unchanged in that case.
func (s *DateSelection) Select(date time.Time) bool {
	if !s.CanSelect(date) {
		return false
	}
	if s.phase == AwaitingCheckOut {
		s.checkOut = utils.NormalizeDate(date)
		s.phase = SelectionReady
		return true
	}
	// Both AwaitingCheckIn and SelectionReady restart the range.
	s.checkIn = utils.NormalizeDate(date)
	s.checkOut = time.Time{}
	s.phase = AwaitingCheckOut
	return true
}

// Clear resets the machine to its initial state.
func (s *DateSelection) Clear() {
	s.checkIn = time.Time{}
	s.checkOut = time.Time{}
	s.phase = AwaitingCheckIn
}

// Attempt materializes the completed selection as a booking attempt.
// Returns nil until the selection is ready.
func (s *DateSelection) Attempt(guests int) *models.BookingAttempt {
	if s.phase != SelectionReady {
		return nil
	}
	return models.NewBookingAttempt(s.rules.Villa.ID, s.checkIn, s.checkOut, guests)
}
