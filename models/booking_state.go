package models

import "errors"

// BookingState is the state pattern over the persisted booking status.
// Each state decides which transitions are legal from it.
type BookingState interface {
	Confirm(booking *Booking) error
	Cancel(booking *Booking) error
	Complete(booking *Booking) error
}

var (
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrAlreadyCompleted = errors.New("booking already completed")
)

// PendingState: created but not yet confirmed.
type PendingState struct{}

func (s *PendingState) Confirm(booking *Booking) error {
	booking.Status = BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

func (s *PendingState) Complete(booking *Booking) error {
	return errors.New("cannot complete pending booking")
}

// ConfirmedState: dates are held, the stay has not happened yet.
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(booking *Booking) error {
	return errors.New("booking already confirmed")
}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(booking *Booking) error {
	booking.Status = BookingStatusCompleted
	return nil
}

// CompletedState: terminal, reached only by the checkout-date sweep.
type CompletedState struct{}

func (s *CompletedState) Confirm(booking *Booking) error {
	return ErrAlreadyCompleted
}

func (s *CompletedState) Cancel(booking *Booking) error {
	return errors.New("cannot cancel completed booking")
}

func (s *CompletedState) Complete(booking *Booking) error {
	return ErrAlreadyCompleted
}

// CancelledState: terminal.
type CancelledState struct{}

func (s *CancelledState) Confirm(booking *Booking) error {
	return errors.New("cannot confirm cancelled booking")
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return ErrAlreadyCancelled
}

func (s *CancelledState) Complete(booking *Booking) error {
	return errors.New("cannot complete cancelled booking")
}

// GetBookingState maps a status value to its state object.
func GetBookingState(status int) BookingState {
	switch status {
	case BookingStatusPending:
		return &PendingState{}
	case BookingStatusConfirmed:
		return &ConfirmedState{}
	case BookingStatusCompleted:
		return &CompletedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}
