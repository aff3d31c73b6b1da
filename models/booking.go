package models

import (
	"time"
)

// Booking status constants
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCompleted = 2
	BookingStatusCancelled = 3
)

// Booking is a confirmed booking record. Rows are append-mostly: cancellation
// flips Status, nothing is ever physically deleted.
type Booking struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ReferenceNumber string    `json:"referenceNumber" gorm:"uniqueIndex"`
	VillaID         uint      `json:"villaId"`
	Villa           Villa     `json:"villa" gorm:"foreignKey:VillaID"`
	CheckInDate     string    `json:"checkInDate"`  // YYYY-MM-DD
	CheckOutDate    string    `json:"checkOutDate"` // YYYY-MM-DD
	Guests          int       `json:"guests"`
	NightlyRate     int64     `json:"nightlyRate"`
	Nights          int       `json:"nights"`
	CleaningFee     int64     `json:"cleaningFee"`
	ServiceFee      int64     `json:"serviceFee"`
	TotalPrice      int64     `json:"totalPrice"`
	Status          int       `json:"status"`
	GuestName       string    `json:"guestName"`
	GuestEmail      string    `json:"guestEmail"`
	GuestPhone      string    `json:"guestPhone"`
	PaymentMethod   string    `json:"paymentMethod"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// GuestDetails is the contact information collected at checkout.
type GuestDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingAttempt is the transient draft a guest is assembling: created by the
// UI, consumed by the rules and pricing layers, discarded unless confirmed.
type BookingAttempt struct {
	VillaID  uint      `json:"villaId"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Guests   int       `json:"guests"`

	state AttemptState
}

// AttemptState tracks the draft through validation. Any mutation of the
// dates or guest count drops the attempt back to draft.
type AttemptState int

const (
	AttemptDraft AttemptState = iota
	AttemptValidated
	AttemptConfirmed
)

func NewBookingAttempt(villaID uint, checkIn, checkOut time.Time, guests int) *BookingAttempt {
	return &BookingAttempt{VillaID: villaID, CheckIn: checkIn, CheckOut: checkOut, Guests: guests}
}

func (a *BookingAttempt) State() AttemptState {
	return a.state
}

// MarkValidated records a successful rules pass.
func (a *BookingAttempt) MarkValidated() {
	a.state = AttemptValidated
}

// MarkConfirmed seals the attempt once a booking record exists for it.
func (a *BookingAttempt) MarkConfirmed() {
	a.state = AttemptConfirmed
}

// SetDates mutates the proposed range and invalidates any prior validation.
func (a *BookingAttempt) SetDates(checkIn, checkOut time.Time) {
	a.CheckIn = checkIn
	a.CheckOut = checkOut
	a.state = AttemptDraft
}

// SetGuests mutates the guest count and invalidates any prior validation.
func (a *BookingAttempt) SetGuests(guests int) {
	a.Guests = guests
	a.state = AttemptDraft
}
