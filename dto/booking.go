package dto

import (
	"time"

	"stayinubud/errors"
)

// AvailabilityResponse answers "can this range be booked".
type AvailabilityResponse struct {
	Available bool                   `json:"available"`
	Reasons   []errors.FailureReason `json:"reasons,omitempty"`
}

// QuoteResponse is the full price breakdown shown before checkout.
type QuoteResponse struct {
	Nights      int   `json:"nights"`
	NightlyRate int64 `json:"nightlyRate"`
	Subtotal    int64 `json:"subtotal"`
	CleaningFee int64 `json:"cleaningFee"`
	ServiceFee  int64 `json:"serviceFee"`
	Total       int64 `json:"total"`
}

// ConfirmBookingRequest is the checkout submission.
type ConfirmBookingRequest struct {
	VillaID       uint   `json:"villaId" binding:"required"`
	CheckIn       string `json:"checkIn" binding:"required"`  // YYYY-MM-DD
	CheckOut      string `json:"checkOut" binding:"required"` // YYYY-MM-DD
	Guests        int    `json:"guests" binding:"required"`
	GuestName     string `json:"guestName"`
	GuestEmail    string `json:"guestEmail"`
	GuestPhone    string `json:"guestPhone"`
	PaymentMethod string `json:"paymentMethod"`
}

// BookingResponse is a ledger record as exposed to clients.
type BookingResponse struct {
	ID              uint      `json:"id"`
	ReferenceNumber string    `json:"referenceNumber"`
	VillaID         uint      `json:"villaId"`
	VillaName       string    `json:"villaName"`
	CheckInDate     string    `json:"checkInDate"`
	CheckOutDate    string    `json:"checkOutDate"`
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
	CreatedAt       time.Time `json:"createdAt"`
}
