package builders

import (
	"stayinubud/models"
)

// BookingBuilder assembles a booking record step by step.
type BookingBuilder struct {
	booking *models.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{},
	}
}

func (b *BookingBuilder) WithVilla(villaID uint) *BookingBuilder {
	b.booking.VillaID = villaID
	return b
}

func (b *BookingBuilder) WithReference(reference string) *BookingBuilder {
	b.booking.ReferenceNumber = reference
	return b
}

// WithDates sets the half-open stay range as YYYY-MM-DD keys.
func (b *BookingBuilder) WithDates(checkIn, checkOut string) *BookingBuilder {
	b.booking.CheckInDate = checkIn
	b.booking.CheckOutDate = checkOut
	return b
}

func (b *BookingBuilder) WithGuests(guests int) *BookingBuilder {
	b.booking.Guests = guests
	return b
}

func (b *BookingBuilder) WithGuestInfo(name, phone, email string) *BookingBuilder {
	b.booking.GuestName = name
	b.booking.GuestPhone = phone
	b.booking.GuestEmail = email
	return b
}

func (b *BookingBuilder) WithPayment(method string) *BookingBuilder {
	b.booking.PaymentMethod = method
	return b
}

func (b *BookingBuilder) WithPrice(nightlyRate int64, nights int, cleaningFee, serviceFee, total int64) *BookingBuilder {
	b.booking.NightlyRate = nightlyRate
	b.booking.Nights = nights
	b.booking.CleaningFee = cleaningFee
	b.booking.ServiceFee = serviceFee
	b.booking.TotalPrice = total
	return b
}

func (b *BookingBuilder) WithStatus(status int) *BookingBuilder {
	b.booking.Status = status
	return b
}

func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
