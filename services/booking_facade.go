package services

import (
	goerrors "errors"
	"time"

	"stayinubud/builders"
	"stayinubud/errors"
	"stayinubud/models"
	"stayinubud/services/logger"
	"stayinubud/utils"
)

// BookingNotifier receives booking lifecycle events. Delivery failures never
// fail the booking itself.
type BookingNotifier interface {
	BookingConfirmed(booking *models.Booking)
	BookingCancelled(booking *models.Booking)
}

// BookingFacade orchestrates a booking attempt end-to-end: validate, price,
// reserve the dates, append the ledger record. It is the only component that
// mutates a villa's availability index.
type BookingFacade struct {
	bookings     BookingStore
	villas       VillaStore
	availability *AvailabilityService
	notifier     BookingNotifier
	log          logger.Logger

	// now is swappable so tests can pin "today".
	now func() time.Time
}

type BookingFacadeOptions struct {
	Bookings     BookingStore
	Villas       VillaStore
	Availability *AvailabilityService
	Notifier     BookingNotifier
	Logger       logger.Logger
}

func NewBookingFacade(opts BookingFacadeOptions) *BookingFacade {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &BookingFacade{
		bookings:     opts.Bookings,
		villas:       opts.Villas,
		availability: opts.Availability,
		notifier:     opts.Notifier,
		log:          log,
		now:          utils.Today,
	}
}

// SetClock pins the facade's notion of today. Test hook.
func (f *BookingFacade) SetClock(now func() time.Time) {
	f.now = now
}

func (f *BookingFacade) rulesFor(villaID uint) (*BookingRules, error) {
	villa, err := f.villas.GetVilla(villaID)
	if err != nil {
		return nil, err
	}
	idx, err := f.availability.IndexFor(villa)
	if err != nil {
		return nil, err
	}
	return NewBookingRules(villa, idx, f.now()), nil
}

// CheckAvailability answers the date-only availability question for a villa.
func (f *BookingFacade) CheckAvailability(villaID uint, checkIn, checkOut time.Time) (bool, []errors.FailureReason, error) {
	rules, err := f.rulesFor(villaID)
	if err != nil {
		return false, nil, err
	}
	// Guest count is not part of this question; one guest always fits.
	attempt := models.NewBookingAttempt(villaID, checkIn, checkOut, 1)
	reasons := rules.Evaluate(attempt)
	return len(reasons) == 0, reasons, nil
}

// QuoteStay validates the attempt and prices it. No partial pricing: any
// failure returns the reasons and no quote.
func (f *BookingFacade) QuoteStay(villaID uint, checkIn, checkOut time.Time, guests int) (*Quote, []errors.FailureReason, error) {
	rules, err := f.rulesFor(villaID)
	if err != nil {
		return nil, nil, err
	}
	attempt := models.NewBookingAttempt(villaID, checkIn, checkOut, guests)
	if reasons := rules.Evaluate(attempt); len(reasons) > 0 {
		return nil, reasons, nil
	}
	quote := PriceQuote(rules.Villa, checkIn, checkOut)
	return &quote, nil, nil
}

// Validate runs the full rules pass over the attempt. On success the attempt
// moves to Validated; on failure it stays a draft and the reasons come back
// as a result, not an error, since the guest can correct them.
func (f *BookingFacade) Validate(attempt *models.BookingAttempt) ([]errors.FailureReason, error) {
	rules, err := f.rulesFor(attempt.VillaID)
	if err != nil {
		return nil, err
	}
	reasons := rules.Evaluate(attempt)
	if len(reasons) == 0 {
		attempt.MarkValidated()
	}
	return reasons, nil
}

// Confirm turns a validated attempt into a confirmed booking: revalidates,
// prices, reserves the nights atomically, then appends the record. The
// reserve is rolled back if the append fails, so a half-applied merge can
// never leak into the index. Calling Confirm on a non-validated attempt is a
// caller bug and fails hard with an InvalidState error.
func (f *BookingFacade) Confirm(attempt *models.BookingAttempt, guest models.GuestDetails, paymentMethod string) (*models.Booking, []errors.FailureReason, error) {
	if attempt.State() != models.AttemptValidated {
		return nil, nil, errors.NewAppError(errors.ErrCodeInvalidState, "confirm requires a validated booking attempt", nil)
	}

	rules, err := f.rulesFor(attempt.VillaID)
	if err != nil {
		return nil, nil, err
	}

	// Speculative revalidation; the conflict check is repeated under the
	// index write lock below, where check-then-act is actually atomic.
	if reasons := rules.Evaluate(attempt); len(reasons) > 0 {
		return nil, reasons, nil
	}

	reference, err := GenerateReference(f.bookings)
	if err != nil {
		return nil, nil, err
	}
	quote := PriceQuote(rules.Villa, attempt.CheckIn, attempt.CheckOut)

	reserved, bookedDates, err := rules.Index.ConfirmRange(attempt.CheckIn, attempt.CheckOut)
	if err != nil {
		return nil, nil, err
	}
	if !reserved {
		// Another confirmation won the race for these nights.
		return nil, []errors.FailureReason{
			errors.NewFailureReason(errors.ReasonDateConflict, "dates", "the selected dates were just booked by someone else"),
		}, nil
	}

	booking := builders.NewBookingBuilder().
		WithVilla(attempt.VillaID).
		WithReference(reference).
		WithDates(utils.ToDateKey(attempt.CheckIn), utils.ToDateKey(attempt.CheckOut)).
		WithGuests(attempt.Guests).
		WithGuestInfo(guest.Name, guest.Phone, guest.Email).
		WithPayment(paymentMethod).
		WithPrice(quote.NightlyRate, quote.Nights, quote.CleaningFee, quote.ServiceFee, quote.Total).
		WithStatus(models.BookingStatusConfirmed).
		Build()

	if err := f.bookings.Create(booking, bookedDates); err != nil {
		// All-or-nothing: the reserve must not survive a failed append.
		if relErr := rules.Index.Release(attempt.CheckIn, attempt.CheckOut); relErr != nil {
			f.log.Error("failed to release reserved nights after append failure: %v", relErr)
		}
		return nil, nil, err
	}

	attempt.MarkConfirmed()
	f.log.Info("booking %s confirmed for villa %d (%s -> %s)", reference, booking.VillaID, booking.CheckInDate, booking.CheckOutDate)

	if f.notifier != nil {
		f.notifier.BookingConfirmed(booking)
	}
	return booking, nil, nil
}

// Cancel soft-cancels a confirmed booking whose check-in is still in the
// future. The previously merged nights stay occupied: the index is never
// given back on cancellation. A repeated cancel reports AlreadyCancelled and
// changes nothing.
func (f *BookingFacade) Cancel(bookingID uint) (*models.Booking, []errors.FailureReason, error) {
	booking, err := f.bookings.GetByID(bookingID)
	if err != nil {
		return nil, nil, err
	}

	checkIn, err := utils.ParseDateKey(booking.CheckInDate)
	if err != nil {
		return nil, nil, err
	}
	if utils.DaysBetween(f.now(), checkIn) <= 0 {
		return nil, []errors.FailureReason{
			errors.NewFailureReason(errors.ReasonPastDate, "dates", "the stay has already started"),
		}, nil
	}

	if stateErr := models.GetBookingState(booking.Status).Cancel(booking); stateErr != nil {
		code := errors.ReasonInvalidState
		if goerrors.Is(stateErr, models.ErrAlreadyCancelled) {
			code = errors.ReasonAlreadyCancelled
		}
		return nil, []errors.FailureReason{
			errors.NewFailureReason(code, "booking", stateErr.Error()),
		}, nil
	}

	if err := f.bookings.Save(booking); err != nil {
		return nil, nil, err
	}
	f.log.Info("booking %s cancelled", booking.ReferenceNumber)

	if f.notifier != nil {
		f.notifier.BookingCancelled(booking)
	}
	return booking, nil, nil
}

// CompleteDueBookings moves confirmed bookings whose checkout day has passed
// to completed. Driven by the daily sweep, never by a user action.
func (f *BookingFacade) CompleteDueBookings() (int, error) {
	due, err := f.bookings.ListDueForCompletion(utils.ToDateKey(f.now()))
	if err != nil {
		return 0, err
	}
	completed := 0
	for i := range due {
		booking := &due[i]
		if err := models.GetBookingState(booking.Status).Complete(booking); err != nil {
			continue
		}
		if err := f.bookings.Save(booking); err != nil {
			f.log.Error("failed to complete booking %s: %v", booking.ReferenceNumber, err)
			continue
		}
		completed++
	}
	if completed > 0 {
		f.log.Info("completed %d past bookings", completed)
	}
	return completed, nil
}
