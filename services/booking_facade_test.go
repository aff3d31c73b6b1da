package services

import (
	goerrors "errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayinubud/errors"
	"stayinubud/models"
)

type fakeStore struct {
	mu              sync.Mutex
	villas          map[uint]*models.Villa
	bookings        map[uint]*models.Booking
	nextID          uint
	lastBookedDates []string
	failCreate      bool
	refAlwaysTaken  bool
}

func newFakeStore(villas ...*models.Villa) *fakeStore {
	store := &fakeStore{
		villas:   make(map[uint]*models.Villa),
		bookings: make(map[uint]*models.Booking),
	}
	for _, villa := range villas {
		store.villas[villa.ID] = villa
	}
	return store
}

func (s *fakeStore) Create(booking *models.Booking, bookedDates []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return fmt.Errorf("storage unavailable")
	}
	s.nextID++
	booking.ID = s.nextID
	s.bookings[booking.ID] = booking
	s.lastBookedDates = bookedDates
	return nil
}

func (s *fakeStore) Save(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = booking
	return nil
}

func (s *fakeStore) GetByID(id uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, errors.ErrBookingNotFound
	}
	return booking, nil
}

func (s *fakeStore) GetByReference(ref string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, booking := range s.bookings {
		if booking.ReferenceNumber == ref {
			return booking, nil
		}
	}
	return nil, errors.ErrBookingNotFound
}

func (s *fakeStore) ReferenceExists(ref string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refAlwaysTaken {
		return true, nil
	}
	for _, booking := range s.bookings {
		if booking.ReferenceNumber == ref {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) ListDueForCompletion(todayKey string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var due []models.Booking
	for _, booking := range s.bookings {
		if booking.Status == models.BookingStatusConfirmed && booking.CheckOutDate < todayKey {
			due = append(due, *booking)
		}
	}
	return due, nil
}

func (s *fakeStore) GetVilla(id uint) (*models.Villa, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	villa, ok := s.villas[id]
	if !ok {
		return nil, errors.ErrVillaNotFound
	}
	return villa, nil
}

type fakeNotifier struct {
	confirmed []string
	cancelled []string
}

func (n *fakeNotifier) BookingConfirmed(booking *models.Booking) {
	n.confirmed = append(n.confirmed, booking.ReferenceNumber)
}

func (n *fakeNotifier) BookingCancelled(booking *models.Booking) {
	n.cancelled = append(n.cancelled, booking.ReferenceNumber)
}

func newTestFacade(villa *models.Villa) (*BookingFacade, *fakeStore, *fakeNotifier, *AvailabilityService) {
	store := newFakeStore(villa)
	availability := NewAvailabilityService()
	notifier := &fakeNotifier{}
	facade := NewBookingFacade(BookingFacadeOptions{
		Bookings:     store,
		Villas:       store,
		Availability: availability,
		Notifier:     notifier,
	})
	facade.SetClock(func() time.Time { return date(2024, time.June, 1) })
	return facade, store, notifier, availability
}

func validatedAttempt(t *testing.T, facade *BookingFacade, checkIn, checkOut time.Time, guests int) *models.BookingAttempt {
	t.Helper()
	attempt := models.NewBookingAttempt(1, checkIn, checkOut, guests)
	reasons, err := facade.Validate(attempt)
	assert.NoError(t, err)
	assert.Empty(t, reasons)
	return attempt
}

func TestCheckAvailability(t *testing.T) {
	facade, _, _, _ := newTestFacade(testVilla())

	available, reasons, err := facade.CheckAvailability(1, date(2024, time.June, 10), date(2024, time.June, 13))
	assert.NoError(t, err)
	assert.True(t, available)
	assert.Empty(t, reasons)

	_, _, err = facade.CheckAvailability(99, date(2024, time.June, 10), date(2024, time.June, 13))
	assert.True(t, goerrors.Is(err, errors.ErrVillaNotFound))
}

func TestQuoteStay(t *testing.T) {
	facade, _, _, _ := newTestFacade(testVilla())

	quote, reasons, err := facade.QuoteStay(1, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	assert.NoError(t, err)
	assert.Empty(t, reasons)
	assert.Equal(t, int64(3_800_000), quote.Total)

	// A failing attempt yields reasons and no quote.
	quote, reasons, err = facade.QuoteStay(1, date(2024, time.June, 10), date(2024, time.June, 13), 9)
	assert.NoError(t, err)
	assert.Nil(t, quote)
	assert.NotEmpty(t, reasons)
}

func TestValidateMarksAttempt(t *testing.T) {
	facade, _, _, _ := newTestFacade(testVilla())

	good := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	reasons, err := facade.Validate(good)
	assert.NoError(t, err)
	assert.Empty(t, reasons)
	assert.Equal(t, models.AttemptValidated, good.State())

	bad := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 13), 9)
	reasons, err = facade.Validate(bad)
	assert.NoError(t, err)
	assert.NotEmpty(t, reasons)
	assert.Equal(t, models.AttemptDraft, bad.State())
}

func TestConfirmRequiresValidatedAttempt(t *testing.T) {
	facade, _, _, _ := newTestFacade(testVilla())

	draft := models.NewBookingAttempt(1, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	_, _, err := facade.Confirm(draft, models.GuestDetails{Name: "Made"}, "card")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidState, errors.GetAppError(err).Code)
}

func TestConfirmHappyPath(t *testing.T) {
	villa := testVilla()
	facade, store, notifier, availability := newTestFacade(villa)

	attempt := validatedAttempt(t, facade, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	guest := models.GuestDetails{Name: "Made Putra", Email: "made@example.com", Phone: "+6281234567890"}

	booking, reasons, err := facade.Confirm(attempt, guest, "card")
	assert.NoError(t, err)
	assert.Empty(t, reasons)
	assert.NotNil(t, booking)

	assert.Regexp(t, regexp.MustCompile(`^SU-[A-Z0-9]{8}$`), booking.ReferenceNumber)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, "2024-06-10", booking.CheckInDate)
	assert.Equal(t, "2024-06-13", booking.CheckOutDate)
	assert.Equal(t, 3, booking.Nights)
	assert.Equal(t, int64(3_800_000), booking.TotalPrice)
	assert.Equal(t, "Made Putra", booking.GuestName)
	assert.Equal(t, models.AttemptConfirmed, attempt.State())

	// The nights are occupied and the persisted snapshot matches.
	idx, err := availability.IndexFor(villa)
	assert.NoError(t, err)
	assert.True(t, idx.IsOccupied(date(2024, time.June, 10)))
	assert.Equal(t, []string{"2024-06-10", "2024-06-11", "2024-06-12"}, store.lastBookedDates)

	assert.Equal(t, []string{booking.ReferenceNumber}, notifier.confirmed)
}

func TestConfirmConflictAfterValidation(t *testing.T) {
	villa := testVilla()
	facade, _, notifier, availability := newTestFacade(villa)

	attempt := validatedAttempt(t, facade, date(2024, time.June, 10), date(2024, time.June, 13), 2)

	// A competing booking lands on the same nights before we confirm.
	idx, err := availability.IndexFor(villa)
	assert.NoError(t, err)
	assert.NoError(t, idx.Merge(date(2024, time.June, 11), date(2024, time.June, 12)))

	booking, reasons, err := facade.Confirm(attempt, models.GuestDetails{Name: "Made"}, "card")
	assert.NoError(t, err)
	assert.Nil(t, booking)
	assert.Contains(t, reasonCodes(reasons), errors.ReasonDateConflict)
	assert.Empty(t, notifier.confirmed)
}

func TestConfirmRollsBackOnStoreFailure(t *testing.T) {
	villa := testVilla()
	facade, store, notifier, availability := newTestFacade(villa)
	store.failCreate = true

	attempt := validatedAttempt(t, facade, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	_, _, err := facade.Confirm(attempt, models.GuestDetails{Name: "Made"}, "card")
	assert.Error(t, err)

	// The reserved nights must be given back when the append fails.
	idx, idxErr := availability.IndexFor(villa)
	assert.NoError(t, idxErr)
	assert.False(t, idx.IsOccupied(date(2024, time.June, 10)))
	assert.Empty(t, notifier.confirmed)
	assert.Equal(t, models.AttemptValidated, attempt.State())
}

func TestCancelKeepsDatesOccupied(t *testing.T) {
	villa := testVilla()
	facade, _, notifier, availability := newTestFacade(villa)

	attempt := validatedAttempt(t, facade, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	booking, _, err := facade.Confirm(attempt, models.GuestDetails{Name: "Made"}, "card")
	assert.NoError(t, err)

	cancelled, reasons, err := facade.Cancel(booking.ID)
	assert.NoError(t, err)
	assert.Empty(t, reasons)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, []string{booking.ReferenceNumber}, notifier.cancelled)

	// Cancellation does not free the nights.
	idx, err := availability.IndexFor(villa)
	assert.NoError(t, err)
	assert.True(t, idx.IsOccupied(date(2024, time.June, 10)))
	assert.True(t, idx.IsOccupied(date(2024, time.June, 12)))
}

func TestCancelTwiceReportsAlreadyCancelled(t *testing.T) {
	facade, _, _, _ := newTestFacade(testVilla())

	attempt := validatedAttempt(t, facade, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	booking, _, err := facade.Confirm(attempt, models.GuestDetails{Name: "Made"}, "card")
	assert.NoError(t, err)

	_, reasons, err := facade.Cancel(booking.ID)
	assert.NoError(t, err)
	assert.Empty(t, reasons)

	_, reasons, err = facade.Cancel(booking.ID)
	assert.NoError(t, err)
	assert.Contains(t, reasonCodes(reasons), errors.ReasonAlreadyCancelled)
}

func TestCancelAfterCheckInRejected(t *testing.T) {
	facade, _, _, _ := newTestFacade(testVilla())

	attempt := validatedAttempt(t, facade, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	booking, _, err := facade.Confirm(attempt, models.GuestDetails{Name: "Made"}, "card")
	assert.NoError(t, err)

	// The stay has started.
	facade.SetClock(func() time.Time { return date(2024, time.June, 10) })

	_, reasons, err := facade.Cancel(booking.ID)
	assert.NoError(t, err)
	assert.Contains(t, reasonCodes(reasons), errors.ReasonPastDate)
}

func TestCompleteDueBookings(t *testing.T) {
	facade, store, _, _ := newTestFacade(testVilla())

	attempt := validatedAttempt(t, facade, date(2024, time.June, 10), date(2024, time.June, 13), 2)
	booking, _, err := facade.Confirm(attempt, models.GuestDetails{Name: "Made"}, "card")
	assert.NoError(t, err)

	// Nothing to do while the stay is still ahead.
	completed, err := facade.CompleteDueBookings()
	assert.NoError(t, err)
	assert.Equal(t, 0, completed)

	facade.SetClock(func() time.Time { return date(2024, time.July, 1) })
	completed, err = facade.CompleteDueBookings()
	assert.NoError(t, err)
	assert.Equal(t, 1, completed)

	stored, err := store.GetByID(booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, stored.Status)
}

func TestGenerateReferenceFormat(t *testing.T) {
	store := newFakeStore()

	ref, err := GenerateReference(store)
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SU-[A-Z0-9]{8}$`), ref)
}

func TestGenerateReferenceGivesUpAfterRetries(t *testing.T) {
	store := newFakeStore()
	store.refAlwaysTaken = true

	_, err := GenerateReference(store)
	assert.Error(t, err)
}
