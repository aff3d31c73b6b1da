package services

import (
	"sort"
	"sync"
	"time"

	"stayinubud/errors"
	"stayinubud/models"
	"stayinubud/utils"
)

// AvailabilityIndex owns one villa's occupied-date set and is the single
// source of truth for conflict checks on that villa. Dates are half-open:
// a booking from check-in to check-out occupies [checkIn, checkOut), so the
// checkout day itself is free for the next arrival.
//
// Reads take a shared lock; the only mutators are Merge and ConfirmRange,
// which serialize all writers for the villa. Read queries never mutate.
type AvailabilityIndex struct {
	mu       sync.RWMutex
	occupied map[string]struct{}
}

// NewAvailabilityIndex seeds an index from persisted YYYY-MM-DD keys.
func NewAvailabilityIndex(bookedDates []string) *AvailabilityIndex {
	occupied := make(map[string]struct{}, len(bookedDates))
	for _, key := range bookedDates {
		occupied[key] = struct{}{}
	}
	return &AvailabilityIndex{occupied: occupied}
}

// IsOccupied reports whether date is covered by a confirmed booking.
func (idx *AvailabilityIndex) IsOccupied(date time.Time) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.isOccupiedKey(utils.ToDateKey(date))
}

func (idx *AvailabilityIndex) isOccupiedKey(key string) bool {
	_, ok := idx.occupied[key]
	return ok
}

// IsCheckoutOnlyDay reports whether date is free but immediately follows an
// occupied day, so it is usable only as someone's departure day.
func (idx *AvailabilityIndex) IsCheckoutOnlyDay(date time.Time) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	prev := utils.ToDateKey(date.AddDate(0, 0, -1))
	return idx.isOccupiedKey(prev) && !idx.isOccupiedKey(utils.ToDateKey(date))
}

// CanBeCheckIn reports whether date can open a new stay: not in the past and
// not already occupied.
func (idx *AvailabilityIndex) CanBeCheckIn(date, today time.Time) bool {
	if utils.IsPastDate(date, today) {
		return false
	}
	return !idx.IsOccupied(date)
}

// RangeHasConflict reports whether any night in [checkIn, checkOut) is
// occupied. checkOut on or before checkIn is a caller error.
func (idx *AvailabilityIndex) RangeHasConflict(checkIn, checkOut time.Time) (bool, error) {
	keys, err := nightKeys(checkIn, checkOut)
	if err != nil {
		return false, err
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.anyOccupied(keys), nil
}

// InteriorHasConflict checks only the nights strictly after check-in, for
// checkout-candidate selection where the check-in's own occupancy was
// already validated when it was chosen.
func (idx *AvailabilityIndex) InteriorHasConflict(checkIn, checkOut time.Time) (bool, error) {
	if utils.DaysBetween(checkIn, checkOut) <= 0 {
		return false, errors.NewAppError(errors.ErrCodeInvalidRange, "check-out must be after check-in", nil)
	}
	// A one-night stay has no interior.
	keys, err := utils.EnumerateDateKeys(checkIn.AddDate(0, 0, 1), checkOut)
	if err != nil {
		return false, err
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.anyOccupied(keys), nil
}

func (idx *AvailabilityIndex) anyOccupied(keys []string) bool {
	for _, key := range keys {
		if idx.isOccupiedKey(key) {
			return true
		}
	}
	return false
}

// Merge adds every night in [checkIn, checkOut) to the occupied set.
// Re-adding an occupied date is a no-op, so merging is idempotent.
func (idx *AvailabilityIndex) Merge(checkIn, checkOut time.Time) error {
	keys, err := nightKeys(checkIn, checkOut)
	if err != nil {
		return err
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, key := range keys {
		idx.occupied[key] = struct{}{}
	}
	return nil
}

// ConfirmRange is the atomic check-then-merge used at confirmation time: the
// conflict recheck and the merge happen under one write lock, so two
// near-simultaneous confirmations cannot both pass the check and then both
// merge overlapping ranges. Returns false without merging when a night in
// the range is already occupied. On success it also returns the occupied-set
// snapshot taken under the same lock, so what gets persisted can never miss
// a concurrent confirmation's nights.
func (idx *AvailabilityIndex) ConfirmRange(checkIn, checkOut time.Time) (bool, []string, error) {
	keys, err := nightKeys(checkIn, checkOut)
	if err != nil {
		return false, nil, err
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.anyOccupied(keys) {
		return false, nil, nil
	}
	for _, key := range keys {
		idx.occupied[key] = struct{}{}
	}
	return true, idx.snapshotLocked(), nil
}

// Release removes the nights in [checkIn, checkOut) again. It exists solely
// to roll back a ConfirmRange whose record append failed; the cancellation
// flow never releases dates.
func (idx *AvailabilityIndex) Release(checkIn, checkOut time.Time) error {
	keys, err := nightKeys(checkIn, checkOut)
	if err != nil {
		return err
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, key := range keys {
		delete(idx.occupied, key)
	}
	return nil
}

// Snapshot returns the occupied date keys in ascending order, for
// persistence and for the calendar endpoint.
func (idx *AvailabilityIndex) Snapshot() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.snapshotLocked()
}

func (idx *AvailabilityIndex) snapshotLocked() []string {
	keys := make([]string, 0, len(idx.occupied))
	for key := range idx.occupied {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func nightKeys(checkIn, checkOut time.Time) ([]string, error) {
	if utils.DaysBetween(checkIn, checkOut) <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange, "check-out must be after check-in", nil)
	}
	return utils.EnumerateDateKeys(checkIn, checkOut)
}

// AvailabilityService keeps one AvailabilityIndex per villa. Indexes are
// created lazily from the villa's persisted booked-date list and shared for
// the lifetime of the process.
type AvailabilityService struct {
	mu      sync.Mutex
	indexes map[uint]*AvailabilityIndex
}

func NewAvailabilityService() *AvailabilityService {
	return &AvailabilityService{indexes: make(map[uint]*AvailabilityIndex)}
}

// IndexFor returns the villa's index, seeding it from the villa row on first
// use. Later calls ignore the row and return the live index.
func (s *AvailabilityService) IndexFor(villa *models.Villa) (*AvailabilityIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.indexes[villa.ID]; ok {
		return idx, nil
	}
	booked, err := villa.BookedDateKeys()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "corrupt booked-date list", err)
	}
	idx := NewAvailabilityIndex(booked)
	s.indexes[villa.ID] = idx
	return idx, nil
}

// Forget drops the cached index so the next read reseeds from storage.
// Used when a villa's booked dates are edited outside the booking flow.
func (s *AvailabilityService) Forget(villaID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.indexes, villaID)
}
