package services

import (
	"crypto/rand"
	goerrors "errors"
	"fmt"

	"gorm.io/gorm"

	"stayinubud/commands"
	"stayinubud/constants"
	"stayinubud/errors"
	"stayinubud/models"
)

// BookingStore is the booking ledger. The facade produces plain records; the
// store persists them and reflects new booked dates back onto the villa row
// so future loads reseed the availability index correctly.
type BookingStore interface {
	Create(booking *models.Booking, bookedDates []string) error
	Save(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	GetByReference(ref string) (*models.Booking, error)
	ReferenceExists(ref string) (bool, error)
	ListDueForCompletion(todayKey string) ([]models.Booking, error)
}

// VillaStore provides the villa metadata the booking flow consumes.
type VillaStore interface {
	GetVilla(id uint) (*models.Villa, error)
}

// GormStore backs both stores with Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create appends the booking and updates the villa's booked-date column in
// one transaction, so the ledger and the persisted date set cannot diverge.
func (s *GormStore) Create(booking *models.Booking, bookedDates []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := commands.NewCreateBookingCommand(booking, tx).Execute(); err != nil {
			return err
		}
		return commands.NewUpdateVillaDatesCommand(booking.VillaID, bookedDates, tx).Execute()
	})
}

func (s *GormStore) Save(booking *models.Booking) error {
	return commands.NewUpdateBookingCommand(booking, s.db).Execute()
}

func (s *GormStore) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Villa").First(&booking, id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) GetByReference(ref string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Villa").Where("reference_number = ?", ref).First(&booking).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *GormStore) ReferenceExists(ref string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Booking{}).Where("reference_number = ?", ref).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListDueForCompletion finds confirmed bookings whose checkout day has
// passed. Date keys compare lexicographically, so string comparison is safe.
func (s *GormStore) ListDueForCompletion(todayKey string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Where("status = ? AND check_out_date < ?", models.BookingStatusConfirmed, todayKey).Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) GetVilla(id uint) (*models.Villa, error) {
	var villa models.Villa
	if err := s.db.First(&villa, id).Error; err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrVillaNotFound
		}
		return nil, err
	}
	return &villa, nil
}

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReference issues a human-readable reference number, e.g.
// SU-7K2P9QXZ, regenerating on the rare collision with an existing booking.
func GenerateReference(store BookingStore) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		ref, err := randomReference()
		if err != nil {
			return "", err
		}
		exists, err := store.ReferenceExists(ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique reference number")
}

func randomReference() (string, error) {
	buf := make([]byte, constants.ReferenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}
	return constants.ReferencePrefix + "-" + string(buf), nil
}
