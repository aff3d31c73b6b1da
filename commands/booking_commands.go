package commands

import (
	"stayinubud/models"

	"gorm.io/gorm"
)

// BookingCommand is a unit of ledger work.
type BookingCommand interface {
	Execute() error
}

// CreateBookingCommand appends a new booking row.
type CreateBookingCommand struct {
	booking *models.Booking
	db      *gorm.DB
}

func NewCreateBookingCommand(booking *models.Booking, db *gorm.DB) *CreateBookingCommand {
	return &CreateBookingCommand{
		booking: booking,
		db:      db,
	}
}

func (c *CreateBookingCommand) Execute() error {
	return c.db.Create(c.booking).Error
}

// UpdateBookingCommand saves status and detail changes on an existing row.
type UpdateBookingCommand struct {
	booking *models.Booking
	db      *gorm.DB
}

func NewUpdateBookingCommand(booking *models.Booking, db *gorm.DB) *UpdateBookingCommand {
	return &UpdateBookingCommand{
		booking: booking,
		db:      db,
	}
}

func (c *UpdateBookingCommand) Execute() error {
	return c.db.Save(c.booking).Error
}

// UpdateVillaDatesCommand reflects a new booked-date set onto the villa row,
// so future loads seed the availability index with the merged dates.
type UpdateVillaDatesCommand struct {
	villaID     uint
	bookedDates []string
	db          *gorm.DB
}

func NewUpdateVillaDatesCommand(villaID uint, bookedDates []string, db *gorm.DB) *UpdateVillaDatesCommand {
	return &UpdateVillaDatesCommand{
		villaID:     villaID,
		bookedDates: bookedDates,
		db:          db,
	}
}

func (c *UpdateVillaDatesCommand) Execute() error {
	var villa models.Villa
	if err := c.db.First(&villa, c.villaID).Error; err != nil {
		return err
	}
	if err := villa.SetBookedDateKeys(c.bookedDates); err != nil {
		return err
	}
	return c.db.Model(&villa).Update("booked_dates", villa.BookedDates).Error
}
