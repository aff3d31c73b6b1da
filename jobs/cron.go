package jobs

import (
	"log"

	"github.com/robfig/cron/v3"
)

// BookingCompleter moves confirmed bookings whose stay has ended to
// completed. Implemented by the booking facade.
type BookingCompleter interface {
	CompleteDueBookings() (int, error)
}

var bookingCompleter BookingCompleter

// SetBookingCompleter wires the implementation used by the daily sweep.
func SetBookingCompleter(completer BookingCompleter) {
	bookingCompleter = completer
}

// InitCronJobs registers the scheduled jobs and starts the scheduler.
func InitCronJobs(c *cron.Cron) error {
	// Daily at midnight: sweep past checkouts into completed.
	_, err := c.AddFunc("0 0 * * *", func() {
		if bookingCompleter == nil {
			log.Println("booking completer is not configured, skipping sweep")
			return
		}
		completed, err := bookingCompleter.CompleteDueBookings()
		if err != nil {
			log.Printf("booking completion sweep failed: %v", err)
			return
		}
		log.Printf("booking completion sweep finished, %d bookings completed", completed)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
