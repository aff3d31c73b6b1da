package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayinubud/dto"
	"stayinubud/errors"
	"stayinubud/models"
)

func validRequest() *dto.ConfirmBookingRequest {
	return &dto.ConfirmBookingRequest{
		VillaID:    1,
		CheckIn:    "2024-06-10",
		CheckOut:   "2024-06-13",
		Guests:     2,
		GuestName:  "Made Putra",
		GuestEmail: "made@example.com",
		GuestPhone: "+6281234567890",
	}
}

func TestValidateConfirmRequest(t *testing.T) {
	assert.NoError(t, ValidateConfirmRequest(validRequest()))
}

func TestValidateConfirmRequestRejectsBadShape(t *testing.T) {
	req := validRequest()
	req.VillaID = 0
	assert.Error(t, ValidateConfirmRequest(req))

	req = validRequest()
	req.CheckIn = "10/06/2024"
	err := ValidateConfirmRequest(req)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetAppError(err).Code)

	req = validRequest()
	req.CheckOut = req.CheckIn
	assert.Error(t, ValidateConfirmRequest(req))

	req = validRequest()
	req.GuestName = ""
	assert.Error(t, ValidateConfirmRequest(req))

	req = validRequest()
	req.GuestPhone = "not-a-phone"
	err = ValidateConfirmRequest(req)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidPhone, errors.GetAppError(err).Code)

	req = validRequest()
	req.GuestEmail = "not-an-email"
	assert.Error(t, ValidateConfirmRequest(req))

	// Email is optional.
	req = validRequest()
	req.GuestEmail = ""
	assert.NoError(t, ValidateConfirmRequest(req))
}

func TestValidateDateRange(t *testing.T) {
	checkIn, checkOut, err := ValidateDateRange("2024-06-10", "2024-06-13")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), checkIn)
	assert.Equal(t, time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC), checkOut)

	_, _, err = ValidateDateRange("2024-06-13", "2024-06-10")
	assert.Error(t, err)

	_, _, err = ValidateDateRange("", "2024-06-10")
	assert.Error(t, err)
}

func TestValidateVilla(t *testing.T) {
	villa := &models.Villa{Name: "Villa Sari", Capacity: 4}
	assert.NoError(t, ValidateVilla(villa))

	assert.Error(t, ValidateVilla(&models.Villa{Capacity: 4}))
	assert.Error(t, ValidateVilla(&models.Villa{Name: "X", Capacity: 0}))
	assert.Error(t, ValidateVilla(&models.Villa{Name: "X", Capacity: 2, PricePerNight: -1}))
	assert.Error(t, ValidateVilla(&models.Villa{Name: "X", Capacity: 2, MinimumStay: 5, MaximumStay: 3}))
}
