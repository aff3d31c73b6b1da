package validator

import (
	"regexp"
	"time"

	"stayinubud/dto"
	"stayinubud/errors"
	"stayinubud/models"
	"stayinubud/utils"
)

// ValidateConfirmRequest checks the checkout submission's shape: required
// fields and well-formed dates. Policy checks (stay bounds, conflicts,
// capacity) belong to the rules layer, not here.
func ValidateConfirmRequest(req *dto.ConfirmBookingRequest) error {
	if req.VillaID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "villa ID is required", nil)
	}

	checkIn, err := utils.ParseDateKey(req.CheckIn)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid check-in date", err)
	}

	checkOut, err := utils.ParseDateKey(req.CheckOut)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid check-out date", err)
	}

	if !checkOut.After(checkIn) {
		return errors.NewAppError(errors.ErrCodeValidation, "check-out must be after check-in", nil)
	}

	if req.GuestName == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "guest name is required", nil)
	}
	if req.GuestPhone == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "guest phone is required", nil)
	}
	if !isValidPhone(req.GuestPhone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "guest phone is invalid", nil)
	}
	if req.GuestEmail != "" && !isValidEmail(req.GuestEmail) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "guest email is invalid", nil)
	}

	return nil
}

// ValidateVilla checks an admin create/update payload.
func ValidateVilla(villa *models.Villa) error {
	if villa.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "villa name is required", nil)
	}
	if villa.Capacity < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "capacity must be at least 1", nil)
	}
	if villa.PricePerNight < 0 || villa.CleaningFee < 0 || villa.ServiceFeeAmount < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "prices cannot be negative", nil)
	}
	if villa.MinimumStay < 0 || villa.MaximumStay < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "stay bounds cannot be negative", nil)
	}
	if villa.MaximumStay > 0 && villa.MinimumStay > villa.MaximumStay {
		return errors.NewAppError(errors.ErrCodeValidation, "minimum stay cannot exceed maximum stay", nil)
	}
	return nil
}

// ValidateDateRange checks a raw query-string pair and returns parsed dates.
func ValidateDateRange(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDateKey(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid check-in date", err)
	}
	checkOut, err := utils.ParseDateKey(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid check-out date", err)
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeValidation, "check-out must be after check-in", nil)
	}
	return checkIn, checkOut, nil
}

func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	return phoneRegex.MatchString(phone)
}

// ValidateEmail exposes the email check for the auth flow.
func ValidateEmail(email string) error {
	if !isValidEmail(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "invalid email", nil)
	}
	return nil
}
