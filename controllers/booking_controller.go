package controllers

import (
	goerrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stayinubud/config"
	"stayinubud/dto"
	"stayinubud/errors"
	"stayinubud/models"
	"stayinubud/response"
	"stayinubud/services"
	"stayinubud/utils"
	"stayinubud/validator"
)

const bookingsCacheKey = "bookings:all"

type BookingController struct {
	facade *services.BookingFacade
	rdb    *redis.Client
}

func NewBookingController(facade *services.BookingFacade, rdb *redis.Client) *BookingController {
	return &BookingController{facade: facade, rdb: rdb}
}

// CheckAvailability answers whether a villa can host the requested range.
// GET /checkAvailability?villaId=&checkIn=&checkOut=
func (ctl *BookingController) CheckAvailability(c *gin.Context) {
	villaID, err := parseVillaID(c.Query("villaId"))
	if err != nil {
		response.BadRequest(c, "invalid villa ID")
		return
	}

	checkIn, checkOut, err := validator.ValidateDateRange(c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		respondAppError(c, err)
		return
	}

	available, reasons, err := ctl.facade.CheckAvailability(villaID, checkIn, checkOut)
	if err != nil {
		respondFacadeError(c, err)
		return
	}

	response.Success(c, dto.AvailabilityResponse{
		Available: available,
		Reasons:   reasons,
	})
}

// Quote prices a stay without reserving anything.
// GET /quote?villaId=&checkIn=&checkOut=&guests=
func (ctl *BookingController) Quote(c *gin.Context) {
	villaID, err := parseVillaID(c.Query("villaId"))
	if err != nil {
		response.BadRequest(c, "invalid villa ID")
		return
	}

	checkIn, checkOut, err := validator.ValidateDateRange(c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		respondAppError(c, err)
		return
	}

	guests := 1
	if guestsStr := c.Query("guests"); guestsStr != "" {
		parsed, err := strconv.Atoi(guestsStr)
		if err != nil {
			response.BadRequest(c, "invalid guest count")
			return
		}
		guests = parsed
	}

	quote, reasons, err := ctl.facade.QuoteStay(villaID, checkIn, checkOut, guests)
	if err != nil {
		respondFacadeError(c, err)
		return
	}
	if len(reasons) > 0 {
		response.ValidationFailed(c, dto.AvailabilityResponse{Available: false, Reasons: reasons})
		return
	}

	response.Success(c, dto.QuoteResponse{
		Nights:      quote.Nights,
		NightlyRate: quote.NightlyRate,
		Subtotal:    quote.Subtotal,
		CleaningFee: quote.CleaningFee,
		ServiceFee:  quote.ServiceFee,
		Total:       quote.Total,
	})
}

// CreateBooking runs the full checkout: validate the attempt, confirm it,
// return the confirmed record with its reference number.
// POST /bookings
func (ctl *BookingController) CreateBooking(c *gin.Context) {
	var req dto.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := validator.ValidateConfirmRequest(&req); err != nil {
		respondAppError(c, err)
		return
	}

	// The validator guarantees both dates parse.
	checkIn, _ := utils.ParseDateKey(req.CheckIn)
	checkOut, _ := utils.ParseDateKey(req.CheckOut)

	attempt := models.NewBookingAttempt(req.VillaID, checkIn, checkOut, req.Guests)
	reasons, err := ctl.facade.Validate(attempt)
	if err != nil {
		respondFacadeError(c, err)
		return
	}
	if len(reasons) > 0 {
		response.ValidationFailed(c, dto.AvailabilityResponse{Available: false, Reasons: reasons})
		return
	}

	guest := models.GuestDetails{
		Name:  req.GuestName,
		Email: req.GuestEmail,
		Phone: req.GuestPhone,
	}
	booking, reasons, err := ctl.facade.Confirm(attempt, guest, req.PaymentMethod)
	if err != nil {
		respondFacadeError(c, err)
		return
	}
	if len(reasons) > 0 {
		response.ValidationFailed(c, dto.AvailabilityResponse{Available: false, Reasons: reasons})
		return
	}

	ctl.invalidateBookingsCache()
	response.Success(c, toBookingResponse(booking))
}

// CancelBooking soft-cancels a booking before its check-in day.
// PUT /bookings/:id/cancel
func (ctl *BookingController) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	booking, reasons, err := ctl.facade.Cancel(uint(id))
	if err != nil {
		respondFacadeError(c, err)
		return
	}
	if errors.HasReason(reasons, errors.ReasonAlreadyCancelled) {
		response.Conflict(c, "booking is already cancelled")
		return
	}
	if len(reasons) > 0 {
		response.ValidationFailed(c, reasons)
		return
	}

	ctl.invalidateBookingsCache()
	response.Success(c, toBookingResponse(booking))
}

// GetBookings lists the ledger for back-office staff, with the whole set
// cached and filters applied in memory.
// GET /bookings?page=&limit=&status=&villaId=&reference=&fromDate=&toDate=
func (ctl *BookingController) GetBookings(c *gin.Context) {
	var allBookings []models.Booking

	if err := services.GetFromRedis(config.Ctx, ctl.rdb, bookingsCacheKey, &allBookings); err != nil || len(allBookings) == 0 {
		if err := config.DB.Preload("Villa").Order("created_at DESC").Find(&allBookings).Error; err != nil {
			response.ServerError(c)
			return
		}
		if err := services.SetToRedis(config.Ctx, ctl.rdb, bookingsCacheKey, allBookings, 10*time.Minute); err != nil {
			utils.LogError("failed to cache booking list: %v", err)
		}
	}

	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	statusFilter := c.Query("status")
	villaFilter := c.Query("villaId")
	referenceFilter := strings.ToUpper(strings.TrimSpace(c.Query("reference")))
	fromDate := c.Query("fromDate")
	toDate := c.Query("toDate")

	filtered := make([]models.Booking, 0)
	for _, booking := range allBookings {
		if statusFilter != "" {
			status, err := strconv.Atoi(statusFilter)
			if err != nil || booking.Status != status {
				continue
			}
		}
		if villaFilter != "" {
			villaID, err := strconv.ParseUint(villaFilter, 10, 32)
			if err != nil || booking.VillaID != uint(villaID) {
				continue
			}
		}
		if referenceFilter != "" && !strings.Contains(booking.ReferenceNumber, referenceFilter) {
			continue
		}
		// Date keys compare lexicographically.
		if fromDate != "" && booking.CheckInDate < fromDate {
			continue
		}
		if toDate != "" && booking.CheckInDate > toDate {
			continue
		}
		filtered = append(filtered, booking)
	}

	total := len(filtered)
	start := page * limit
	end := start + limit
	if start >= total {
		filtered = []models.Booking{}
	} else {
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}

	responses := make([]dto.BookingResponse, 0, len(filtered))
	for i := range filtered {
		responses = append(responses, toBookingResponse(&filtered[i]))
	}

	response.SuccessWithPagination(c, responses, page, limit, total)
}

// GetBookingDetail returns one ledger record by ID.
// GET /bookings/:id
func (ctl *BookingController) GetBookingDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Villa").First(&booking, uint(id)).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, toBookingResponse(&booking))
}

// GetBookingByReference is the guest-facing lookup: reference number plus the
// contact email it was made under.
// GET /bookingLookup?reference=&email=
func (ctl *BookingController) GetBookingByReference(c *gin.Context) {
	reference := strings.ToUpper(strings.TrimSpace(c.Query("reference")))
	if reference == "" {
		response.BadRequest(c, "reference number is required")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Villa").Where("reference_number = ?", reference).First(&booking).Error; err != nil {
		response.NotFound(c)
		return
	}

	// Without an account system the email doubles as a shared secret.
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" || !strings.EqualFold(booking.GuestEmail, email) {
		response.NotFound(c)
		return
	}

	response.Success(c, toBookingResponse(&booking))
}

func (ctl *BookingController) invalidateBookingsCache() {
	if err := services.DeleteFromRedis(config.Ctx, ctl.rdb, bookingsCacheKey); err != nil {
		utils.LogError("failed to invalidate booking cache: %v", err)
	}
}

func toBookingResponse(booking *models.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:              booking.ID,
		ReferenceNumber: booking.ReferenceNumber,
		VillaID:         booking.VillaID,
		VillaName:       booking.Villa.Name,
		CheckInDate:     booking.CheckInDate,
		CheckOutDate:    booking.CheckOutDate,
		Guests:          booking.Guests,
		NightlyRate:     booking.NightlyRate,
		Nights:          booking.Nights,
		CleaningFee:     booking.CleaningFee,
		ServiceFee:      booking.ServiceFee,
		TotalPrice:      booking.TotalPrice,
		Status:          booking.Status,
		GuestName:       booking.GuestName,
		GuestEmail:      booking.GuestEmail,
		GuestPhone:      booking.GuestPhone,
		PaymentMethod:   booking.PaymentMethod,
		CreatedAt:       booking.CreatedAt,
	}
}

func parseVillaID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewAppError(errors.ErrCodeValidation, "invalid villa ID", err)
	}
	return uint(id), nil
}

func respondAppError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		response.BadRequest(c, appErr.Message)
		return
	}
	response.BadRequest(c, err.Error())
}

func respondFacadeError(c *gin.Context, err error) {
	switch {
	case goerrors.Is(err, errors.ErrVillaNotFound), goerrors.Is(err, errors.ErrBookingNotFound):
		response.NotFound(c)
	default:
		if appErr := errors.GetAppError(err); appErr != nil {
			response.BadRequest(c, appErr.Message)
			return
		}
		utils.LogError("booking operation failed: %v", err)
		response.ServerError(c)
	}
}
