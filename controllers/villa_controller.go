package controllers

import (
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stayinubud/config"
	"stayinubud/constants"
	"stayinubud/dto"
	"stayinubud/models"
	"stayinubud/response"
	"stayinubud/services"
	"stayinubud/utils"
	"stayinubud/validator"
)

const villasCacheKey = "villas:all"

type VillaController struct {
	rdb          *redis.Client
	availability *services.AvailabilityService
}

func NewVillaController(rdb *redis.Client, availability *services.AvailabilityService) *VillaController {
	return &VillaController{rdb: rdb, availability: availability}
}

// GetVillas is the public villa list: filters from the query string are
// merged with the session's remembered ones, applied over the cached villa
// set, sorted and paginated.
// GET /villas?name=&location=&guests=&priceMin=&priceMax=&amenities=&checkIn=&checkOut=&sortBy=&page=&limit=
func (ctl *VillaController) GetVillas(c *gin.Context) {
	filters := bindSearchFilters(c)

	sessionID := c.GetString("sessionId")
	if sessionID != "" {
		if remembered, err := services.GetLastFilters(config.Ctx, ctl.rdb, sessionID); err == nil {
			filters = services.MergeFilters(remembered, filters)
		}
		if err := services.SaveLastFilters(config.Ctx, ctl.rdb, sessionID, filters); err != nil {
			log.Printf("failed to remember session filters: %v", err)
		}
	}

	allVillas, err := ctl.loadVillas()
	if err != nil {
		response.ServerError(c)
		return
	}

	filtered := make([]models.Villa, 0)
	for i := range allVillas {
		if !allVillas[i].IsAvailable {
			continue
		}
		if ctl.matchesFilters(&allVillas[i], filters) {
			filtered = append(filtered, allVillas[i])
		}
	}

	sortVillas(filtered, filters.SortBy)

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

	total := len(filtered)
	start := page * limit
	end := start + limit
	if start >= total {
		filtered = []models.Villa{}
	} else {
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}

	responses := make([]dto.VillaResponse, 0, len(filtered))
	for i := range filtered {
		responses = append(responses, toVillaResponse(&filtered[i]))
	}

	response.SuccessWithPagination(c, responses, page, limit, total)
}

// SearchVillas is the free-text search: the query is fuzzy-matched against
// villa names, locations and amenities and results come back by relevance.
// GET /villas/search?q=
func (ctl *VillaController) SearchVillas(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.BadRequest(c, "search query is required")
		return
	}

	allVillas, err := ctl.loadVillas()
	if err != nil {
		response.ServerError(c)
		return
	}

	available := make([]models.Villa, 0, len(allVillas))
	for _, villa := range allVillas {
		if villa.IsAvailable {
			available = append(available, villa)
		}
	}

	scored := services.SearchVillas(query, available)
	responses := make([]dto.VillaResponse, 0, len(scored))
	for i := range scored {
		responses = append(responses, toVillaResponse(&scored[i].Villa))
	}

	response.SuccessWithTotal(c, responses, len(responses))
}

// GetVillaDetail returns one villa with its full description.
// GET /villas/:id
func (ctl *VillaController) GetVillaDetail(c *gin.Context) {
	villa, ok := ctl.villaByParam(c)
	if !ok {
		return
	}
	response.Success(c, villa)
}

// GetVillaBookedDates returns the villa's occupied nights, sorted, for the
// client-side calendar.
// GET /villas/:id/bookedDates
func (ctl *VillaController) GetVillaBookedDates(c *gin.Context) {
	villa, ok := ctl.villaByParam(c)
	if !ok {
		return
	}

	idx, err := ctl.availability.IndexFor(villa)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"villaId":     villa.ID,
		"bookedDates": idx.Snapshot(),
	})
}

// GetVillaCalendar classifies every day of a month for the date picker:
// past, booked, checkout-only or available.
// GET /villas/:id/calendar?month=YYYY-MM
func (ctl *VillaController) GetVillaCalendar(c *gin.Context) {
	villa, ok := ctl.villaByParam(c)
	if !ok {
		return
	}

	month, err := time.Parse("2006-01", c.Query("month"))
	if err != nil {
		response.BadRequest(c, "month must be YYYY-MM")
		return
	}

	idx, err := ctl.availability.IndexFor(villa)
	if err != nil {
		response.ServerError(c)
		return
	}
	rules := services.NewBookingRules(villa, idx, utils.Today())
	selection := services.NewDateSelection(rules)

	days := make([]gin.H, 0, 31)
	for day := month; day.Month() == month.Month(); day = day.AddDate(0, 0, 1) {
		days = append(days, gin.H{
			"date":   utils.ToDateKey(day),
			"status": selection.DayStatusFor(day),
		})
	}

	response.Success(c, gin.H{
		"villaId": villa.ID,
		"month":   c.Query("month"),
		"days":    days,
	})
}

// GetCheckoutOptions lists the legal checkout days for a chosen check-in,
// honoring the stay bounds and any booked night in between.
// GET /villas/:id/checkoutOptions?checkIn=YYYY-MM-DD
func (ctl *VillaController) GetCheckoutOptions(c *gin.Context) {
	villa, ok := ctl.villaByParam(c)
	if !ok {
		return
	}

	checkIn, err := utils.ParseDateKey(c.Query("checkIn"))
	if err != nil {
		response.BadRequest(c, "invalid check-in date")
		return
	}

	idx, err := ctl.availability.IndexFor(villa)
	if err != nil {
		response.ServerError(c)
		return
	}
	rules := services.NewBookingRules(villa, idx, utils.Today())
	selection := services.NewDateSelection(rules)
	if !selection.Select(checkIn) {
		response.ValidationFailed(c, gin.H{"message": "this date cannot start a stay"})
		return
	}

	options := make([]string, 0)
	for offset := 1; offset <= villa.EffectiveMaximumStay(); offset++ {
		candidate := checkIn.AddDate(0, 0, offset)
		if selection.CanSelect(candidate) {
			options = append(options, utils.ToDateKey(candidate))
		}
	}

	response.Success(c, gin.H{
		"villaId":         villa.ID,
		"checkIn":         utils.ToDateKey(checkIn),
		"checkoutOptions": options,
	})
}

// ClearFilters drops the session's remembered search filters.
// DELETE /villas/filters
func (ctl *VillaController) ClearFilters(c *gin.Context) {
	sessionID := c.GetString("sessionId")
	if sessionID != "" {
		if err := services.ClearLastFilters(config.Ctx, ctl.rdb, sessionID); err != nil {
			log.Printf("failed to clear session filters: %v", err)
		}
	}
	response.Success(c, nil)
}

// CreateVilla adds a villa to the catalog. Admin only.
// POST /villas
func (ctl *VillaController) CreateVilla(c *gin.Context) {
	var req dto.SaveVillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	villa := villaFromRequest(&req)
	if err := validator.ValidateVilla(villa); err != nil {
		respondAppError(c, err)
		return
	}

	if err := config.DB.Create(villa).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidateVillasCache()
	response.Success(c, villa)
}

// UpdateVilla rewrites a villa's catalog fields. The cached availability
// index is dropped so the next read reseeds from the row. Admin only.
// PUT /villas
func (ctl *VillaController) UpdateVilla(c *gin.Context) {
	var req dto.SaveVillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.ID == 0 {
		response.BadRequest(c, "villa ID is required")
		return
	}

	var villa models.Villa
	if err := config.DB.First(&villa, req.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	applyVillaRequest(&villa, &req)
	if err := validator.ValidateVilla(&villa); err != nil {
		respondAppError(c, err)
		return
	}

	if err := config.DB.Save(&villa).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.availability.Forget(villa.ID)
	ctl.invalidateVillasCache()
	response.Success(c, villa)
}

// ChangeVillaStatus flips the villa-level availability switch. Admin only.
// PUT /villaStatus
func (ctl *VillaController) ChangeVillaStatus(c *gin.Context) {
	var req dto.VillaStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var villa models.Villa
	if err := config.DB.First(&villa, req.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	villa.IsAvailable = req.IsAvailable
	villa.Status = constants.VillaStatusInactive
	if req.IsAvailable {
		villa.Status = constants.VillaStatusActive
	}
	if err := config.DB.Model(&villa).Updates(map[string]interface{}{
		"is_available": villa.IsAvailable,
		"status":       villa.Status,
	}).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidateVillasCache()
	response.Success(c, villa)
}

func (ctl *VillaController) villaByParam(c *gin.Context) (*models.Villa, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid villa ID")
		return nil, false
	}

	var villa models.Villa
	if err := config.DB.First(&villa, uint(id)).Error; err != nil {
		response.NotFound(c)
		return nil, false
	}
	return &villa, true
}

func (ctl *VillaController) loadVillas() ([]models.Villa, error) {
	var villas []models.Villa
	if err := services.GetFromRedis(config.Ctx, ctl.rdb, villasCacheKey, &villas); err == nil && len(villas) > 0 {
		return villas, nil
	}
	if err := config.DB.Find(&villas).Error; err != nil {
		return nil, err
	}
	if err := services.SetToRedis(config.Ctx, ctl.rdb, villasCacheKey, villas, 5*time.Minute); err != nil {
		log.Printf("failed to cache villa list: %v", err)
	}
	return villas, nil
}

func (ctl *VillaController) matchesFilters(villa *models.Villa, filters *dto.SearchFilters) bool {
	if filters.Name != "" {
		query := services.NormalizeQuery(filters.Name)
		if !strings.Contains(services.NormalizeQuery(villa.Name), query) {
			return false
		}
	}
	if filters.Location != "" {
		query := services.NormalizeQuery(filters.Location)
		if !strings.Contains(services.NormalizeQuery(villa.Location), query) {
			return false
		}
	}
	if filters.Guests != nil && villa.Capacity < *filters.Guests {
		return false
	}
	if filters.PriceMin != nil && villa.PricePerNight < *filters.PriceMin {
		return false
	}
	if filters.PriceMax != nil && villa.PricePerNight > *filters.PriceMax {
		return false
	}
	if len(filters.Amenities) > 0 && !hasAllAmenities(villa, filters.Amenities) {
		return false
	}
	if filters.CheckIn != "" && filters.CheckOut != "" {
		checkIn, errIn := utils.ParseDateKey(filters.CheckIn)
		checkOut, errOut := utils.ParseDateKey(filters.CheckOut)
		if errIn == nil && errOut == nil && checkOut.After(checkIn) {
			idx, err := ctl.availability.IndexFor(villa)
			if err != nil {
				return false
			}
			// Any single violation disqualifies the villa; no need to
			// collect them all while filtering a list.
			guests := 1
			if filters.Guests != nil {
				guests = *filters.Guests
			}
			rules := services.NewBookingRules(villa, idx, utils.Today())
			attempt := models.NewBookingAttempt(villa.ID, checkIn, checkOut, guests)
			if len(rules.EvaluateFailFast(attempt)) > 0 {
				return false
			}
		}
	}
	return true
}

func (ctl *VillaController) invalidateVillasCache() {
	if err := services.DeleteFromRedis(config.Ctx, ctl.rdb, villasCacheKey); err != nil {
		log.Printf("failed to invalidate villa cache: %v", err)
	}
}

func hasAllAmenities(villa *models.Villa, wanted []string) bool {
	amenities, err := villa.AmenityList()
	if err != nil {
		return false
	}
	have := make(map[string]bool, len(amenities))
	for _, amenity := range amenities {
		have[services.NormalizeQuery(amenity)] = true
	}
	for _, amenity := range wanted {
		if !have[services.NormalizeQuery(amenity)] {
			return false
		}
	}
	return true
}

func sortVillas(villas []models.Villa, sortBy string) {
	switch sortBy {
	case "price-asc":
		sort.SliceStable(villas, func(i, j int) bool { return villas[i].PricePerNight < villas[j].PricePerNight })
	case "price-desc":
		sort.SliceStable(villas, func(i, j int) bool { return villas[i].PricePerNight > villas[j].PricePerNight })
	case "capacity":
		sort.SliceStable(villas, func(i, j int) bool { return villas[i].Capacity > villas[j].Capacity })
	default:
		sort.SliceStable(villas, func(i, j int) bool { return villas[i].Rating > villas[j].Rating })
	}
}

func bindSearchFilters(c *gin.Context) *dto.SearchFilters {
	filters := &dto.SearchFilters{
		Name:     c.Query("name"),
		Location: c.Query("location"),
		CheckIn:  c.Query("checkIn"),
		CheckOut: c.Query("checkOut"),
		SortBy:   c.Query("sortBy"),
	}
	if guestsStr := c.Query("guests"); guestsStr != "" {
		if guests, err := strconv.Atoi(guestsStr); err == nil && guests > 0 {
			filters.Guests = &guests
		}
	}
	if minStr := c.Query("priceMin"); minStr != "" {
		if min, err := strconv.ParseInt(minStr, 10, 64); err == nil {
			filters.PriceMin = &min
		}
	}
	if maxStr := c.Query("priceMax"); maxStr != "" {
		if max, err := strconv.ParseInt(maxStr, 10, 64); err == nil {
			filters.PriceMax = &max
		}
	}
	if amenities := c.Query("amenities"); amenities != "" {
		for _, amenity := range strings.Split(amenities, ",") {
			if trimmed := strings.TrimSpace(amenity); trimmed != "" {
				filters.Amenities = append(filters.Amenities, trimmed)
			}
		}
	}
	return filters
}

func toVillaResponse(villa *models.Villa) dto.VillaResponse {
	return dto.VillaResponse{
		ID:               villa.ID,
		Name:             villa.Name,
		Location:         villa.Location,
		Address:          villa.Address,
		ShortDescription: villa.ShortDescription,
		Capacity:         villa.Capacity,
		NumBedrooms:      villa.NumBedrooms,
		NumBathrooms:     villa.NumBathrooms,
		PricePerNight:    villa.PricePerNight,
		CleaningFee:      villa.CleaningFee,
		MinimumStay:      villa.EffectiveMinimumStay(),
		MaximumStay:      villa.EffectiveMaximumStay(),
		IsAvailable:      villa.IsAvailable,
		Rating:           villa.Rating,
		Amenities:        villa.Amenities,
	}
}

func villaFromRequest(req *dto.SaveVillaRequest) *models.Villa {
	villa := &models.Villa{
		Name:             req.Name,
		Location:         req.Location,
		Address:          req.Address,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Capacity:         req.Capacity,
		NumBedrooms:      req.NumBedrooms,
		NumBathrooms:     req.NumBathrooms,
		PricePerNight:    req.PricePerNight,
		CleaningFee:      req.CleaningFee,
		ServiceFeeBps:    req.ServiceFeeBps,
		ServiceFeeAmount: req.ServiceFeeAmount,
		MinimumStay:      req.MinimumStay,
		MaximumStay:      req.MaximumStay,
		IsAvailable:      true,
		Status:           constants.VillaStatusActive,
	}
	if amenities, err := json.Marshal(req.Amenities); err == nil {
		villa.Amenities = amenities
	}
	return villa
}

func applyVillaRequest(villa *models.Villa, req *dto.SaveVillaRequest) {
	villa.Name = req.Name
	villa.Location = req.Location
	villa.Address = req.Address
	villa.ShortDescription = req.ShortDescription
	villa.Description = req.Description
	villa.Capacity = req.Capacity
	villa.NumBedrooms = req.NumBedrooms
	villa.NumBathrooms = req.NumBathrooms
	villa.PricePerNight = req.PricePerNight
	villa.CleaningFee = req.CleaningFee
	villa.ServiceFeeBps = req.ServiceFeeBps
	villa.ServiceFeeAmount = req.ServiceFeeAmount
	villa.MinimumStay = req.MinimumStay
	villa.MaximumStay = req.MaximumStay
	if amenities, err := json.Marshal(req.Amenities); err == nil {
		villa.Amenities = amenities
	}
}
