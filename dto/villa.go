package dto

import (
	"encoding/json"

	"stayinubud/models"
)

// SearchFilters is the villa-list query, also what gets remembered per
// session in Redis. Pointer fields distinguish "not given" from zero.
type SearchFilters struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Guests    *int     `json:"guests"`
	PriceMin  *int64   `json:"priceMin"`
	PriceMax  *int64   `json:"priceMax"`
	Amenities []string `json:"amenities"`
	CheckIn   string   `json:"checkIn"`  // YYYY-MM-DD
	CheckOut  string   `json:"checkOut"` // YYYY-MM-DD
	SortBy    string   `json:"sortBy"`   // price-asc, price-desc, capacity, rating
}

// VillaResponse is the public villa card.
type VillaResponse struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Location         string          `json:"location"`
	Address          string          `json:"address"`
	ShortDescription string          `json:"shortDescription"`
	Capacity         int             `json:"capacity"`
	NumBedrooms      int             `json:"numBedrooms"`
	NumBathrooms     int             `json:"numBathrooms"`
	PricePerNight    int64           `json:"pricePerNight"`
	CleaningFee      int64           `json:"cleaningFee"`
	MinimumStay      int             `json:"minimumStay"`
	MaximumStay      int             `json:"maximumStay"`
	IsAvailable      bool            `json:"isAvailable"`
	Rating           float64         `json:"rating"`
	Amenities        json.RawMessage `json:"amenities"`
}

// ScoredVilla pairs a villa with its fuzzy-search relevance score.
type ScoredVilla struct {
	Villa models.Villa `json:"villa"`
	Score int          `json:"score"`
}

// SaveVillaRequest covers admin create and update.
type SaveVillaRequest struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	Address          string   `json:"address"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Capacity         int      `json:"capacity"`
	NumBedrooms      int      `json:"numBedrooms"`
	NumBathrooms     int      `json:"numBathrooms"`
	PricePerNight    int64    `json:"pricePerNight"`
	CleaningFee      int64    `json:"cleaningFee"`
	ServiceFeeBps    int      `json:"serviceFeeBps"`
	ServiceFeeAmount int64    `json:"serviceFeeAmount"`
	MinimumStay      int      `json:"minimumStay"`
	MaximumStay      int      `json:"maximumStay"`
	Amenities        []string `json:"amenities"`
}

// VillaStatusRequest flips the villa-level availability switch.
type VillaStatusRequest struct {
	ID          uint `json:"id" binding:"required"`
	IsAvailable bool `json:"isAvailable"`
}
