package models

import (
	"encoding/json"
	"time"

	"stayinubud/constants"
)

type Villa struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name"`
	Location         string          `json:"location"` // Area within Ubud (Penestanan, Tegallalang, ...)
	Address          string          `json:"address"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Capacity         int             `json:"capacity"`
	NumBedrooms      int             `json:"numBedrooms"`
	NumBathrooms     int             `json:"numBathrooms"`
	PricePerNight    int64           `json:"pricePerNight"` // IDR, whole units
	CleaningFee      int64           `json:"cleaningFee"`
	ServiceFeeBps    int             `json:"serviceFeeBps"`    // 0 means the default rate applies
	ServiceFeeAmount int64           `json:"serviceFeeAmount"` // fixed fee; takes precedence over the rate when set
	MinimumStay      int             `json:"minimumStay"`
	MaximumStay      int             `json:"maximumStay"`
	IsAvailable      bool            `json:"isAvailable" gorm:"default:true"` // global switch, independent of dates
	Status           int             `json:"status"`
	Rating           float64         `json:"rating"`
	Amenities        json.RawMessage `json:"amenities" gorm:"type:json"`
	BookedDates      json.RawMessage `json:"bookedDates" gorm:"type:json"` // []string of YYYY-MM-DD keys
	Bookings         []Booking       `json:"bookings,omitempty" gorm:"foreignKey:VillaID"`
}

// EffectiveMinimumStay resolves the minimum-stay policy with the centralized default.
func (v *Villa) EffectiveMinimumStay() int {
	if v.MinimumStay >= 1 {
		return v.MinimumStay
	}
	return constants.DefaultMinimumStay
}

// EffectiveMaximumStay resolves the maximum-stay policy with the centralized default.
func (v *Villa) EffectiveMaximumStay() int {
	if v.MaximumStay >= 1 {
		return v.MaximumStay
	}
	return constants.DefaultMaximumStay
}

// EffectiveServiceFeeBps resolves the percentage service fee in basis points.
func (v *Villa) EffectiveServiceFeeBps() int {
	if v.ServiceFeeBps > 0 {
		return v.ServiceFeeBps
	}
	return constants.DefaultServiceFeeBps
}

// BookedDateKeys decodes the persisted booked-date list. A null or empty
// column yields an empty list.
func (v *Villa) BookedDateKeys() ([]string, error) {
	if len(v.BookedDates) == 0 {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(v.BookedDates, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// SetBookedDateKeys encodes keys back into the JSON column.
func (v *Villa) SetBookedDateKeys(keys []string) error {
	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	v.BookedDates = raw
	return nil
}

// AmenityList decodes the amenities JSON column.
func (v *Villa) AmenityList() ([]string, error) {
	if len(v.Amenities) == 0 {
		return nil, nil
	}
	var amenities []string
	if err := json.Unmarshal(v.Amenities, &amenities); err != nil {
		return nil, err
	}
	return amenities, nil
}
