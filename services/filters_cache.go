package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"stayinubud/dto"
)

// The villa-list screen remembers a visitor's last search per session, so a
// partial follow-up request can be merged with what they asked before.

func SaveLastFilters(ctx context.Context, rdb *redis.Client, key string, filters *dto.SearchFilters) error {
	b, _ := json.Marshal(filters)
	return rdb.Set(ctx, "last_filters:"+key, b, 30*time.Minute).Err()
}

func GetLastFilters(ctx context.Context, rdb *redis.Client, key string) (*dto.SearchFilters, error) {
	val, err := rdb.Get(ctx, "last_filters:"+key).Result()
	if err != nil {
		return nil, err
	}
	var filters dto.SearchFilters
	json.Unmarshal([]byte(val), &filters)
	return &filters, nil
}

func ClearLastFilters(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, "last_filters:"+key).Err()
}

// MergeFilters overlays a new request on the remembered one: empty fields
// keep their previous value, contradictory price bounds drop the stale side.
func MergeFilters(old *dto.SearchFilters, new *dto.SearchFilters) *dto.SearchFilters {
	new.Location = orString(new.Location, old.Location)
	new.Name = orString(new.Name, old.Name)
	new.Guests = orIntPointer(new.Guests, old.Guests)
	new.CheckIn = orString(new.CheckIn, old.CheckIn)
	new.CheckOut = orString(new.CheckOut, old.CheckOut)
	new.SortBy = orString(new.SortBy, old.SortBy)

	new.Amenities = mergeUniqueStrings(old.Amenities, new.Amenities)

	if new.PriceMin != nil && old.PriceMax != nil && *new.PriceMin > *old.PriceMax {
		new.PriceMax = nil
	} else {
		new.PriceMax = orInt64Pointer(new.PriceMax, old.PriceMax)
	}

	if new.PriceMax != nil && old.PriceMin != nil && *new.PriceMax < *old.PriceMin {
		new.PriceMin = nil
	} else {
		new.PriceMin = orInt64Pointer(new.PriceMin, old.PriceMin)
	}
	return new
}

func orString(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

func orIntPointer(newVal, oldVal *int) *int {
	if newVal != nil {
		return newVal
	}
	return oldVal
}

func orInt64Pointer(newVal, oldVal *int64) *int64 {
	if newVal != nil {
		return newVal
	}
	return oldVal
}

func mergeUniqueStrings(a, b []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, val := range a {
		if !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	for _, val := range b {
		if !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}
