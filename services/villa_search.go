package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"stayinubud/dto"
	"stayinubud/models"
)

// Free-text villa search: the query is normalized, matched against the known
// locations with closestmatch, and ranked against names and amenities by
// Levenshtein similarity. Scoring fans out per villa and results come back
// ordered by score.

// NormalizeQuery lowercases and strips diacritics so "Payangan café" and
// "payangan cafe" rank the same.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// NewLocationMatcher builds a closest-match index over the distinct villa
// locations, using 2- and 3-length substring bags.
func NewLocationMatcher(villas []models.Villa) *closestmatch.ClosestMatch {
	return closestmatch.New(uniqueLocations(villas), []int{2, 3})
}

func uniqueLocations(villas []models.Villa) []string {
	seen := make(map[string]bool)
	for _, villa := range villas {
		if villa.Location != "" {
			seen[NormalizeQuery(villa.Location)] = true
		}
	}
	locations := make([]string, 0, len(seen))
	for loc := range seen {
		locations = append(locations, loc)
	}
	return locations
}

// Similarity is 1 - normalized Levenshtein distance; empty strings count as
// identical.
func Similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

func scoreVilla(query string, villa models.Villa, locations *closestmatch.ClosestMatch) int {
	score := 0

	normalizedName := NormalizeQuery(villa.Name)
	if strings.Contains(normalizedName, query) || Similarity(query, normalizedName) > 0.7 {
		score += 20
	}

	if locations.Closest(query) == NormalizeQuery(villa.Location) {
		score += 13
	}

	score += scoreAmenities(query, villa)
	return score
}

func scoreAmenities(query string, villa models.Villa) int {
	amenities, err := villa.AmenityList()
	if err != nil {
		return 0
	}
	maxAmenityScore := 12
	amenityScore := 0
	for _, amenity := range amenities {
		normalized := NormalizeQuery(amenity)
		if Similarity(query, normalized) > 0.7 || strings.Contains(query, normalized) {
			amenityScore += 4
			if amenityScore >= maxAmenityScore {
				break
			}
		}
	}
	return amenityScore
}

// SearchVillas scores every villa against the query concurrently and returns
// the matches sorted by descending score.
func SearchVillas(query string, villas []models.Villa) []dto.ScoredVilla {
	normalizedQuery := NormalizeQuery(query)
	locations := NewLocationMatcher(villas)

	scoreCh := make(chan dto.ScoredVilla, len(villas))
	var wg sync.WaitGroup

	for _, villa := range villas {
		wg.Add(1)
		go func(villa models.Villa) {
			defer wg.Done()
			score := scoreVilla(normalizedQuery, villa, locations)
			if score > 0 {
				scoreCh <- dto.ScoredVilla{
					Villa: villa,
					Score: score,
				}
			}
		}(villa)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	var scored []dto.ScoredVilla
	for scoredVilla := range scoreCh {
		scored = append(scored, scoredVilla)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
