package services

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	suggestionLimit  = 10
	candidatePoolCap = 100

	weightInterests    = 55.0
	weightRegion       = 20.0
	weightAvailability = 20.0
	weightTrust        = 5.0
)

// SuggestionService ranks candidate matches for a user. The ranking is a pure
// function of current rows and is recomputed per request; nothing is cached.
type SuggestionService struct {
	db        *gorm.DB
	sanctions *SanctionService
}

func NewSuggestionService(db *gorm.DB, sanctions *SanctionService) *SuggestionService {
	return &SuggestionService{db: db, sanctions: sanctions}
}

// Suggest returns the top candidates for userID ordered by score, with the
// per-signal breakdown. Blocked users and users under an unexpired
// SUSPEND/BAN sanction never appear. Ties keep fetch order (stable sort).
func (s *SuggestionService) Suggest(userID uuid.UUID) ([]dto.Suggestion, error) {
	var me models.User
	err := s.db.Preload("Interests").Preload("Availability").
		First(&me, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	if err := s.sanctions.requireUnrestricted(userID, "user"); err != nil {
		return nil, err
	}

	var candidates []models.User
	err = s.db.Preload("Interests").Preload("Availability").
		Where("id <> ? AND blocked = ?", userID, false).
		Limit(candidatePoolCap).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	restricted, err := s.restrictedSet(candidates)
	if err != nil {
		return nil, err
	}

	myInterests := interestSet(me.Interests)
	myMinutes := weeklyMinutes(me.Availability)

	suggestions := make([]dto.Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		if restricted[candidate.ID] {
			continue
		}

		breakdown := dto.ScoreBreakdown{
			InterestOverlapRatio:     interestOverlapRatio(myInterests, interestSet(candidate.Interests)),
			RegionMatch:              regionMatch(me.Region, candidate.Region),
			AvailabilityOverlapRatio: availabilityOverlapRatio(me.Availability, candidate.Availability, myMinutes),
			TrustNormalized:          trustNormalized(candidate.TrustScore),
		}
		score := weightInterests*breakdown.InterestOverlapRatio +
			weightRegion*breakdown.RegionMatch +
			weightAvailability*breakdown.AvailabilityOverlapRatio +
			weightTrust*breakdown.TrustNormalized

		suggestions = append(suggestions, dto.Suggestion{
			User:      candidate,
			Score:     round2(score),
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}
	return suggestions, nil
}

// restrictedSet resolves which candidates are under an unexpired SUSPEND/BAN
// sanction, using one query for the whole pool.
func (s *SuggestionService) restrictedSet(candidates []models.User) (map[uuid.UUID]bool, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}

	var sanctions []models.Sanction
	err := s.db.
		Where("user_id IN ? AND level IN ?", ids,
			[]string{models.SanctionSuspend7D, models.SanctionSuspend30, models.SanctionBan}).
		Order("created_at DESC").
		Find(&sanctions).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	seen := make(map[uuid.UUID]bool, len(sanctions))
	restricted := make(map[uuid.UUID]bool)
	for _, sanction := range sanctions {
		if seen[sanction.UserID] {
			continue // only the most recent sanction per user counts
		}
		seen[sanction.UserID] = true
		if sanction.Restricts(now) {
			restricted[sanction.UserID] = true
		}
	}
	return restricted, nil
}

func interestSet(interests []models.UserInterest) map[string]bool {
	set := make(map[string]bool, len(interests))
	for _, i := range interests {
		set[strings.ToLower(i.Name)] = true
	}
	return set
}

func interestOverlapRatio(mine, theirs map[string]bool) float64 {
	union := len(mine)
	intersection := 0
	for name := range theirs {
		if mine[name] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func regionMatch(a, b string) float64 {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a != "" && b != "" && strings.EqualFold(a, b) {
		return 1
	}
	return 0
}

func trustNormalized(score int) float64 {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return float64(score) / 100
}

// availabilityOverlapRatio sums overlapping minutes across weekday-matching
// slot pairs and normalizes by the larger weekly total, capped at 1.
func availabilityOverlapRatio(mine, theirs []models.AvailabilitySlot, myMinutes int) float64 {
	overlap := 0
	for _, a := range mine {
		for _, b := range theirs {
			if a.Weekday != b.Weekday {
				continue
			}
			start := max(slotMinutes(a.StartTime), slotMinutes(b.StartTime))
			end := min(slotMinutes(a.EndTime), slotMinutes(b.EndTime))
			if end > start {
				overlap += end - start
			}
		}
	}

	denom := max(myMinutes, weeklyMinutes(theirs), 1)
	ratio := float64(overlap) / float64(denom)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

func weeklyMinutes(slots []models.AvailabilitySlot) int {
	total := 0
	for _, s := range slots {
		if d := slotMinutes(s.EndTime) - slotMinutes(s.StartTime); d > 0 {
			total += d
		}
	}
	return total
}

// slotMinutes reads an "HH:MM" wall-clock string as minutes since midnight.
// Slots are validated at write time, so malformed values read as 0.
func slotMinutes(hhmm string) int {
	m, err := clockMinutes(hhmm)
	if err != nil {
		return 0
	}
	return m
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
