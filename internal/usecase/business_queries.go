package usecase

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lovelocal/directory-service/internal/domain"
	"github.com/lovelocal/directory-service/internal/geo"
	"github.com/lovelocal/directory-service/internal/infrastructure/kafka"
	businessdto "github.com/lovelocal/directory-service/internal/usecase/dto/business"
)

const (
	defaultSearchLimit = 50
	// Platform limit for geofence notification lists, not configurable.
	geofenceResultLimit = 20
)

func (uc *DefaultBusinessUsecase) GetBusiness(id string) (*domain.MergedBusinessView, error) {
	business, err := uc.BusinessRepo.GetBusinessByID(id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, nil
	}
	return uc.mergedView(business)
}

func (uc *DefaultBusinessUsecase) GetBusinessByEmail(email string) (*domain.MergedBusinessView, error) {
	business, err := uc.BusinessRepo.GetBusinessByEmail(email)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, nil
	}
	return uc.mergedView(business)
}

func (uc *DefaultBusinessUsecase) GetBusinessByAuthSubject(subject string) (*domain.MergedBusinessView, error) {
	business, err := uc.BusinessRepo.GetBusinessByAuthSubject(subject)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, nil
	}
	return uc.mergedView(business)
}

func (uc *DefaultBusinessUsecase) GetBusinessesByCategory(category string) ([]*domain.MergedBusinessView, error) {
	return uc.GetBusinessesByCategories([]string{category})
}

func (uc *DefaultBusinessUsecase) GetBusinessesByCategories(categories []string) ([]*domain.MergedBusinessView, error) {
	start := time.Now()
	locations, err := uc.LocationRepo.GetPrimaryActiveLocations()
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[strings.ToLower(c)] = true
	}

	results := []*domain.MergedBusinessView{}
	for _, location := range locations {
		if !categoriesIntersect(location.EffectiveCategories(), wanted) {
			continue
		}
		view, err := uc.mergeActive(location)
		if err != nil {
			return nil, err
		}
		if view != nil {
			results = append(results, view)
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordSearch("category", time.Since(start).Seconds(), len(results))
	}
	return results, nil
}

func categoriesIntersect(have []string, wanted map[string]bool) bool {
	for _, c := range have {
		if wanted[strings.ToLower(c)] {
			return true
		}
	}
	return false
}

func (uc *DefaultBusinessUsecase) SearchBusinessesByLocation(city, state string) ([]*domain.MergedBusinessView, error) {
	start := time.Now()
	locations, err := uc.LocationRepo.GetPrimaryActiveLocationsByCity(city, state)
	if err != nil {
		return nil, err
	}

	results := []*domain.MergedBusinessView{}
	for _, location := range locations {
		view, err := uc.mergeActive(location)
		if err != nil {
			return nil, err
		}
		if view != nil {
			results = append(results, view)
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordSearch("by_location", time.Since(start).Seconds(), len(results))
	}
	return results, nil
}

func (uc *DefaultBusinessUsecase) GetNearbyBusinesses(input *businessdto.NearbyInput) ([]*domain.MergedBusinessView, error) {
	start := time.Now()
	locations, err := uc.LocationRepo.GetPrimaryActiveLocations()
	if err != nil {
		return nil, err
	}

	results := []*domain.MergedBusinessView{}
	for _, location := range locations {
		if !location.HasCoordinates() {
			continue
		}
		distance := geo.DistanceKm(input.Latitude, input.Longitude, *location.Latitude, *location.Longitude)
		if distance > input.RadiusKm {
			continue
		}
		view, err := uc.mergeActive(location)
		if err != nil {
			return nil, err
		}
		if view != nil {
			results = append(results, view)
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordSearch("nearby", time.Since(start).Seconds(), len(results))
	}
	return results, nil
}

// SearchBusinesses runs the free-text pipeline: candidate set first,
// then term/category/radius as successive narrowing passes, truncation
// to the limit only at the very end.
func (uc *DefaultBusinessUsecase) SearchBusinesses(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error) {
	start := time.Now()
	locations, err := uc.LocationRepo.GetPrimaryActiveLocations()
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(input.Term))

	results := []*domain.MergedBusinessView{}
	for _, location := range locations {
		if input.Category != "" &&
			!categoriesIntersect(location.EffectiveCategories(), map[string]bool{strings.ToLower(input.Category): true}) {
			continue
		}

		if input.RadiusKm != nil && input.Latitude != nil && input.Longitude != nil {
			if !location.HasCoordinates() {
				continue
			}
			distance := geo.DistanceKm(*input.Latitude, *input.Longitude, *location.Latitude, *location.Longitude)
			if distance > *input.RadiusKm {
				continue
			}
		}

		if term != "" {
			matched, err := uc.matchesTerm(location, term)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
		}

		view, err := uc.mergeActive(location)
		if err != nil {
			return nil, err
		}
		if view != nil {
			results = append(results, view)
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordSearch("search", time.Since(start).Seconds(), len(results))
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// matchesTerm checks the lowered term against the location's profile
// fields and the owning business's active promotions and events.
func (uc *DefaultBusinessUsecase) matchesTerm(location *domain.BusinessLocation, term string) (bool, error) {
	haystacks := []string{
		location.ProfileName,
		location.Name,
		location.Description,
		location.Category,
		location.Address,
		location.City,
	}
	haystacks = append(haystacks, location.Categories...)
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), term) {
			return true, nil
		}
	}

	promotions, err := uc.PromotionRepo.GetActivePromotions(location.BusinessID)
	if err != nil {
		return false, err
	}
	for _, p := range promotions {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Terms), term) {
			return true, nil
		}
	}

	events, err := uc.EventRepo.GetActiveEvents(location.BusinessID)
	if err != nil {
		return false, err
	}
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Description), term) ||
			strings.Contains(strings.ToLower(e.Terms), term) {
			return true, nil
		}
	}

	return false, nil
}

// SearchBusinessesWithCounts is the counts-augmented variant. Any
// failure degrades to an empty result list rather than propagating.
func (uc *DefaultBusinessUsecase) SearchBusinessesWithCounts(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error) {
	results, err := uc.SearchBusinesses(input)
	if err != nil {
		uc.Logger.Warn("counts-augmented search failed, returning empty set", zap.Error(err))
		return []*domain.MergedBusinessView{}, nil
	}

	for _, view := range results {
		promotions, err := uc.PromotionRepo.CountActivePromotions(view.ID)
		if err != nil {
			uc.Logger.Warn("counts-augmented search failed, returning empty set", zap.Error(err))
			return []*domain.MergedBusinessView{}, nil
		}
		events, err := uc.EventRepo.CountActiveEvents(view.ID)
		if err != nil {
			uc.Logger.Warn("counts-augmented search failed, returning empty set", zap.Error(err))
			return []*domain.MergedBusinessView{}, nil
		}
		view.PromotionsCount = promotions
		view.ActivePromotionsCount = promotions
		view.EventsCount = events
		view.ActiveEventsCount = events
	}

	return results, nil
}

// GetNearbyBusinessesForGeofencing ranks businesses inside the radius
// by engagement score and returns the fixed top 20. Per-business count
// failures degrade that entry's score to zero instead of failing the
// whole list.
func (uc *DefaultBusinessUsecase) GetNearbyBusinessesForGeofencing(input *businessdto.GeofencingInput) ([]*businessdto.ScoredBusiness, error) {
	locations, err := uc.LocationRepo.GetPrimaryActiveLocations()
	if err != nil {
		return nil, err
	}

	scored := []*businessdto.ScoredBusiness{}
	anyFollowed := false
	for _, location := range locations {
		if !location.HasCoordinates() {
			continue
		}
		distance := geo.DistanceMiles(input.Latitude, input.Longitude, *location.Latitude, *location.Longitude)
		if distance > input.RadiusMiles {
			continue
		}

		view, err := uc.mergeActive(location)
		if err != nil {
			return nil, err
		}
		if view == nil {
			continue
		}

		score, followed := uc.engagementScore(location.BusinessID, input.UserID)
		if followed {
			anyFollowed = true
		}
		scored = append(scored, &businessdto.ScoredBusiness{
			Business: view,
			Distance: distance,
			Score:    score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > geofenceResultLimit {
		scored = scored[:geofenceResultLimit]
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordGeofenceEvaluation(len(scored), anyFollowed)
	}
	if uc.Publisher != nil {
		event := kafka.GeofenceEvent{
			Type:        kafka.EventGeofenceEvaluated,
			UserID:      input.UserID,
			Latitude:    input.Latitude,
			Longitude:   input.Longitude,
			RadiusMiles: input.RadiusMiles,
			Matches:     len(scored),
			OccurredAt:  time.Now(),
		}
		if err := uc.Publisher.PublishGeofenceEvent(event); err != nil {
			uc.Logger.Warn("failed to publish geofence event", zap.Error(err))
		}
	}

	return scored, nil
}

func (uc *DefaultBusinessUsecase) engagementScore(businessID, userID string) (float64, bool) {
	promotions, err := uc.PromotionRepo.CountActivePromotions(businessID)
	if err != nil {
		uc.Logger.Warn("engagement score degraded", zap.String("business_id", businessID), zap.Error(err))
		return 0, false
	}
	events, err := uc.EventRepo.CountActiveEvents(businessID)
	if err != nil {
		uc.Logger.Warn("engagement score degraded", zap.String("business_id", businessID), zap.Error(err))
		return 0, false
	}
	followers, err := uc.FollowerRepo.CountFollowers(businessID)
	if err != nil {
		uc.Logger.Warn("engagement score degraded", zap.String("business_id", businessID), zap.Error(err))
		return 0, false
	}
	following := false
	if userID != "" {
		following, err = uc.FollowerRepo.IsFollowing(businessID, userID)
		if err != nil {
			uc.Logger.Warn("engagement score degraded", zap.String("business_id", businessID), zap.Error(err))
			return 0, false
		}
	}

	return geo.EngagementScore(promotions, events, followers, following), following
}
