package usecase

import (
	"go.uber.org/zap"

	"github.com/lovelocal/directory-service/internal/domain"
	"github.com/lovelocal/directory-service/internal/infrastructure/kafka"
	"github.com/lovelocal/directory-service/internal/infrastructure/metrics"
	"github.com/lovelocal/directory-service/internal/usecase/cascade"
	businessdto "github.com/lovelocal/directory-service/internal/usecase/dto/business"
)

type BusinessUsecase interface {
	GetBusiness(id string) (*domain.MergedBusinessView, error)
	GetBusinessByEmail(email string) (*domain.MergedBusinessView, error)
	GetBusinessByAuthSubject(subject string) (*domain.MergedBusinessView, error)
	GetBusinessesByCategory(category string) ([]*domain.MergedBusinessView, error)
	GetBusinessesByCategories(categories []string) ([]*domain.MergedBusinessView, error)
	SearchBusinesses(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error)
	SearchBusinessesWithCounts(input *businessdto.SearchInput) ([]*domain.MergedBusinessView, error)
	SearchBusinessesByLocation(city, state string) ([]*domain.MergedBusinessView, error)
	GetNearbyBusinesses(input *businessdto.NearbyInput) ([]*domain.MergedBusinessView, error)
	GetNearbyBusinessesForGeofencing(input *businessdto.GeofencingInput) ([]*businessdto.ScoredBusiness, error)
	GetBusinessLocations(businessID string) ([]*domain.BusinessLocation, error)
	ListBusinesses(page, limit int32) ([]*domain.MergedBusinessView, error)

	CreateBusinessAfterAuth(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error)
	CreateBusiness(input *businessdto.CreateBusinessInput) (*domain.MergedBusinessView, error)
	UpdateBusiness(input *businessdto.UpdateBusinessInput) (*businessdto.UpdateBusinessOutput, error)
	AddBusinessLocation(input *businessdto.AddLocationInput) (*domain.BusinessLocation, error)
	UpdateBusinessLocation(input *businessdto.UpdateLocationInput) (*domain.BusinessLocation, error)
	DeleteBusinessCompletely(input *businessdto.DeleteBusinessInput) (*businessdto.DeletionReport, error)
	DeleteBusinessByAuthSubject(subject string, confirmDeletion bool) (*businessdto.DeletionReport, error)
	ArchiveBusinessForDeletedUser(authSubject string) (*businessdto.ArchiveReport, error)
	HardDeleteExpiredBusinesses() (*businessdto.SweepReport, error)
	BulkCreateBusinesses(input *businessdto.BulkCreateInput) (*businessdto.BulkCreateReport, error)
	BulkGeocodeBusinesses(limit int) (*businessdto.GeocodeReport, error)
}

// CascadeRunner is the fan-out engine contract (satisfied by
// cascade.Engine; stubbed in tests).
type CascadeRunner interface {
	Run(businessID string, relations []cascade.Relation, mode cascade.Mode) (cascade.Report, error)
}

type EventPublisher interface {
	PublishBusinessEvent(event kafka.BusinessEvent) error
	PublishGeofenceEvent(event kafka.GeofenceEvent) error
}

type DefaultBusinessUsecase struct {
	BusinessRepo  domain.BusinessRepository
	LocationRepo  domain.LocationRepository
	PromotionRepo domain.PromotionRepository
	EventRepo     domain.EventRepository
	FollowerRepo  domain.FollowerRepository
	Cascade       CascadeRunner
	Geocoder      domain.GeocoderPort
	Publisher     EventPublisher
	Metrics       *metrics.DirectoryMetrics
	Logger        *zap.Logger
	RetentionDays int
}

func NewDefaultBusinessUsecase(
	businessRepo domain.BusinessRepository,
	locationRepo domain.LocationRepository,
	promotionRepo domain.PromotionRepository,
	eventRepo domain.EventRepository,
	followerRepo domain.FollowerRepository,
	cascadeRunner CascadeRunner,
	geocoder domain.GeocoderPort,
	publisher EventPublisher,
	directoryMetrics *metrics.DirectoryMetrics,
	logger *zap.Logger,
	retentionDays int,
) *DefaultBusinessUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &DefaultBusinessUsecase{
		BusinessRepo:  businessRepo,
		LocationRepo:  locationRepo,
		PromotionRepo: promotionRepo,
		EventRepo:     eventRepo,
		FollowerRepo:  followerRepo,
		Cascade:       cascadeRunner,
		Geocoder:      geocoder,
		Publisher:     publisher,
		Metrics:       directoryMetrics,
		Logger:        logger,
		RetentionDays: retentionDays,
	}
}

// mergedView resolves the business's primary location (falling back to
// the first location found) and merges. The business may legitimately
// have no location yet; the merge default-fills in that case.
func (uc *DefaultBusinessUsecase) mergedView(business *domain.Business) (*domain.MergedBusinessView, error) {
	location, err := uc.LocationRepo.GetPrimaryLocation(business.ID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		location, err = uc.LocationRepo.GetFirstLocation(business.ID)
		if err != nil {
			return nil, err
		}
	}
	return domain.MergeBusinessView(business, location), nil
}

// mergeActive resolves the owning business for a location and merges,
// returning nil when the business is missing or inactive — such
// entries are silently dropped from list results.
func (uc *DefaultBusinessUsecase) mergeActive(location *domain.BusinessLocation) (*domain.MergedBusinessView, error) {
	business, err := uc.BusinessRepo.GetBusinessByID(location.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil || !business.IsActive {
		return nil, nil
	}
	return domain.MergeBusinessView(business, location), nil
}
