package setup

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lovelocal/directory-service/internal/config"
	"github.com/lovelocal/directory-service/internal/infrastructure/geocode"
	"github.com/lovelocal/directory-service/internal/infrastructure/kafka"
	"github.com/lovelocal/directory-service/internal/infrastructure/metrics"
	"github.com/lovelocal/directory-service/internal/infrastructure/postgres/repository"
	"github.com/lovelocal/directory-service/internal/usecase"
	"github.com/lovelocal/directory-service/internal/usecase/cascade"
)

// Dependencies wires the repositories, collaborators and the business
// usecase from a live DB handle and config.
type Dependencies struct {
	BusinessUsecase usecase.BusinessUsecase
	Metrics         *metrics.DirectoryMetrics
	Publisher       *kafka.DirectoryPublisher
}

func Build(db *gorm.DB, cfg *config.DirectoryConfig, log *zap.Logger) (*Dependencies, error) {
	businessRepo := repository.NewDefaultBusinessRepository(db)
	locationRepo := repository.NewDefaultLocationRepository(db)
	promotionRepo := repository.NewDefaultPromotionRepository(db)
	eventRepo := repository.NewDefaultEventRepository(db)
	followerRepo := repository.NewDefaultFollowerRepository(db)
	cascadeEngine := cascade.NewEngine(db)

	geocodeClient, err := geocode.NewHTTPGeocodeClient(
		fmt.Sprintf("http://%s:%s", cfg.GeocodeService.Host, cfg.GeocodeService.Port),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init geocode client: %w", err)
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewDirectoryPublisher(brokers, cfg.KafkaService.Topic)

	directoryMetrics := metrics.NewDirectoryMetrics()

	businessUsecase := usecase.NewDefaultBusinessUsecase(
		businessRepo,
		locationRepo,
		promotionRepo,
		eventRepo,
		followerRepo,
		cascadeEngine,
		geocodeClient,
		publisher,
		directoryMetrics,
		log,
		cfg.Retention.Days,
	)

	return &Dependencies{
		BusinessUsecase: businessUsecase,
		Metrics:         directoryMetrics,
		Publisher:       publisher,
	}, nil
}
