package background

import (
	"context"
	"log"
	"time"

	"github.com/lovelocal/directory-service/internal/usecase"
)

type BackgroundTasks struct {
	BusinessUsecase  usecase.BusinessUsecase
	SweepInterval    time.Duration
	GeocodeInterval  time.Duration
	GeocodeBatchSize int
}

func NewBackgroundTasks(businessUC usecase.BusinessUsecase, sweepInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		BusinessUsecase:  businessUC,
		SweepInterval:    sweepInterval,
		GeocodeInterval:  15 * time.Minute,
		GeocodeBatchSize: 50,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startRetentionSweep(ctx)
	go bt.startGeocodeBackfill(ctx)
}

func (bt *BackgroundTasks) startRetentionSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := bt.BusinessUsecase.HardDeleteExpiredBusinesses()
			if err != nil {
				log.Printf("Retention sweep error: %v\n", err)
				continue
			}
			if report.Swept > 0 || len(report.Errors) > 0 {
				log.Printf("Retention sweep: swept=%d errors=%d\n", report.Swept, len(report.Errors))
			}
		}
	}
}

func (bt *BackgroundTasks) startGeocodeBackfill(ctx context.Context) {
	ticker := time.NewTicker(bt.GeocodeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := bt.BusinessUsecase.BulkGeocodeBusinesses(bt.GeocodeBatchSize)
			if err != nil {
				log.Printf("Geocode backfill error: %v\n", err)
				continue
			}
			if report.Geocoded > 0 {
				log.Printf("Geocode backfill: geocoded=%d skipped=%d\n", report.Geocoded, report.Skipped)
			}
		}
	}
}
