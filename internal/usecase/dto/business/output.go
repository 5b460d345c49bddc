package businessdto

import "github.com/lovelocal/directory-service/internal/domain"

type UpdateBusinessOutput struct {
	Business            *domain.MergedBusinessView `json:"business"`
	OnboardingCompleted bool                       `json:"onboarding_completed"`
	Warnings            map[string]string          `json:"warnings,omitempty"`
}

// DeletionReport carries per-collection affected-row counts for the
// cascade fan-outs. Counts stay valid even when the cascade fails
// partway through.
type DeletionReport struct {
	BusinessID        string           `json:"business_id"`
	BusinessDeleted   bool             `json:"business_deleted"`
	BusinessLocations int64            `json:"business_locations"`
	Collections       map[string]int64 `json:"collections"`
}

type ArchiveReport struct {
	BusinessID        string           `json:"business_id"`
	BusinessLocations int64            `json:"business_locations"`
	Collections       map[string]int64 `json:"collections"`
}

type SweepReport struct {
	BatchID string            `json:"batch_id"`
	Swept   int               `json:"swept"`
	Reports []*DeletionReport `json:"reports"`
	Errors  []ItemError       `json:"errors,omitempty"`
}

type ScoredBusiness struct {
	Business *domain.MergedBusinessView `json:"business"`
	Distance float64                    `json:"distance"`
	Score    float64                    `json:"score"`
}

type ItemError struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Error string `json:"error"`
}

type BulkCreateReport struct {
	BatchID string      `json:"batch_id"`
	Created int         `json:"created"`
	Errors  []ItemError `json:"errors,omitempty"`
}

type GeocodeReport struct {
	BatchID  string      `json:"batch_id"`
	Geocoded int         `json:"geocoded"`
	Skipped  int         `json:"skipped"`
	Errors   []ItemError `json:"errors,omitempty"`
}
