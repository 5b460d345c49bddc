package usecase

import "github.com/lovelocal/directory-service/internal/domain"

const minDescriptionLength = 20

// onboardingComplete is the derived completeness check evaluated
// opportunistically on every profile write. Required: a display name,
// a substantial description, phone, at least one category, and either
// a full physical address or a service-area pair. Businesses customers
// do not visit qualify through the service-area route only.
func onboardingComplete(view *domain.MergedBusinessView) bool {
	if view.Name == "" || view.Phone == "" {
		return false
	}
	if len(view.Description) < minDescriptionLength {
		return false
	}
	if view.Category == "" && len(view.Categories) == 0 {
		return false
	}

	hasAddress := view.Address != "" && view.City != "" && view.State != "" && view.Zip != ""
	hasServiceArea := view.ServiceZip != "" && view.ServiceRadius != nil && *view.ServiceRadius > 0

	if view.CustomersDoNotVisit {
		return hasServiceArea
	}
	return hasAddress || hasServiceArea
}
