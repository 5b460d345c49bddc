package businessdto

type CreateBusinessInput struct {
	Email            string
	Name             string
	AuthSubject      string
	SubscriptionPlan string
	SubscriptionTier string
}

type UpdateBusinessInput struct {
	BusinessID string
	// Form-like payload keyed by logical field name; keys are
	// partitioned across the two tables by the ownership map.
	Updates map[string]interface{}
}

type DeleteBusinessInput struct {
	BusinessID      string
	ConfirmDeletion bool
}

type AddLocationInput struct {
	BusinessID string
	// Location column payload, keyed by the same logical field names
	// the profile write path accepts.
	Fields map[string]interface{}
}

type UpdateLocationInput struct {
	LocationID string
	Fields     map[string]interface{}
}

type SearchInput struct {
	Term      string
	Category  string
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
	Limit     int
}

type NearbyInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

type GeofencingInput struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
	UserID      string
}

type BulkCreateInput struct {
	Items []CreateBusinessInput
}
