package usecase

type splitTarget int

const (
	targetBusiness splitTarget = iota
	targetLocation
)

type fieldRule struct {
	key      string
	target   splitTarget
	renameTo string
}

// fieldOwnership is the typed field-ownership map partitioning update
// payloads across the two tables. Rules are ordered: when two payload
// keys rename to the same column (public_business_email and
// contact_email both become email) the earlier rule wins. Payload keys
// with no rule are dropped.
var fieldOwnership = []fieldRule{
	// businesses table
	{key: "name", target: targetBusiness},
	{key: "customersDoNotVisit", target: targetBusiness, renameTo: "customers_do_not_visit"},
	{key: "subscription_plan", target: targetBusiness},
	{key: "subscription_tier", target: targetBusiness},
	{key: "subscription_status", target: targetBusiness},

	// business_locations table
	{key: "internal_name", target: targetLocation, renameTo: "name"},
	{key: "profile_name", target: targetLocation},
	{key: "description", target: targetLocation},
	{key: "public_business_email", target: targetLocation, renameTo: "email"},
	{key: "contact_email", target: targetLocation, renameTo: "email"},
	{key: "phone", target: targetLocation},
	{key: "website", target: targetLocation},
	{key: "address", target: targetLocation},
	{key: "city", target: targetLocation},
	{key: "state", target: targetLocation},
	{key: "zip", target: targetLocation},
	{key: "serviceZip", target: targetLocation, renameTo: "service_zip"},
	{key: "serviceRadius", target: targetLocation, renameTo: "service_radius"},
	{key: "category", target: targetLocation},
	{key: "categories", target: targetLocation},
	{key: "latitude", target: targetLocation},
	{key: "longitude", target: targetLocation},
	{key: "facebook_url", target: targetLocation},
	{key: "instagram_url", target: targetLocation},
	{key: "twitter_url", target: targetLocation},
	{key: "linkedin_url", target: targetLocation},
	{key: "tiktok_url", target: targetLocation},
	{key: "youtube_url", target: targetLocation},
	{key: "hours", target: targetLocation},
}

// SplitBusinessUpdates partitions an update payload into business-table
// and location-table column maps. Pure: splitting the same payload
// twice yields identical partitions.
func SplitBusinessUpdates(updates map[string]interface{}) (businessFields, locationFields map[string]interface{}) {
	businessFields = make(map[string]interface{})
	locationFields = make(map[string]interface{})

	for _, rule := range fieldOwnership {
		value, ok := updates[rule.key]
		if !ok {
			continue
		}

		column := rule.key
		if rule.renameTo != "" {
			column = rule.renameTo
		}

		dest := businessFields
		if rule.target == targetLocation {
			dest = locationFields
		}

		if _, taken := dest[column]; taken {
			continue
		}
		dest[column] = value
	}

	backfillCategory(locationFields)

	return businessFields, locationFields
}

// backfillCategory keeps the legacy single-category column in sync as a
// derived cache of categories[0].
func backfillCategory(locationFields map[string]interface{}) {
	raw, ok := locationFields["categories"]
	if !ok {
		return
	}

	var first string
	switch cats := raw.(type) {
	case []string:
		if len(cats) > 0 {
			first = cats[0]
		}
	case []interface{}:
		if len(cats) > 0 {
			if s, ok := cats[0].(string); ok {
				first = s
			}
		}
	}
	if first == "" {
		return
	}

	if current, ok := locationFields["category"].(string); !ok || current == "" {
		locationFields["category"] = first
	}
}
