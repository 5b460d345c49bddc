package cascade

// FullDeleteRelations covers every satellite collection removed when a
// business is deleted completely. Locations and the business row itself
// are handled by their repositories, not listed here.
var FullDeleteRelations = []Relation{
	{Name: "promotions", Table: "promotions", FKColumn: "business_id"},
	{Name: "events", Table: "events", FKColumn: "business_id"},
	{Name: "followers", Table: "followers", FKColumn: "business_id"},
	{Name: "businessPhotos", Table: "business_photos", FKColumn: "business_id"},
	{Name: "menuCategories", Table: "menu_categories", FKColumn: "business_id"},
	{Name: "menuItems", Table: "menu_items", FKColumn: "business_id"},
	{Name: "payments", Table: "payments", FKColumn: "business_id"},
	{Name: "subscriptions", Table: "subscriptions", FKColumn: "business_id"},
	{Name: "newsletterSubscriptions", Table: "newsletter_subscriptions", FKColumn: "business_id"},
	{Name: "boosts", Table: "boosts", FKColumn: "business_id"},
	{Name: "emailChangeRequests", Table: "email_change_requests", FKColumn: "business_id"},
	{Name: "passwordChangeRequests", Table: "password_change_requests", FKColumn: "business_id"},
	{Name: "giveawayEntries", Table: "giveaway_entries", FKColumn: "partner_business_id"},
}

// ArchiveRelations drives the soft-archive fan-out. Followers and
// change requests have no archived state and are hard-deleted even in
// archive mode.
var ArchiveRelations = []Relation{
	{Name: "promotions", Table: "promotions", FKColumn: "business_id"},
	{Name: "events", Table: "events", FKColumn: "business_id"},
	{Name: "followers", Table: "followers", FKColumn: "business_id", HardDeleteOnArchive: true},
	{Name: "businessPhotos", Table: "business_photos", FKColumn: "business_id"},
	{Name: "menuCategories", Table: "menu_categories", FKColumn: "business_id"},
	{Name: "menuItems", Table: "menu_items", FKColumn: "business_id"},
	{Name: "payments", Table: "payments", FKColumn: "business_id"},
	{Name: "subscriptions", Table: "subscriptions", FKColumn: "business_id"},
	{Name: "newsletterSubscriptions", Table: "newsletter_subscriptions", FKColumn: "business_id"},
	{Name: "boosts", Table: "boosts", FKColumn: "business_id"},
	{Name: "emailChangeRequests", Table: "email_change_requests", FKColumn: "business_id", HardDeleteOnArchive: true},
	{Name: "passwordChangeRequests", Table: "password_change_requests", FKColumn: "business_id", HardDeleteOnArchive: true},
	{Name: "giveawayEntries", Table: "giveaway_entries", FKColumn: "partner_business_id"},
}

// SweepRelations is the reduced set the 90-day retention sweep
// hard-deletes after a business has sat archived past the window.
var SweepRelations = []Relation{
	{Name: "promotions", Table: "promotions", FKColumn: "business_id"},
	{Name: "events", Table: "events", FKColumn: "business_id"},
	{Name: "followers", Table: "followers", FKColumn: "business_id"},
	{Name: "businessPhotos", Table: "business_photos", FKColumn: "business_id"},
	{Name: "menuItems", Table: "menu_items", FKColumn: "business_id"},
	{Name: "menuCategories", Table: "menu_categories", FKColumn: "business_id"},
	{Name: "boosts", Table: "boosts", FKColumn: "business_id"},
}
