package postgres

import (
	"log"

	"github.com/lovelocal/directory-service/internal/config"
	"github.com/lovelocal/directory-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.DirectoryConfig) *gorm.DB {
	dsn := cfg.DirectoryDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.BusinessModel{},
		&models.BusinessLocationModel{},
		&models.PromotionModel{},
		&models.EventModel{},
		&models.FollowerModel{},
		&models.BusinessPhotoModel{},
		&models.MenuCategoryModel{},
		&models.MenuItemModel{},
		&models.PaymentModel{},
		&models.SubscriptionModel{},
		&models.NewsletterSubscriptionModel{},
		&models.BoostModel{},
		&models.EmailChangeRequestModel{},
		&models.PasswordChangeRequestModel{},
		&models.GiveawayEntryModel{},
	)

	return db
}
