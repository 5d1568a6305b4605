package migration

import (
	"HR-Platform-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CoinTransaction{}); err != nil {
		log.Fatalf("Error migrating coin transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Achievement{}); err != nil {
		log.Fatalf("Error migrating achievement database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserCoinAchievement{}); err != nil {
		log.Fatalf("Error migrating user achievement database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Benefit{}); err != nil {
		log.Fatalf("Error migrating benefit database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserBenefit{}); err != nil {
		log.Fatalf("Error migrating user benefit database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
