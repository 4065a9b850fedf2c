package database

import (
	"fmt"
	"log"

	config "github.com/Team-3XHandymen/fix-backend/configs"
	"github.com/Team-3XHandymen/fix-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Service{},
		&models.Booking{},
		&models.Payment{},
		&models.ChatMessage{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedServices inserts the fixed service catalog on first boot.
func SeedServices() {
	var count int64
	if err := DB.Model(&models.Service{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check service catalog: %v", err)
	}
	if count > 0 {
		return
	}

	catalog := []models.Service{
		{Name: "Plumbing", Description: "Leaks, pipes, fittings and drainage work"},
		{Name: "Electrical", Description: "Wiring, sockets, lighting and fuse boxes"},
		{Name: "Carpentry", Description: "Doors, shelves, furniture assembly and repair"},
		{Name: "Painting", Description: "Interior and exterior painting"},
		{Name: "Cleaning", Description: "Deep cleaning and move-out cleaning"},
		{Name: "Roofing", Description: "Roof repair and gutter maintenance"},
		{Name: "Gardening", Description: "Lawn care, hedges and landscaping"},
	}
	if err := DB.Create(&catalog).Error; err != nil {
		log.Fatalf("🔥 Failed to seed service catalog: %v", err)
	}
	log.Println("✅ Service catalog seeded successfully")
}
