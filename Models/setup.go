package Models

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database and runs migrations. With DB_HOST set a
// Postgres connection is used; otherwise it falls back to a local sqlite
// file, which is what the dev setup runs on.
func Connect() {
	var err error
	if os.Getenv("DB_HOST") != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"))
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		DB, err = gorm.Open(sqlite.Open("database.db"), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Migration failed:", err)
	}
}

// Migrate runs AutoMigrate in dependency order.
func Migrate(db *gorm.DB) error {
	// 1. Base tables with no foreign keys
	if err := db.AutoMigrate(
		&User{},
		&Vendor{},
		&ScrapType{},
		&Account{},
		&Labour{},
	); err != nil {
		return err
	}

	// 2. Tables referencing the base entities
	if err := db.AutoMigrate(
		&VendorRate{}, // depends on Vendor and ScrapType
		&KabadiwalaRecord{},
		&FeriwalaRecord{},
		&Attendance{},
		&LabourSalary{},
		&LabourWithdrawal{},
		&AccountTransaction{},
		&Expense{},
		&TruckTransaction{},
		&MaalIn{},
		&MaalOut{},
	); err != nil {
		return err
	}

	// 3. Line items, payments and the derived snapshot table
	return db.AutoMigrate(
		&KabadiwalaScrap{},
		&KabadiwalaPayment{},
		&KabadiwalaDailyBalance{},
		&FeriwalaScrap{},
		&FeriwalaWithdrawal{},
		&MaalInItem{},
		&MaalOutPayment{},
	)
}
