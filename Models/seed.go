package Models

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SeedScrapTypes loads materials and global rates from an xlsx sheet
// (column A: material, column B: rate). Existing materials are skipped so
// the import can be re-run.
func SeedScrapTypes(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return err
	}

	var created int
	for i, row := range rows {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		rate, err := decimal.NewFromString(row[1])
		if err != nil {
			log.Printf("Skipping rate row %d: bad rate %q", i+1, row[1])
			continue
		}

		var existing ScrapType
		if err := DB.Where("material_type = ?", row[0]).First(&existing).Error; err == nil {
			continue
		}

		scrapType := ScrapType{
			MaterialType: row[0],
			GlobalRate:   rate,
			LastUpdated:  time.Now(),
		}
		if err := DB.Create(&scrapType).Error; err != nil {
			return err
		}
		created++
	}

	log.Printf("Seeded %d scrap types from %s", created, path)
	return nil
}
