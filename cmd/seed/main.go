package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mirakh/gallery-backend/config"
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports paintings from an XLSX catalog file. Expected columns:
// Title | Category | Price | Size | Medium | Year | Description | ImageURL | Featured
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	paintingRepo := repository.NewPaintingRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	paintings, skipped, err := readPaintingsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Paintings to import: %d (skipped %d invalid rows)\n", len(paintings), skipped)
	if len(paintings) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range paintings {
		if err := paintingRepo.Create(&paintings[i]); err != nil {
			fmt.Printf("Failed to import %q: %v\n", paintings[i].Title, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total paintings imported: %d\n", imported)
}

func readPaintingsFromXLSX(filePath string) ([]model.Painting, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var paintings []model.Painting
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 3 {
			skipped++
			continue
		}

		title := strings.TrimSpace(row[0])
		category := model.PaintingCategory(strings.TrimSpace(row[1]))
		priceStr := strings.TrimSpace(row[2])

		if title == "" || seen[title] {
			skipped++
			continue
		}
		if !model.ValidCategory(category) {
			fmt.Printf("Row %d: unknown category %q, skipping\n", i+1, category)
			skipped++
			continue
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skipped++
			continue
		}

		painting := model.Painting{
			Title:     title,
			Category:  category,
			Price:     price,
			Available: true,
		}
		if len(row) > 3 {
			painting.Size = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			painting.Medium = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			if year, err := strconv.Atoi(strings.TrimSpace(row[5])); err == nil {
				painting.Year = year
			}
		}
		if len(row) > 6 {
			painting.Description = strings.TrimSpace(row[6])
		}
		if len(row) > 7 {
			painting.ImageURL = strings.TrimSpace(row[7])
		}
		if len(row) > 8 {
			featured := strings.ToLower(strings.TrimSpace(row[8]))
			painting.Featured = featured == "true" || featured == "yes" || featured == "1"
		}

		seen[title] = true
		paintings = append(paintings, painting)
	}

	return paintings, skipped, nil
}
