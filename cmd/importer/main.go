package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"rentmap-api/internal/config"

	"github.com/lib/pq"
)

type ListingRecord struct {
	Address    string
	Price      float64
	Bedrooms   int
	Bathrooms  float64
	SquareFeet int
	Lat        *float64
	Lng        *float64
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	db, err := sql.Open("postgres", cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Ensure tables exist
	err = createTablesIfNotExist(db)
	if err != nil {
		fmt.Printf("Error creating tables: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	err = insertRecords(db, records)
	if err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify
	err = verifyImport(db, len(records))
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Import completed successfully")
}

// parseCSV reads listing rows with columns:
// address, price, bedrooms, bathrooms, square_feet, latitude, longitude.
// Latitude/longitude may be empty for listings that could not be geocoded.
func parseCSV(path string) ([]ListingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	var records []ListingRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 7 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 7 columns", len(record))
		}

		price, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %s", record[1])
		}

		bedrooms, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid bedrooms: %s", record[2])
		}

		bathrooms, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bathrooms: %s", record[3])
		}

		squareFeet, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid square_feet: %s", record[4])
		}

		listing := ListingRecord{
			Address:    record[0],
			Price:      price,
			Bedrooms:   bedrooms,
			Bathrooms:  bathrooms,
			SquareFeet: squareFeet,
		}

		if record[5] != "" && record[6] != "" {
			lat, err := strconv.ParseFloat(record[5], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid latitude: %s", record[5])
			}
			lng, err := strconv.ParseFloat(record[6], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid longitude: %s", record[6])
			}
			listing.Lat = &lat
			listing.Lng = &lng
		}

		records = append(records, listing)
	}

	return records, nil
}

func createTablesIfNotExist(db *sql.DB) error {
	query := `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS listings (
		id BIGSERIAL PRIMARY KEY,
		address VARCHAR(255) NOT NULL,
		price NUMERIC NOT NULL,
		bedrooms INT NOT NULL DEFAULT 0,
		bathrooms NUMERIC NOT NULL DEFAULT 0,
		square_feet INT NOT NULL DEFAULT 0,
		geom GEOGRAPHY(POINT, 4326)
	);

	CREATE TABLE IF NOT EXISTS saved_properties (
		user_id VARCHAR(64) NOT NULL,
		listing_id BIGINT NOT NULL REFERENCES listings(id),
		saved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, listing_id)
	);

	CREATE INDEX IF NOT EXISTS listings_geom_idx ON listings USING GIST (geom);
	`
	_, err := db.Exec(query)
	return err
}

func insertRecords(db *sql.DB, records []ListingRecord) error {
	// Use COPY for bulk insert
	txn, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := txn.Prepare(pq.CopyIn("listings", "address", "price", "bedrooms", "bathrooms", "square_feet", "geom"))
	if err != nil {
		txn.Rollback()
		return err
	}

	for _, r := range records {
		var geom interface{}
		if r.Lat != nil && r.Lng != nil {
			geom = fmt.Sprintf("SRID=4326;POINT(%f %f)", *r.Lng, *r.Lat) // PostGIS format: lon lat
		}
		if _, err := stmt.Exec(r.Address, r.Price, r.Bedrooms, r.Bathrooms, r.SquareFeet, geom); err != nil {
			txn.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		txn.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		txn.Rollback()
		return err
	}

	return txn.Commit()
}

func verifyImport(db *sql.DB, expectedCount int) error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count < expectedCount {
		return fmt.Errorf("record count mismatch: expected at least %d, got %d", expectedCount, count)
	}

	// Check a sample geom
	var geom sql.NullString
	err = db.QueryRow("SELECT ST_AsText(geom) FROM listings WHERE geom IS NOT NULL LIMIT 1").Scan(&geom)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	if geom.Valid {
		fmt.Printf("Sample geom: %s\n", geom.String)
	}
	return nil
}
