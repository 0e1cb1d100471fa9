// Package storage persists the normalized listing collection so external
// tools can inspect it. Persistence is a best-effort sink: the serving
// path never depends on it.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"autoagora/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		title TEXT NOT NULL,
		link TEXT,
		price REAL NOT NULL DEFAULT 0,
		price_without_tax REAL,
		power INTEGER,
		year INTEGER,
		mileage INTEGER,
		transmission TEXT,
		fuel_type TEXT,
		condition TEXT,
		tags JSON,
		delivery_label TEXT,
		delivery_price TEXT,
		images JSON,
		brand TEXT,
		model TEXT,
		color TEXT,
		country TEXT,
		doors INTEGER DEFAULT 4,
		body_type TEXT,
		engine_type TEXT,
		has_image BOOLEAN DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_listings_brand ON listings(brand);
	CREATE INDEX IF NOT EXISTS idx_listings_source ON listings(source);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ReplaceAll swaps the stored snapshot for the given collection in one
// transaction.
func (s *SQLiteStore) ReplaceAll(listings []models.Listing) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM listings`); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO listings (
			id, source, title, link, price, price_without_tax, power, year,
			mileage, transmission, fuel_type, condition, tags,
			delivery_label, delivery_price, images, brand, model, color,
			country, doors, body_type, engine_type, has_image
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range listings {
		l := &listings[i]
		tags, _ := json.Marshal(l.Tags)
		images, _ := json.Marshal(l.Images)

		_, err := stmt.Exec(
			l.ID.String(), l.Source, l.Title, l.Link, l.Price,
			l.PriceWithoutTax, l.Power, l.Year, l.Mileage, l.Transmission,
			l.FuelType, l.Condition, string(tags), l.DeliveryInfo.Label,
			l.DeliveryInfo.Price, string(images), l.Brand, l.Model,
			l.Color, l.Country, l.Doors, l.BodyType, l.EngineType,
			l.HasImage,
		)
		if err != nil {
			return fmt.Errorf("insert listing %s: %w", l.ID, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of persisted listings.
func (s *SQLiteStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM listings`).Scan(&n)
	return n, err
}
