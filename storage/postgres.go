package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autoagora/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS listings (
		id UUID PRIMARY KEY,
		source TEXT NOT NULL,
		title TEXT NOT NULL,
		link TEXT,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		price_without_tax DOUBLE PRECISION,
		power INTEGER,
		year INTEGER,
		mileage INTEGER,
		transmission TEXT,
		fuel_type TEXT,
		condition TEXT,
		tags JSONB,
		delivery_label TEXT,
		delivery_price TEXT,
		images JSONB,
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
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ReplaceAll swaps the stored snapshot for the given collection in one
// transaction, batching the inserts.
func (s *PostgresStore) ReplaceAll(ctx context.Context, listings []models.Listing) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range listings {
		l := &listings[i]
		batch.Queue(`
			INSERT INTO listings (
				id, source, title, link, price, price_without_tax, power,
				year, mileage, transmission, fuel_type, condition, tags,
				delivery_label, delivery_price, images, brand, model,
				color, country, doors, body_type, engine_type, has_image
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
				$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
			l.ID, l.Source, l.Title, l.Link, l.Price, l.PriceWithoutTax,
			l.Power, l.Year, l.Mileage, l.Transmission, l.FuelType,
			l.Condition, l.Tags, l.DeliveryInfo.Label,
			l.DeliveryInfo.Price, l.Images, l.Brand, l.Model, l.Color,
			l.Country, l.Doors, l.BodyType, l.EngineType, l.HasImage,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range listings {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert listing: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}
