package database

import (
	"fmt"
	"strings"

	"recipemarket/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Connect opens PostgreSQL for postgres:// DSNs and SQLite for anything else.
func Connect(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	if IsPostgres(dsn) {
		log.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.WithField("dsn", dsn).Info("using SQLite for local development")

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" opens its own empty database, and SQLite
	// allows a single writer anyway.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&domain.Account{},
		&domain.Client{},
		&domain.Company{},
		&domain.Recipe{},
		&domain.Favorite{},
		&domain.OfferOrder{},
	}
}

// Migrate creates or updates the schema, including the partial unique index
// that allows one unclaimed offer per company and recipe.
func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	// Both PostgreSQL and SQLite understand partial indexes.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_offer_orders_active_offer
ON offer_orders (company_id, recipe_id) WHERE client_id IS NULL`).Error; err != nil {
		return fmt.Errorf("create active offer index: %w", err)
	}
	return nil
}
