package persistence

import (
	"fmt"
	"time"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/domain/studio"
	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a new database connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithLogger(cfg, logger.Default.LogMode(logger.Silent))
}

// NewDatabaseWithLogger creates a new database connection that reports
// queries to gormLogger
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            cfg.Driver == config.DriverPostgres,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// one writer keeps sqlite from reporting "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{DB: db}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(); err != nil {
			return nil, err
		}
	}
	return database, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Models lists every persisted entity, in dependency order
func Models() []interface{} {
	return []interface{}{
		&identity.Plan{},
		&identity.User{},
		&identity.CustomRole{},
		&catalog.Collection{},
		&catalog.ProductType{},
		&catalog.Product{},
		&catalog.ProductVariant{},
		&sales.Order{},
		&sales.OrderItem{},
		&sales.Shipment{},
		&sales.Customer{},
		&sales.ActivityLog{},
		&finance.Expense{},
		&finance.Income{},
		&finance.Receivable{},
		&finance.PayrollEmployee{},
		&finance.TaxRate{},
		&finance.ShippingOption{},
		&studio.ShopPage{},
		&studio.Page{},
	}
}

// AutoMigrate creates or alters the tables of every model. Production
// postgres schemas are managed by the SQL migrations instead.
func (d *Database) AutoMigrate() error {
	if err := d.DB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return d.SeedPlans()
}

// seedPlans mirrors migration 000002_seed_plans so a database built with
// AutoMigrate can register stores.
var seedPlans = []identity.Plan{
	{
		BaseEntity:     shared.BaseEntity{ID: uuid.MustParse("6f1c2b7e-0d4a-4f7b-9a53-1b1f5e2a0001")},
		Name:           "Basico",
		Description:    "Tienda online, POS y pedidos",
		CommissionRate: decimal.RequireFromString("3.50"),
		MonthlyFee:     decimal.Zero,
		Modules:        []string{"catalog", "orders", "pos", "studio"},
		IsDefault:      true,
	},
	{
		BaseEntity:     shared.BaseEntity{ID: uuid.MustParse("6f1c2b7e-0d4a-4f7b-9a53-1b1f5e2a0002")},
		Name:           "Pro",
		Description:    "Todo lo basico mas finanzas, CRM y asistente",
		CommissionRate: decimal.RequireFromString("2.00"),
		MonthlyFee:     decimal.NewFromInt(89900),
		Modules:        []string{"catalog", "orders", "pos", "studio", "finance", "crm", "assistant", "staff"},
	},
}

// SeedPlans inserts the built-in plans that are missing, matched by name.
// Existing rows are left untouched.
func (d *Database) SeedPlans() error {
	now := time.Now()
	for _, p := range seedPlans {
		plan := p
		plan.CreatedAt, plan.UpdatedAt = now, now
		if err := d.DB.Where("name = ?", plan.Name).FirstOrCreate(&plan).Error; err != nil {
			return fmt.Errorf("seed plan %s: %w", plan.Name, err)
		}
	}
	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Stats returns database connection pool statistics and an error if unable to retrieve
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
}
