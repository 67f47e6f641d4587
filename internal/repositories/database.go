package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/shopcraft/storefront/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB           *sql.DB
	User         UserRepository
	Product      ProductRepository
	Brand        BrandRepository
	Category     CategoryRepository
	Cart         CartRepository
	Order        OrderRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:           db,
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Brand:        NewBrandRepo(db),
		Category:     NewCategoryRepo(db),
		Cart:         NewCartRepo(db),
		Order:        NewOrderRepo(db),
		Notification: NewNotificationRepo(db),
	}, nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}
