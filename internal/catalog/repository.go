package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

var ErrServiceNotFound = errors.New("service not found")

// Service is one bookable catalog entry. Price keeps the upstream string
// form, currency symbol included; normalization happens in pricing.
type Service struct {
	ID                  string
	Name                string
	Description         string
	Price               string
	ExtendedDescription string
	Offer               string
}

type RepoInterface interface {
	GetAllServices(ctx context.Context) ([]*Service, error)
	GetService(ctx context.Context, id string) (*Service, error)
	Close() error
	RunMigrations(string) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetAllServices(ctx context.Context) ([]*Service, error) {
	query := `
		SELECT id, name, description, price, extended_description, offer
		FROM services
		ORDER BY CAST(id AS INTEGER)
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []*Service
	for rows.Next() {
		s := &Service{}
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Description,
			&s.Price,
			&s.ExtendedDescription,
			&s.Offer,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return services, nil
}

func (r *Repository) GetService(ctx context.Context, id string) (*Service, error) {
	query := `
		SELECT id, name, description, price, extended_description, offer
		FROM services
		WHERE id = $1
	`

	s := &Service{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.ExtendedDescription,
		&s.Offer,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query service: %w", err)
	}

	return s, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
