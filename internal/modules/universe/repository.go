package universe

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantlab/verdant/internal/database"
	"github.com/verdantlab/verdant/internal/domain"
)

// Repository provides sqlite-backed storage for universe securities.
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new securities repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "universe_repository").Logger(),
	}
}

// Seed inserts the default universe for tickers not already present.
// Existing rows keep their refreshed market data.
func (r *Repository) Seed() error {
	return database.WithTransaction(r.db.Conn(), func(tx *sql.Tx) error {
		for _, security := range DefaultSecurities() {
			profiles, err := json.Marshal(security.DefaultProfiles)
			if err != nil {
				return fmt.Errorf("failed to marshal profiles for %s: %w", security.Ticker, err)
			}

			_, err = tx.Exec(`
				INSERT INTO securities (ticker, name, category, default_profiles, updated_at)
				VALUES (?, ?, ?, ?, 0)
				ON CONFLICT(ticker) DO NOTHING
			`, security.Ticker, security.Name, security.Category, string(profiles))
			if err != nil {
				return fmt.Errorf("failed to seed security %s: %w", security.Ticker, err)
			}
		}
		return nil
	})
}

// Upsert writes a security, replacing any existing row for its ticker.
func (r *Repository) Upsert(security Security) error {
	profiles, err := json.Marshal(security.DefaultProfiles)
	if err != nil {
		return fmt.Errorf("failed to marshal profiles for %s: %w", security.Ticker, err)
	}

	_, err = r.db.Exec(`
		INSERT INTO securities (
			ticker, name, category, default_profiles, sector, industry, country,
			currency, market_cap, beta, volatility, price, returns_1y,
			esg_score, env_score, social_score, gov_score, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			default_profiles = excluded.default_profiles,
			sector = excluded.sector,
			industry = excluded.industry,
			country = excluded.country,
			currency = excluded.currency,
			market_cap = excluded.market_cap,
			beta = excluded.beta,
			volatility = excluded.volatility,
			price = excluded.price,
			returns_1y = excluded.returns_1y,
			esg_score = excluded.esg_score,
			env_score = excluded.env_score,
			social_score = excluded.social_score,
			gov_score = excluded.gov_score,
			updated_at = excluded.updated_at
	`,
		security.Ticker, security.Name, security.Category, string(profiles),
		security.Sector, security.Industry, security.Country, string(security.Currency),
		security.MarketCap, security.Beta, security.Volatility, security.Price,
		security.TrailingReturn, security.ESG.Total, security.ESG.Environmental,
		security.ESG.Social, security.ESG.Governance, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert security %s: %w", security.Ticker, err)
	}

	return nil
}

// GetByTicker returns one security, or nil if absent.
func (r *Repository) GetByTicker(ticker string) (*Security, error) {
	row := r.db.QueryRow(selectColumns+" FROM securities WHERE ticker = ?", ticker)

	security, err := scanSecurity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get security %s: %w", ticker, err)
	}

	return security, nil
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Category string
	Profile  string
}

// List returns securities ordered by category then ticker, optionally
// filtered by category and risk profile membership.
func (r *Repository) List(filter ListFilter) ([]Security, error) {
	query := selectColumns + " FROM securities"
	var args []interface{}
	if filter.Category != "" {
		query += " WHERE category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY category, ticker"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities: %w", err)
	}
	defer rows.Close()

	var securities []Security
	for rows.Next() {
		security, err := scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		// Profile membership lives in a JSON column, filter in Go
		if filter.Profile != "" && !security.FitsProfile(filter.Profile) {
			continue
		}
		securities = append(securities, *security)
	}

	return securities, rows.Err()
}

const selectColumns = `SELECT ticker, name, category, default_profiles, sector, industry,
	country, currency, market_cap, beta, volatility, price, returns_1y,
	esg_score, env_score, social_score, gov_score`

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanSecurity(row scannable) (*Security, error) {
	var s Security
	var profiles, currency string

	err := row.Scan(&s.Ticker, &s.Name, &s.Category, &profiles, &s.Sector,
		&s.Industry, &s.Country, &currency, &s.MarketCap, &s.Beta,
		&s.Volatility, &s.Price, &s.TrailingReturn,
		&s.ESG.Total, &s.ESG.Environmental, &s.ESG.Social, &s.ESG.Governance)
	if err != nil {
		return nil, err
	}

	s.Currency = domain.Currency(currency)
	if err := json.Unmarshal([]byte(profiles), &s.DefaultProfiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles for %s: %w", s.Ticker, err)
	}

	return &s, nil
}
