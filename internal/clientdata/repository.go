// Package clientdata provides a persistent TTL cache for data fetched from
// external market data providers. Entries are stored as JSON with an
// expiry timestamp; readers decide whether stale entries are acceptable.
package clientdata

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantlab/verdant/internal/database"
)

// Cache table names.
const (
	TableAssetRecords = "asset_records"
	TableCloseSeries  = "close_series"
)

// AllTables lists every cache table, used by cleanup.
var AllTables = []string{TableAssetRecords, TableCloseSeries}

// Repository provides typed access to the client data cache database.
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new client data repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "clientdata").Logger(),
	}
}

// Store writes a value to the cache with the given TTL. The value is
// serialized to JSON. Existing entries for the same key are replaced.
func (r *Repository) Store(table, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for %s/%s: %w", table, key, err)
	}

	now := time.Now().Unix()
	expiresAt := time.Now().Add(ttl).Unix()

	column := keyColumn(table)
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, data, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(%s) DO UPDATE SET
			data = excluded.data,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, table, column, column)

	if _, err := r.db.Exec(query, key, string(data), expiresAt, now); err != nil {
		return fmt.Errorf("failed to store cache entry %s/%s: %w", table, key, err)
	}

	return nil
}

// GetIfFresh reads a cache entry and unmarshals it into dest only if the
// entry has not expired. Returns false if the entry is missing or stale.
func (r *Repository) GetIfFresh(table, key string, dest interface{}) (bool, error) {
	data, expiresAt, found, err := r.read(table, key)
	if err != nil || !found {
		return false, err
	}

	if time.Now().Unix() > expiresAt {
		return false, nil
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache entry %s/%s: %w", table, key, err)
	}

	return true, nil
}

// Get reads a cache entry regardless of expiry. Used as a stale fallback
// when the upstream provider is unavailable.
func (r *Repository) Get(table, key string, dest interface{}) (bool, error) {
	data, _, found, err := r.read(table, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache entry %s/%s: %w", table, key, err)
	}

	return true, nil
}

func (r *Repository) read(table, key string) (data string, expiresAt int64, found bool, err error) {
	query := fmt.Sprintf("SELECT data, expires_at FROM %s WHERE %s = ?", table, keyColumn(table))

	err = r.db.QueryRow(query, key).Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, fmt.Errorf("failed to read cache entry %s/%s: %w", table, key, err)
	}

	return data, expiresAt, true, nil
}

// Delete removes a single cache entry.
func (r *Repository) Delete(table, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, keyColumn(table))
	if _, err := r.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete cache entry %s/%s: %w", table, key, err)
	}
	return nil
}

// DeleteExpired removes all expired entries from a table and returns
// the number of rows deleted.
func (r *Repository) DeleteExpired(table string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE expires_at < ?", table)

	result, err := r.db.Exec(query, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired entries from %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted entries from %s: %w", table, err)
	}

	return rows, nil
}

// DeleteAllExpired removes expired entries from every cache table.
func (r *Repository) DeleteAllExpired() (int64, error) {
	var total int64
	for _, table := range AllTables {
		deleted, err := r.DeleteExpired(table)
		if err != nil {
			return total, err
		}
		total += deleted
	}
	return total, nil
}

// keyColumn returns the primary key column for a cache table.
// asset_records keys on ticker, everything else on a generic key column.
func keyColumn(table string) string {
	if table == TableAssetRecords {
		return "ticker"
	}
	return "key"
}
