package database

// schemas maps database names to their embedded schema SQL.
// Every statement is idempotent so Migrate can run on every startup.
var schemas = map[string]string{
	"universe": `
CREATE TABLE IF NOT EXISTS securities (
    ticker          TEXT PRIMARY KEY,
    name            TEXT NOT NULL DEFAULT '',
    category        TEXT NOT NULL DEFAULT '',
    default_profiles TEXT NOT NULL DEFAULT '[]',
    sector          TEXT NOT NULL DEFAULT '',
    industry        TEXT NOT NULL DEFAULT '',
    country         TEXT NOT NULL DEFAULT '',
    currency        TEXT NOT NULL DEFAULT '',
    market_cap      REAL NOT NULL DEFAULT 0,
    beta            REAL NOT NULL DEFAULT 0,
    volatility      REAL NOT NULL DEFAULT 0,
    price           REAL NOT NULL DEFAULT 0,
    returns_1y      REAL NOT NULL DEFAULT 0,
    esg_score       REAL NOT NULL DEFAULT 0,
    env_score       REAL NOT NULL DEFAULT 0,
    social_score    REAL NOT NULL DEFAULT 0,
    gov_score       REAL NOT NULL DEFAULT 0,
    updated_at      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_securities_category ON securities(category);
CREATE INDEX IF NOT EXISTS idx_securities_sector ON securities(sector);
`,

	"client_data": `
CREATE TABLE IF NOT EXISTS asset_records (
    ticker      TEXT PRIMARY KEY,
    data        TEXT NOT NULL,
    expires_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS close_series (
    key         TEXT PRIMARY KEY,
    data        TEXT NOT NULL,
    expires_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_asset_records_expires ON asset_records(expires_at);
CREATE INDEX IF NOT EXISTS idx_close_series_expires ON close_series(expires_at);
`,
}
