package clientdata

import "time"

// Cache TTLs per data type. Quotes and fundamentals move slowly enough
// that an hour is fine; close series for a fixed range only gain one
// point per trading day.
const (
	TTLAssetRecord = 1 * time.Hour
	TTLCloseSeries = 1 * time.Hour
)
