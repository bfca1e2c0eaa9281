package domain

// AssetSource supplies asset snapshots and price history to the metrics
// engine. Implementations own all I/O, caching and retry concerns; the
// core treats a nil record, an empty series and an error identically as
// "no data for this ticker" and never propagates a fetch failure.
type AssetSource interface {
	// FetchAssetRecord returns the snapshot for a ticker, or nil when the
	// ticker cannot be resolved.
	FetchAssetRecord(ticker string) (*AssetRecord, error)

	// FetchCloseSeries returns daily closes for a ticker within the date
	// range, or an empty series when no history is available.
	FetchCloseSeries(ticker string, dateRange DateRange) (CloseSeries, error)
}
