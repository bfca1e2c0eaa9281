// Package yahoo provides market and sustainability data fetching from the
// Yahoo Finance query API, with persistent caching.
package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantlab/verdant/internal/clientdata"
	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/pkg/formulas"
)

// Fallback sustainability scores used when the provider has no coverage
// for a ticker. Chosen as mid-range values so uncovered tickers are
// neither automatically screened out nor flagged as leaders.
const (
	fallbackESGTotal = 19.0
	fallbackESGEnv   = 10.0
	fallbackESGSoc   = 4.0
	fallbackESGGov   = 5.0
)

// Client for the Yahoo Finance query API.
type Client struct {
	baseURL   string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
}

// NewClient creates a new Yahoo Finance client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(baseURL string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://query2.finance.yahoo.com"
	}
	return &Client{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		log:       log.With().Str("client", "yahoo").Logger(),
		cacheRepo: cacheRepo,
	}
}

// rawValue handles Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				LongName           string   `json:"longName"`
				ShortName          string   `json:"shortName"`
				RegularMarketPrice rawValue `json:"regularMarketPrice"`
				MarketCap          rawValue `json:"marketCap"`
				Currency           string   `json:"currency"`
			} `json:"price"`
			AssetProfile *struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
				Country  string `json:"country"`
			} `json:"assetProfile"`
			SummaryDetail *struct {
				Beta rawValue `json:"beta"`
			} `json:"summaryDetail"`
			ESGScores *struct {
				TotalESG         rawValue `json:"totalEsg"`
				EnvironmentScore rawValue `json:"environmentScore"`
				SocialScore      rawValue `json:"socialScore"`
				GovernanceScore  rawValue `json:"governanceScore"`
			} `json:"esgScores"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchAssetRecord fetches identity, market and sustainability data for a
// ticker. Missing ESG coverage falls back to neutral default scores.
// If the API fails, returns stale cached data if available.
func (c *Client) FetchAssetRecord(ticker string) (*domain.AssetRecord, error) {
	// Check persistent cache for fresh data
	if c.cacheRepo != nil {
		var cached domain.AssetRecord
		found, err := c.cacheRepo.GetIfFresh(clientdata.TableAssetRecords, ticker, &cached)
		if err == nil && found {
			c.log.Debug().Str("ticker", ticker).Msg("Cache hit")
			return &cached, nil
		}
	}

	record, err := c.fetchQuoteSummary(ticker)
	if err != nil {
		// API failed - try stale cache as fallback
		if stale, ok := c.staleAssetRecord(ticker); ok {
			c.log.Warn().
				Err(err).
				Str("ticker", ticker).
				Msg("API failed, using stale cached record")
			return stale, nil
		}
		return nil, err
	}

	// Derive trailing volatility and return from one year of closes.
	// Failures here are non-fatal, the record is still usable.
	c.enrichTrailingStats(record)

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store(clientdata.TableAssetRecords, ticker, record, clientdata.TTLAssetRecord); err != nil {
			c.log.Warn().Err(err).Str("ticker", ticker).Msg("Failed to cache asset record")
		}
	}

	c.log.Info().
		Str("ticker", ticker).
		Float64("esg_score", record.ESG.Total).
		Msg("Fetched asset record")

	return record, nil
}

func (c *Client) fetchQuoteSummary(ticker string) (*domain.AssetRecord, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,assetProfile,summaryDetail,esgScores",
		c.baseURL, ticker)

	body, err := c.get(url)
	if err != nil {
		return nil, err
	}

	var result quoteSummaryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse quote summary for %s: %w", ticker, err)
	}

	if result.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary error for %s: %s", ticker, result.QuoteSummary.Error.Description)
	}
	if len(result.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary data for %s", ticker)
	}

	data := result.QuoteSummary.Result[0]
	record := &domain.AssetRecord{Ticker: ticker}

	if data.Price != nil {
		record.Name = data.Price.LongName
		if record.Name == "" {
			record.Name = data.Price.ShortName
		}
		record.Price = data.Price.RegularMarketPrice.Raw
		record.MarketCap = data.Price.MarketCap.Raw
		record.Currency = domain.Currency(data.Price.Currency)
	}

	if data.AssetProfile != nil {
		record.Sector = data.AssetProfile.Sector
		record.Industry = data.AssetProfile.Industry
		record.Country = data.AssetProfile.Country
	}

	if data.SummaryDetail != nil {
		record.Beta = data.SummaryDetail.Beta.Raw
	}

	if data.ESGScores != nil {
		record.ESG = domain.ESGScores{
			Total:         data.ESGScores.TotalESG.Raw,
			Environmental: data.ESGScores.EnvironmentScore.Raw,
			Social:        data.ESGScores.SocialScore.Raw,
			Governance:    data.ESGScores.GovernanceScore.Raw,
		}
	} else {
		c.log.Debug().Str("ticker", ticker).Msg("No ESG coverage, using fallback scores")
		record.ESG = domain.ESGScores{
			Total:         fallbackESGTotal,
			Environmental: fallbackESGEnv,
			Social:        fallbackESGSoc,
			Governance:    fallbackESGGov,
		}
	}

	return record, nil
}

// enrichTrailingStats computes annualized volatility and trailing return
// (both in percent) from the last year of daily closes.
func (c *Client) enrichTrailingStats(record *domain.AssetRecord) {
	end := time.Now()
	start := end.AddDate(-1, 0, 0)

	series, err := c.FetchCloseSeries(record.Ticker, domain.DateRange{Start: start, End: end})
	if err != nil || len(series) < 2 {
		return
	}

	prices := make([]float64, len(series))
	for i, p := range series {
		prices[i] = p.Close
	}

	returns := formulas.CalculateReturns(prices)
	record.Volatility = formulas.AnnualizedVolatility(returns) * 100
	record.TrailingReturn = formulas.Mean(returns) * formulas.TradingDaysPerYear * 100
}

// FetchCloseSeries fetches daily close prices for a ticker over a date
// range. Points with null closes are dropped. If the API fails, returns
// stale cached data if available.
func (c *Client) FetchCloseSeries(ticker string, dateRange domain.DateRange) (domain.CloseSeries, error) {
	cacheKey := fmt.Sprintf("%s:%s:%s",
		ticker,
		dateRange.Start.UTC().Format("2006-01-02"),
		dateRange.End.UTC().Format("2006-01-02"))

	if c.cacheRepo != nil {
		var cached domain.CloseSeries
		found, err := c.cacheRepo.GetIfFresh(clientdata.TableCloseSeries, cacheKey, &cached)
		if err == nil && found {
			c.log.Debug().Str("ticker", ticker).Msg("Close series cache hit")
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, ticker, dateRange.Start.Unix(), dateRange.End.Unix())

	body, err := c.get(url)
	if err != nil {
		if stale, ok := c.staleCloseSeries(cacheKey); ok {
			c.log.Warn().
				Err(err).
				Str("ticker", ticker).
				Msg("API failed, using stale cached series")
			return stale, nil
		}
		return nil, err
	}

	var result chartResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse chart data for %s: %w", ticker, err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", ticker, result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %s", ticker)
	}

	data := result.Chart.Result[0]
	closes := data.Indicators.Quote[0].Close

	series := make(domain.CloseSeries, 0, len(data.Timestamp))
	for i, ts := range data.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series = append(series, domain.ClosePoint{
			Date:  domain.Day(time.Unix(ts, 0)),
			Close: *closes[i],
		})
	}

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store(clientdata.TableCloseSeries, cacheKey, series, clientdata.TTLCloseSeries); err != nil {
			c.log.Warn().Err(err).Str("ticker", ticker).Msg("Failed to cache close series")
		}
	}

	c.log.Debug().
		Str("ticker", ticker).
		Int("points", len(series)).
		Msg("Fetched close series")

	return series, nil
}

func (c *Client) get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	// Yahoo rejects requests without a browser-like user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func (c *Client) staleAssetRecord(ticker string) (*domain.AssetRecord, bool) {
	if c.cacheRepo == nil {
		return nil, false
	}
	var cached domain.AssetRecord
	found, err := c.cacheRepo.Get(clientdata.TableAssetRecords, ticker, &cached)
	if err != nil || !found {
		return nil, false
	}
	return &cached, true
}

func (c *Client) staleCloseSeries(cacheKey string) (domain.CloseSeries, bool) {
	if c.cacheRepo == nil {
		return nil, false
	}
	var cached domain.CloseSeries
	found, err := c.cacheRepo.Get(clientdata.TableCloseSeries, cacheKey, &cached)
	if err != nil || !found {
		return nil, false
	}
	return cached, true
}
