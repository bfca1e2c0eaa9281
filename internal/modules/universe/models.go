// Package universe defines the default sustainable investment universe,
// the risk profiles and the benchmark registry, backed by a sqlite
// securities repository.
package universe

import "github.com/verdantlab/verdant/internal/domain"

// Profile names.
const (
	ProfileConservative = "conservative"
	ProfileBalanced     = "balanced"
	ProfileDynamic      = "dynamic"
)

// Security is one member of the investment universe. Market and ESG
// fields are filled in by the refresh job; the seed list only carries
// identity, category and profile fit.
type Security struct {
	Ticker          string   `json:"ticker"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	DefaultProfiles []string `json:"default_profiles"`

	Sector         string           `json:"sector,omitempty"`
	Industry       string           `json:"industry,omitempty"`
	Country        string           `json:"country,omitempty"`
	Currency       domain.Currency  `json:"currency,omitempty"`
	MarketCap      float64          `json:"market_cap,omitempty"`
	Beta           float64          `json:"beta,omitempty"`
	Volatility     float64          `json:"volatility,omitempty"`
	Price          float64          `json:"price,omitempty"`
	TrailingReturn float64          `json:"returns_1y,omitempty"`
	ESG            domain.ESGScores `json:"esg"`
}

// Record converts a security to the asset record shape used by
// screening.
func (s Security) Record() domain.AssetRecord {
	return domain.AssetRecord{
		Ticker:         s.Ticker,
		Name:           s.Name,
		Sector:         s.Sector,
		Industry:       s.Industry,
		Country:        s.Country,
		MarketCap:      s.MarketCap,
		Beta:           s.Beta,
		Volatility:     s.Volatility,
		ESG:            s.ESG,
		Price:          s.Price,
		Currency:       s.Currency,
		TrailingReturn: s.TrailingReturn,
	}
}

// FitsProfile reports whether the security is part of the default
// allocation for a risk profile.
func (s Security) FitsProfile(profile string) bool {
	for _, p := range s.DefaultProfiles {
		if p == profile {
			return true
		}
	}
	return false
}

type seed struct {
	ticker   string
	name     string
	profiles []string
}

// defaultUniverse is the curated sustainable universe, grouped by theme.
var defaultUniverse = map[string][]seed{
	"Technology": {
		{"AAPL", "Apple Inc.", []string{ProfileBalanced, ProfileDynamic}},
		{"MSFT", "Microsoft Corp.", []string{ProfileConservative, ProfileBalanced, ProfileDynamic}},
		{"GOOGL", "Alphabet Inc.", []string{ProfileDynamic}},
		{"NVDA", "NVIDIA Corp.", []string{ProfileDynamic}},
		{"CRM", "Salesforce", []string{ProfileBalanced, ProfileDynamic}},
		{"ADBE", "Adobe Inc.", []string{ProfileDynamic}},
		{"CSCO", "Cisco Systems", []string{ProfileConservative, ProfileBalanced}},
		{"INTC", "Intel Corporation", []string{ProfileConservative, ProfileBalanced}},
	},
	"Renewable Energy": {
		{"ENPH", "Enphase Energy", []string{ProfileDynamic}},
		{"SEDG", "SolarEdge Technologies", []string{ProfileDynamic}},
		{"NEE", "NextEra Energy", []string{ProfileConservative, ProfileBalanced}},
		{"FSLR", "First Solar", []string{ProfileDynamic}},
		{"RUN", "Sunrun Inc.", []string{ProfileDynamic}},
		{"BEP", "Brookfield Renewable", []string{ProfileConservative, ProfileBalanced}},
	},
	"Sustainable Mobility": {
		{"TSLA", "Tesla Inc.", []string{ProfileDynamic}},
		{"NIO", "NIO Inc.", []string{ProfileDynamic}},
		{"RIVN", "Rivian Automotive", []string{ProfileDynamic}},
		{"ALB", "Albemarle Corporation", []string{ProfileBalanced}},
		{"GM", "General Motors", []string{ProfileBalanced}},
	},
	"Healthcare": {
		{"JNJ", "Johnson & Johnson", []string{ProfileConservative, ProfileBalanced}},
		{"ABBV", "AbbVie Inc.", []string{ProfileConservative, ProfileBalanced}},
		{"AMGN", "Amgen Inc.", []string{ProfileBalanced}},
		{"UNH", "UnitedHealth Group", []string{ProfileConservative, ProfileBalanced}},
		{"DHR", "Danaher Corporation", []string{ProfileBalanced}},
		{"TMO", "Thermo Fisher Scientific", []string{ProfileBalanced}},
		{"ISRG", "Intuitive Surgical", []string{ProfileDynamic}},
		{"GILD", "Gilead Sciences", []string{ProfileConservative, ProfileBalanced}},
	},
	"Sustainable Finance": {
		{"BLK", "BlackRock Inc.", []string{ProfileConservative, ProfileBalanced}},
		{"MS", "Morgan Stanley", []string{ProfileBalanced}},
		{"GS", "Goldman Sachs", []string{ProfileDynamic}},
		{"JPM", "JPMorgan Chase", []string{ProfileConservative, ProfileBalanced}},
		{"V", "Visa Inc.", []string{ProfileConservative, ProfileBalanced}},
		{"MA", "Mastercard", []string{ProfileBalanced}},
		{"SPGI", "S&P Global", []string{ProfileBalanced}},
		{"SCHW", "Charles Schwab", []string{ProfileBalanced}},
	},
	"Circular Economy": {
		{"WM", "Waste Management", []string{ProfileConservative}},
		{"RSG", "Republic Services", []string{ProfileConservative}},
		{"TTEK", "Tetra Tech", []string{ProfileBalanced}},
		{"WSM", "Williams-Sonoma", []string{ProfileBalanced}},
		{"KHC", "Kraft Heinz", []string{ProfileConservative}},
		{"DNKG", "Danone", []string{ProfileConservative}},
	},
	"Water": {
		{"AWK", "American Water Works", []string{ProfileConservative}},
		{"XYL", "Xylem Inc.", []string{ProfileBalanced}},
		{"WTRG", "Essential Utilities", []string{ProfileConservative}},
		{"PNR", "Pentair", []string{ProfileBalanced}},
		{"VIE", "Veolia Environnement", []string{ProfileConservative}},
		{"ECL", "Ecolab Inc.", []string{ProfileBalanced}},
		{"IEX", "IDEX Corporation", []string{ProfileBalanced}},
	},
	"Sustainable Agriculture": {
		{"ADM", "Archer-Daniels-Midland", []string{ProfileConservative}},
		{"DE", "Deere & Company", []string{ProfileBalanced}},
		{"CTVA", "Corteva Inc.", []string{ProfileBalanced}},
		{"NTR", "Nutrien Ltd.", []string{ProfileBalanced}},
		{"FMC", "FMC Corporation", []string{ProfileBalanced}},
		{"SMG", "Scotts Miracle-Gro", []string{ProfileDynamic}},
		{"AGCO", "AGCO Corporation", []string{ProfileBalanced}},
		{"TSN", "Tyson Foods", []string{ProfileConservative}},
	},
	"Sustainable Construction": {
		{"CAT", "Caterpillar Inc.", []string{ProfileBalanced}},
		{"VMC", "Vulcan Materials", []string{ProfileBalanced}},
		{"MLM", "Martin Marietta", []string{ProfileBalanced}},
		{"CARR", "Carrier Global", []string{ProfileBalanced}},
		{"JCI", "Johnson Controls", []string{ProfileBalanced}},
		{"GNRC", "Generac Holdings", []string{ProfileDynamic}},
		{"LIN", "Linde plc", []string{ProfileConservative, ProfileBalanced}},
		{"SHW", "Sherwin-Williams", []string{ProfileBalanced}},
	},
}

// DefaultSecurities returns the seed universe as securities with market
// fields unset.
func DefaultSecurities() []Security {
	var out []Security
	for category, seeds := range defaultUniverse {
		for _, s := range seeds {
			out = append(out, Security{
				Ticker:          s.ticker,
				Name:            s.name,
				Category:        category,
				DefaultProfiles: s.profiles,
			})
		}
	}
	return out
}
