package universe

// RiskProfile is a predefined allocation profile.
type RiskProfile struct {
	Name             string  `json:"name"`
	Equity           float64 `json:"equity"`
	Bonds            float64 `json:"bonds"`
	Cash             float64 `json:"cash"`
	MaxVolatility    float64 `json:"max_volatility"` // percent
	Description      string  `json:"description"`
	DefaultBenchmark string  `json:"default_benchmark"`
}

// RiskProfiles lists the predefined allocation profiles, most defensive
// first.
var RiskProfiles = []RiskProfile{
	{
		Name:             ProfileConservative,
		Equity:           0.30,
		Bonds:            0.60,
		Cash:             0.10,
		MaxVolatility:    10,
		Description:      "Prioritizes capital preservation with limited equity exposure",
		DefaultBenchmark: "^GSPC",
	},
	{
		Name:             ProfileBalanced,
		Equity:           0.60,
		Bonds:            0.35,
		Cash:             0.05,
		MaxVolatility:    15,
		Description:      "Seeks a compromise between return and risk",
		DefaultBenchmark: "URTH",
	},
	{
		Name:             ProfileDynamic,
		Equity:           0.90,
		Bonds:            0.10,
		Cash:             0.00,
		MaxVolatility:    25,
		Description:      "Maximizes potential return with high equity exposure",
		DefaultBenchmark: "^IXIC",
	},
}

// ProfileByName looks up a risk profile by name.
func ProfileByName(name string) (RiskProfile, bool) {
	for _, p := range RiskProfiles {
		if p.Name == name {
			return p, true
		}
	}
	return RiskProfile{}, false
}

// Benchmark is a selectable performance reference index.
type Benchmark struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}

// Benchmarks lists the selectable reference indices.
var Benchmarks = []Benchmark{
	{Name: "S&P 500", Ticker: "^GSPC"},
	{Name: "NASDAQ Composite", Ticker: "^IXIC"},
	{Name: "Dow Jones", Ticker: "^DJI"},
	{Name: "MSCI World", Ticker: "URTH"},
	{Name: "MSCI ESG Leaders", Ticker: "SUSA"},
}
