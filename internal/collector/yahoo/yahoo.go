package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/quantsift/quantsift/internal/collector"
	"github.com/quantsift/quantsift/internal/core"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"

	// modules carrying the fields the screener reads
	summaryModules = "assetProfile,price,summaryDetail,financialData,defaultKeyStatistics"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0"
)

// validSymbol matches symbols like AAPL, MSFT, BRK.B, BF-B
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9]{1,10}([.-][A-Za-z0-9]{1,4})?$`)

// validateSymbol checks if a symbol has valid format
func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 20 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// Fetcher implements the Yahoo Finance fundamentals fetcher
type Fetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
	config    collector.Config
}

// New creates a new Yahoo fetcher
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
	}
}

func (f *Fetcher) Name() string {
	return "yahoo"
}

func (f *Fetcher) Init(cfg collector.Config) error {
	f.config = cfg
	if cfg.Timeout > 0 {
		f.client.Timeout = cfg.Timeout
	}
	if cfg.UserAgent != "" {
		f.userAgent = cfg.UserAgent
	}
	return nil
}

// toYahooSymbol converts index symbol format to Yahoo format.
// Class shares use a dot on the index listing: BRK.B -> BRK-B
func (f *Fetcher) toYahooSymbol(symbol string) string {
	return strings.ReplaceAll(symbol, ".", "-")
}

// Fetch retrieves the fundamentals snapshot for one symbol. Ratio
// fields the provider reports as fractions (ROE, earnings growth,
// revenue growth) are converted to percentage units here; analyst
// upside is derived here when both prices are known.
func (f *Fetcher) Fetch(ctx context.Context, symbol string) (*core.Snapshot, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?modules=%s", f.baseURL, f.toYahooSymbol(symbol), summaryModules)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching fundamentals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("symbol: %s", symbol))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if result.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", result.QuoteSummary.Error.Description)
	}

	if len(result.QuoteSummary.Result) == 0 {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("no data for symbol: %s", symbol))
	}

	r := result.QuoteSummary.Result[0]

	snapshot := &core.Snapshot{
		Symbol:         symbol,
		Company:        r.Price.LongName,
		Sector:         r.AssetProfile.Sector,
		TrailingPE:     r.SummaryDetail.TrailingPE.val(),
		ForwardPE:      r.SummaryDetail.ForwardPE.val(),
		PEGRatio:       r.DefaultKeyStatistics.PEGRatio.val(),
		ROE:            toPercent(r.FinancialData.ReturnOnEquity.val()),
		DebtToEquity:   r.FinancialData.DebtToEquity.val(),
		EarningsGrowth: toPercent(r.FinancialData.EarningsGrowth.val()),
		RevenueGrowth:  toPercent(r.FinancialData.RevenueGrowth.val()),
		RecScore:       r.FinancialData.RecommendationMean.val(),
		TargetPrice:    r.FinancialData.TargetMeanPrice.val(),
		Price:          r.FinancialData.CurrentPrice.val(),
		FetchedAt:      time.Now(),
		Source:         f.Name(),
	}
	snapshot.Upside = upside(snapshot.Price, snapshot.TargetPrice)

	return snapshot, nil
}

// toPercent converts a provider fraction to percentage units.
func toPercent(v *float64) *float64 {
	if v == nil {
		return nil
	}
	p := *v * 100
	return &p
}

// upside computes (target - price) / price * 100. Needs both prices;
// a zero price has no meaningful upside.
func upside(price, target *float64) *float64 {
	if price == nil || target == nil || *price == 0 {
		return nil
	}
	u := (*target - *price) / *price * 100
	return &u
}

// Yahoo quoteSummary response types. Every numeric field arrives as a
// {"raw": x, "fmt": "..."} wrapper and may be missing entirely.
type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
	Price struct {
		LongName  string `json:"longName"`
		ShortName string `json:"shortName"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE rawValue `json:"trailingPE"`
		ForwardPE  rawValue `json:"forwardPE"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		PEGRatio rawValue `json:"pegRatio"`
	} `json:"defaultKeyStatistics"`
	FinancialData struct {
		ReturnOnEquity     rawValue `json:"returnOnEquity"`
		DebtToEquity       rawValue `json:"debtToEquity"`
		EarningsGrowth     rawValue `json:"earningsGrowth"`
		RevenueGrowth      rawValue `json:"revenueGrowth"`
		RecommendationMean rawValue `json:"recommendationMean"`
		TargetMeanPrice    rawValue `json:"targetMeanPrice"`
		CurrentPrice       rawValue `json:"currentPrice"`
	} `json:"financialData"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v rawValue) val() *float64 {
	return v.Raw
}
