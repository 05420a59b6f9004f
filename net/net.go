package net

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"pocket-tracker/common"
	"pocket-tracker/config"
	"pocket-tracker/types"
)

const (
	QuotesPath      = "/v2/cryptocurrency/quotes/historical"
	oracleKeyHeader = "X-CMC_PRO_API_KEY"
)

// OracleClient queries the price oracle for historical USD quotes.
type OracleClient struct {
	client *resty.Client
	url    string
	symbol string
	apiKey string

	logger *zap.SugaredLogger
}

func NewOracleClient(cfg *config.NetConfig) *OracleClient {
	return &OracleClient{
		client: resty.New(),
		url:    cfg.OracleUrl,
		symbol: cfg.Symbol,
		apiKey: cfg.OracleApiKey,
		logger: zap.S().Named("[oracle]"),
	}
}

// GetAveragePrices issues one quote request covering the whole [from, to]
// span and averages the returned quotes per UTC calendar day. The result
// maps day strings (2006-01-02) to mean USD prices.
func (c *OracleClient) GetAveragePrices(from, to time.Time) (map[string]float64, error) {
	var history types.QuoteHistory
	resp, err := c.client.R().
		SetQueryParams(map[string]string{
			"symbol":     c.symbol,
			"time_start": from.UTC().Format(time.RFC3339),
			"time_end":   to.UTC().Format(time.RFC3339),
		}).
		SetHeader(oracleKeyHeader, c.apiKey).
		SetResult(&history).
		Get(c.url + QuotesPath)
	if err != nil {
		return nil, fmt.Errorf("quote request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("quote request status [%d]: %w", resp.StatusCode(), types.ErrDataUnavailable)
	}
	if len(history.Data.Quotes) == 0 {
		return nil, fmt.Errorf("no quotes for %s: %w", c.symbol, types.ErrDataUnavailable)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, quote := range history.Data.Quotes {
		day := common.FormatDay(quote.Timestamp)
		sums[day] += quote.Quote.USD.Price
		counts[day]++
	}

	prices := make(map[string]float64, len(sums))
	for day, sum := range sums {
		prices[day] = sum / float64(counts[day])
	}
	c.logger.Debugf("Fetched [%d] quotes covering [%d] days", len(history.Data.Quotes), len(prices))
	return prices, nil
}

// FeedClient queries the network data feed for burn transactions.
type FeedClient struct {
	client *resty.Client
	url    string
	apiKey string

	logger *zap.SugaredLogger
}

func NewFeedClient(cfg *config.NetConfig) *FeedClient {
	return &FeedClient{
		client: resty.New(),
		url:    cfg.FeedUrl,
		apiKey: cfg.FeedApiKey,
		logger: zap.S().Named("[feed]"),
	}
}

// GetDailyBurn returns the total amount burned on the given UTC day,
// counting only transactions that landed with a success result code.
func (c *FeedClient) GetDailyBurn(day time.Time) (float64, error) {
	start := common.TruncateToDay(day)
	end := start.AddDate(0, 0, 1)

	resp, err := c.client.R().
		SetHeader("Authorization", c.apiKey).
		SetBody(types.NewBurnQuery(start.Unix(), end.Unix())).
		Post(c.url)
	if err != nil {
		return 0, fmt.Errorf("burn request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("burn request status [%d]: %w", resp.StatusCode(), types.ErrDataUnavailable)
	}

	var history types.BurnHistory
	if err := json.Unmarshal(resp.Body(), &history); err != nil {
		return 0, fmt.Errorf("burn response for %s: %w", common.FormatDay(day), types.ErrDataUnavailable)
	}
	if history.Data.Transactions.Items == nil {
		return 0, fmt.Errorf("burn response for %s has no items: %w", common.FormatDay(day), types.ErrDataUnavailable)
	}

	var total float64
	for _, tx := range history.Data.Transactions.Items {
		if tx.ResultCode == 0 {
			total += tx.Amount
		}
	}
	c.logger.Debugf("Day [%s] has [%d] burn transactions totaling [%.2f]", common.FormatDay(day), len(history.Data.Transactions.Items), total)
	return total, nil
}
