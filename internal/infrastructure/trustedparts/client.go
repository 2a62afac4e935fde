package trustedparts

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aha-designer/backend/config"
	"github.com/aha-designer/backend/internal/domain"
	"github.com/aha-designer/backend/internal/normalize"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client handles communication with the TrustedParts inventory search API
type Client struct {
	http        *resty.Client
	searchURL   string
	userAgent   string
	timeout     time.Duration
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

type searchQuery struct {
	SearchToken string `json:"SearchToken"`
}

type searchPayload struct {
	CompanyID   string        `json:"CompanyId"`
	APIKey      string        `json:"ApiKey"`
	Queries     []searchQuery `json:"Queries"`
	CountryCode string        `json:"CountryCode"`
	ExactMatch  bool          `json:"ExactMatch"`
	InStockOnly bool          `json:"InStockOnly"`
	IsCrawler   bool          `json:"IsCrawler"`
	UserAgent   string        `json:"UserAgent"`
}

// NewClient creates a new TrustedParts API client
func NewClient(cfg config.TrustedPartsConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 || timeout > config.MaxUpstreamTimeout {
		timeout = config.MaxUpstreamTimeout
	}

	// requests_per_minute 0 means unthrottled
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), cfg.RequestsPerMinute)
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)

	return &Client{
		http:        httpClient,
		searchURL:   cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		timeout:     timeout,
		rateLimiter: limiter,
		logger:      logger.Named("trustedparts"),
	}
}

// SearchParts issues one search and returns the raw body of a 2xx response.
// The call is detached from ctx cancellation; the limiter wait and the
// request together are bounded by the client timeout. ctx values (request
// ids) are kept.
func (c *Client) SearchParts(ctx context.Context, query *domain.PartsQuery) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrTransportFailure, err)
	}

	payload := searchPayload{
		CompanyID:   query.CompanyID,
		APIKey:      query.APIKey,
		Queries:     []searchQuery{{SearchToken: query.SearchToken}},
		CountryCode: query.CountryCode,
		ExactMatch:  query.ExactMatch,
		InStockOnly: query.InStockOnly,
		IsCrawler:   false,
		UserAgent:   c.userAgent,
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.searchURL)
	if err != nil {
		c.logger.Warn("search request failed",
			zap.String("token", query.SearchToken),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}

	body := resp.Body()
	c.logger.Debug("search response",
		zap.String("token", query.SearchToken),
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		if msg, ok := normalize.APIErrorMessage(body); ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamFailure, msg)
		}
		return nil, fmt.Errorf("%w: HTTP %d returned by TrustedParts API.", domain.ErrUpstreamFailure, resp.StatusCode())
	}

	return body, nil
}
