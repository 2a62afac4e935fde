package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aha-designer/backend/internal/domain"
	"github.com/aha-designer/backend/internal/normalize"
	"go.uber.org/zap"
)

// SearchServiceConfig holds fallbacks for fields a request leaves blank
type SearchServiceConfig struct {
	CompanyID   string
	APIKey      string
	CountryCode string
}

// SearchService runs inventory searches and normalizes their responses
type SearchService struct {
	client      domain.PartsSearchClient
	companyID   string
	apiKey      string
	countryCode string
	logger      *zap.Logger
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(client domain.PartsSearchClient, cfg SearchServiceConfig, logger *zap.Logger) *SearchService {
	countryCode := strings.TrimSpace(cfg.CountryCode)
	if countryCode == "" {
		countryCode = domain.DefaultCountryCode
	}

	return &SearchService{
		client:      client,
		companyID:   strings.TrimSpace(cfg.CompanyID),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		countryCode: countryCode,
		logger:      logger.Named("search"),
	}
}

// Search validates the request, queries the parts API once and returns the
// ranked parts found in the response.
// Flow: resolve credentials -> build query -> fetch -> normalize
func (s *SearchService) Search(ctx context.Context, request *domain.SearchRequest) ([]domain.PartHit, error) {
	query, err := s.BuildQuery(request)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := s.client.SearchParts(ctx, query)
	if err != nil {
		s.logger.Warn("parts search failed",
			zap.String("token", query.SearchToken),
			zap.Error(err))
		return nil, err
	}

	hits, err := normalize.Run(body, request.MaxResults)
	if err != nil {
		s.logger.Warn("parts search response rejected",
			zap.String("token", query.SearchToken),
			zap.Int("bytes", len(body)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("parts search completed",
		zap.String("token", query.SearchToken),
		zap.String("country", query.CountryCode),
		zap.Int("hits", len(hits)),
		zap.Duration("elapsed", time.Since(start)))

	return hits, nil
}

// Normalize runs the engine alone over a captured response body
func (s *SearchService) Normalize(body []byte, maxResults *int) ([]domain.PartHit, error) {
	return normalize.Run(body, maxResults)
}

// BuildQuery resolves a request into an upstream query. Request credentials
// take precedence over configured ones; every string is trimmed.
func (s *SearchService) BuildQuery(request *domain.SearchRequest) (*domain.PartsQuery, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: request is required", domain.ErrInvalidRequest)
	}

	companyID := firstNonBlank(request.CompanyID, s.companyID)
	if companyID == "" {
		return nil, fmt.Errorf("%w: company ID is required", domain.ErrInvalidRequest)
	}

	apiKey := firstNonBlank(request.APIKey, s.apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", domain.ErrInvalidRequest)
	}

	token := strings.TrimSpace(request.SearchToken)
	if token == "" {
		return nil, fmt.Errorf("%w: search token cannot be empty", domain.ErrInvalidRequest)
	}

	query := &domain.PartsQuery{
		CompanyID:   companyID,
		APIKey:      apiKey,
		SearchToken: token,
		CountryCode: firstNonBlank(request.CountryCode, s.countryCode),
		ExactMatch:  false,
		InStockOnly: true,
	}
	if request.ExactMatch != nil {
		query.ExactMatch = *request.ExactMatch
	}
	if request.InStockOnly != nil {
		query.InStockOnly = *request.InStockOnly
	}

	return query, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
