package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aha-designer/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPartsSearchClient is a mock implementation of domain.PartsSearchClient
type MockPartsSearchClient struct {
	body      []byte
	err       error
	calls     int
	lastQuery *domain.PartsQuery
}

func (m *MockPartsSearchClient) SearchParts(ctx context.Context, query *domain.PartsQuery) ([]byte, error) {
	m.calls++
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.body, nil
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func validRequest() *domain.SearchRequest {
	return &domain.SearchRequest{
		CompanyID:   "acme",
		APIKey:      "key-123",
		SearchToken: "LM317",
	}
}

func TestNewSearchService(t *testing.T) {
	t.Run("defaults the country code", func(t *testing.T) {
		svc := NewSearchService(&MockPartsSearchClient{}, SearchServiceConfig{}, zap.NewNop())
		assert.Equal(t, "US", svc.countryCode)
	})

	t.Run("trims configured credentials", func(t *testing.T) {
		svc := NewSearchService(&MockPartsSearchClient{}, SearchServiceConfig{
			CompanyID:   "  acme ",
			APIKey:      "\tkey\n",
			CountryCode: "DE",
		}, zap.NewNop())
		assert.Equal(t, "acme", svc.companyID)
		assert.Equal(t, "key", svc.apiKey)
		assert.Equal(t, "DE", svc.countryCode)
	})
}

func TestBuildQuery_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SearchServiceConfig
		request *domain.SearchRequest
		wantMsg string
	}{
		{
			name:    "nil request",
			request: nil,
			wantMsg: "request is required",
		},
		{
			name:    "blank company id",
			request: &domain.SearchRequest{CompanyID: "  ", APIKey: "k", SearchToken: "LM317"},
			wantMsg: "company ID is required",
		},
		{
			name:    "blank api key",
			request: &domain.SearchRequest{CompanyID: "c", APIKey: "", SearchToken: "LM317"},
			wantMsg: "API key is required",
		},
		{
			name:    "blank search token",
			request: &domain.SearchRequest{CompanyID: "c", APIKey: "k", SearchToken: " \t "},
			wantMsg: "search token cannot be empty",
		},
		{
			name:    "company id checked before token",
			request: &domain.SearchRequest{},
			wantMsg: "company ID is required",
		},
		{
			name:    "configured company id does not hide a missing key",
			cfg:     SearchServiceConfig{CompanyID: "acme"},
			request: &domain.SearchRequest{SearchToken: "LM317"},
			wantMsg: "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSearchService(&MockPartsSearchClient{}, tt.cfg, zap.NewNop())

			query, err := svc.BuildQuery(tt.request)

			assert.Nil(t, query)
			require.ErrorIs(t, err, domain.ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBuildQuery_Defaults(t *testing.T) {
	svc := NewSearchService(&MockPartsSearchClient{}, SearchServiceConfig{}, zap.NewNop())

	query, err := svc.BuildQuery(&domain.SearchRequest{
		CompanyID:   " acme ",
		APIKey:      " key ",
		SearchToken: "  LM317  ",
	})

	require.NoError(t, err)
	assert.Equal(t, &domain.PartsQuery{
		CompanyID:   "acme",
		APIKey:      "key",
		SearchToken: "LM317",
		CountryCode: "US",
		ExactMatch:  false,
		InStockOnly: true,
	}, query)
}

func TestBuildQuery_Overrides(t *testing.T) {
	svc := NewSearchService(&MockPartsSearchClient{}, SearchServiceConfig{
		CompanyID:   "configured-co",
		APIKey:      "configured-key",
		CountryCode: "GB",
	}, zap.NewNop())

	t.Run("configured credentials fill blanks", func(t *testing.T) {
		query, err := svc.BuildQuery(&domain.SearchRequest{SearchToken: "LM317"})
		require.NoError(t, err)
		assert.Equal(t, "configured-co", query.CompanyID)
		assert.Equal(t, "configured-key", query.APIKey)
		assert.Equal(t, "GB", query.CountryCode)
	})

	t.Run("request values win", func(t *testing.T) {
		query, err := svc.BuildQuery(&domain.SearchRequest{
			CompanyID:   "request-co",
			APIKey:      "request-key",
			SearchToken: "LM317",
			CountryCode: "DE",
			ExactMatch:  boolPtr(true),
			InStockOnly: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "request-co", query.CompanyID)
		assert.Equal(t, "request-key", query.APIKey)
		assert.Equal(t, "DE", query.CountryCode)
		assert.True(t, query.ExactMatch)
		assert.False(t, query.InStockOnly)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid request never reaches the client", func(t *testing.T) {
		client := &MockPartsSearchClient{}
		svc := NewSearchService(client, SearchServiceConfig{}, zap.NewNop())

		_, err := svc.Search(ctx, &domain.SearchRequest{CompanyID: "c", APIKey: "k"})

		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		assert.Equal(t, 0, client.calls)
	})

	t.Run("returns normalized hits", func(t *testing.T) {
		client := &MockPartsSearchClient{body: []byte(`{"Results":[{"Parts":[
			{"MPN":"LM317","Manufacturer":"TI","Description":"Adjustable LDO regulator","Offers":[{"Distributor":"DigiKey","Stock":1200}]},
			{"MPN":"LM317T","Manufacturer":"ST","Offers":[{"Distributor":"Mouser","Stock":50}]}
		]}]}`)}
		svc := NewSearchService(client, SearchServiceConfig{}, zap.NewNop())

		hits, err := svc.Search(ctx, validRequest())

		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "LM317", hits[0].MPN)
		assert.Equal(t, "PMIC", hits[0].CategoryHint)
		assert.Equal(t, "LM317T", hits[1].MPN)
		assert.Equal(t, 1, client.calls)
		assert.Equal(t, "LM317", client.lastQuery.SearchToken)
	})

	t.Run("applies the result cap", func(t *testing.T) {
		client := &MockPartsSearchClient{body: []byte(`[
			{"MPN":"A","Manufacturer":"X","Stock":1},
			{"MPN":"B","Manufacturer":"X","Stock":2},
			{"MPN":"C","Manufacturer":"X","Stock":3}
		]`)}
		svc := NewSearchService(client, SearchServiceConfig{}, zap.NewNop())

		req := validRequest()
		req.MaxResults = intPtr(2)
		hits, err := svc.Search(ctx, req)

		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "C", hits[0].MPN)
		assert.Equal(t, "B", hits[1].MPN)
	})

	t.Run("client errors pass through", func(t *testing.T) {
		upstream := fmt.Errorf("%w: rate limited", domain.ErrUpstreamFailure)
		client := &MockPartsSearchClient{err: upstream}
		svc := NewSearchService(client, SearchServiceConfig{}, zap.NewNop())

		_, err := svc.Search(ctx, validRequest())

		assert.True(t, errors.Is(err, domain.ErrUpstreamFailure))
		assert.Equal(t, "TrustedParts API returned an error: rate limited", err.Error())
	})

	t.Run("malformed body", func(t *testing.T) {
		client := &MockPartsSearchClient{body: []byte(`{"Results": [`)}
		svc := NewSearchService(client, SearchServiceConfig{}, zap.NewNop())

		_, err := svc.Search(ctx, validRequest())

		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})

	t.Run("empty result set is not an error", func(t *testing.T) {
		client := &MockPartsSearchClient{body: []byte(`{"Results":[]}`)}
		svc := NewSearchService(client, SearchServiceConfig{}, zap.NewNop())

		hits, err := svc.Search(ctx, validRequest())

		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestNormalize(t *testing.T) {
	svc := NewSearchService(&MockPartsSearchClient{}, SearchServiceConfig{}, zap.NewNop())

	hits, err := svc.Normalize([]byte(`{"MPN":"ABC123","Manufacturer":"Acme","Stock":500,"Price":1.25,"Currency":"USD"}`), nil)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "ABC123", hits[0].MPN)
	require.Len(t, hits[0].Offers, 1)
	assert.Equal(t, domain.UnknownDistributor, hits[0].Offers[0].Distributor)
}
