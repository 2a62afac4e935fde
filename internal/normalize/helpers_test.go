package normalize

import (
	"testing"

	"github.com/aha-designer/backend/internal/domain"
	"github.com/aha-designer/backend/internal/jsontree"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, s string) jsontree.Value {
	t.Helper()
	v, err := jsontree.Parse([]byte(s))
	require.NoError(t, err)
	return v
}

func strPtr(s string) *string { return &s }
func uintPtr(n uint64) *uint64 { return &n }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int { return &n }

func offer(distributor string, stock uint64) domain.Offer {
	return domain.Offer{Distributor: distributor, Stock: uintPtr(stock)}
}
