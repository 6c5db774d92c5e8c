package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "example.com/storefront/internal/domain/product"
)

func f64(v float64) *float64 { return &v }

func baseList() []*domproduct.Product {
	return []*domproduct.Product{
		{ID: "1", Name: "widget", Price: 100, Rating: 4},
		{ID: "2", Name: "gadget", Price: 50, Rating: 5},
		{ID: "3", Name: "gizmo", Price: 75, Rating: 3},
	}
}

func ids(view []*domproduct.Product) []string {
	out := make([]string, 0, len(view))
	for _, p := range view {
		out = append(out, p.ID)
	}
	return out
}

func TestDeriveView_NoCriteriaKeepsBaseOrder(t *testing.T) {
	base := baseList()
	view := DeriveView(base, Criteria{})
	require.Equal(t, []string{"1", "2", "3"}, ids(view))
}

func TestDeriveView_DoesNotMutateBase(t *testing.T) {
	base := baseList()
	_ = DeriveView(base, Criteria{Sort: SortPriceLowToHigh})
	require.Equal(t, []string{"1", "2", "3"}, ids(base))
}

func TestDeriveView_PriceLowToHigh(t *testing.T) {
	view := DeriveView(baseList(), Criteria{Sort: SortPriceLowToHigh})
	require.Equal(t, []string{"2", "3", "1"}, ids(view))
}

func TestDeriveView_PriceHighToLow(t *testing.T) {
	view := DeriveView(baseList(), Criteria{Sort: SortPriceHighToLow})
	require.Equal(t, []string{"1", "3", "2"}, ids(view))
}

func TestDeriveView_RatingDescending(t *testing.T) {
	view := DeriveView(baseList(), Criteria{Sort: SortRating})
	require.Equal(t, []string{"2", "1", "3"}, ids(view))
}

func TestDeriveView_UnknownSortKeyKeepsOrder(t *testing.T) {
	view := DeriveView(baseList(), Criteria{Sort: SortKey("featured")})
	require.Equal(t, []string{"1", "2", "3"}, ids(view))
}

func TestDeriveView_PriceFilterInclusiveBounds(t *testing.T) {
	tests := []struct {
		name  string
		price PriceRange
		want  []string
	}{
		{"min only", PriceRange{Min: f64(75)}, []string{"1", "3"}},
		{"max only", PriceRange{Max: f64(75)}, []string{"2", "3"}},
		{"both bounds", PriceRange{Min: f64(50), Max: f64(75)}, []string{"2", "3"}},
		{"bound equals price", PriceRange{Min: f64(100), Max: f64(100)}, []string{"1"}},
		{"excludes all", PriceRange{Min: f64(200)}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := DeriveView(baseList(), Criteria{Price: tt.price})
			require.Equal(t, tt.want, ids(view))
		})
	}
}

func TestDeriveView_FilterThenSort(t *testing.T) {
	view := DeriveView(baseList(), Criteria{
		Sort:  SortPriceLowToHigh,
		Price: PriceRange{Max: f64(80)},
	})
	require.Equal(t, []string{"2", "3"}, ids(view))
}

func TestDeriveView_NewestNumericIDs(t *testing.T) {
	base := []*domproduct.Product{
		{ID: "2"}, {ID: "10"}, {ID: "1"},
	}
	view := DeriveView(base, Criteria{Sort: SortNewest})
	require.Equal(t, []string{"10", "2", "1"}, ids(view))
}

func TestDeriveView_NewestLexicographicIDs(t *testing.T) {
	base := []*domproduct.Product{
		{ID: "alpha"}, {ID: "gamma"}, {ID: "beta"},
	}
	view := DeriveView(base, Criteria{Sort: SortNewest})
	require.Equal(t, []string{"gamma", "beta", "alpha"}, ids(view))
}

// Mixed numeric and non-numeric ids fall back to string comparison pairwise,
// which is not a total order. This pins the order the stable sort actually
// produces so a comparator change shows up as a failure.
func TestDeriveView_NewestMixedIDsPinnedOrder(t *testing.T) {
	base := []*domproduct.Product{
		{ID: "10"}, {ID: "2"}, {ID: "abc"},
	}
	view := DeriveView(base, Criteria{Sort: SortNewest})
	require.Equal(t, []string{"abc", "10", "2"}, ids(view))
}

func TestDeriveView_Idempotent(t *testing.T) {
	crit := Criteria{Sort: SortNewest, Price: PriceRange{Min: f64(10)}}
	base := baseList()
	first := DeriveView(base, crit)
	second := DeriveView(base, crit)
	require.Equal(t, ids(first), ids(second))
}

func TestDeriveView_ScenarioTwoProducts(t *testing.T) {
	base := []*domproduct.Product{
		{ID: "1", Price: 100, Rating: 4},
		{ID: "2", Price: 50, Rating: 5},
	}

	low := DeriveView(base, Criteria{Sort: SortPriceLowToHigh})
	require.Equal(t, []string{"2", "1"}, ids(low))

	rated := DeriveView(base, Criteria{Sort: SortRating})
	require.Equal(t, []string{"2", "1"}, ids(rated))

	capped := DeriveView(base, Criteria{Price: PriceRange{Max: f64(60)}})
	require.Equal(t, []string{"2"}, ids(capped))
}
