package query

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Golden tests pin the exact serialized form of representative queries.
// Regenerate with:
//
//	go test ./query -update
func TestBuild_Golden(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
	}{
		{
			"simple_select",
			New().From("x"),
		},
		{
			"join_where_order",
			New().
				Select("u.name", "p.title").
				From("users u").
				Join("posts p", "u.id = p.user_id").
				Where("u.active = ?", true).
				OrderBy("u.name").
				Limit(10),
		},
		{
			"group_having",
			New().
				Select("dept", "COUNT(*)").
				From("employees").
				GroupBy("dept").
				Having("COUNT(*) > ?", 5).
				OrderByDesc("dept"),
		},
		{
			"union_all",
			SelectFrom("orders", "id", "total").
				Where("total > ?", 100).
				UnionAll(SelectFrom("archived_orders", "id", "total").Where("total > ?", 100)),
		},
		{
			"pagination",
			New().From("logs").OrderBy("ts").Limit(50).Offset(100),
		},
		{
			"cross_join_aliases",
			New().Select("a.x", "b.y").FromAs("alpha", "a").JoinOn(Cross, "beta", "b", ""),
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(tt.b.String()))
		})
	}
}
