package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPageRankNormalizes checks that ranks sum to 1 (within floating-point
// tolerance) on a three-node cycle.
func TestPageRankNormalizes(t *testing.T) {
	g := BuildLinkGraph(
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
	)
	result := ComputePageRank(g)

	var sum float64
	for _, r := range result.Rank {
		sum += r
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestPageRankCycleIsSymmetric(t *testing.T) {
	g := BuildLinkGraph(
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
	)
	result := ComputePageRank(g)

	assert.InDelta(t, result.Rank["a"], result.Rank["b"], 1e-6)
	assert.InDelta(t, result.Rank["b"], result.Rank["c"], 1e-6)
}

func TestPageRankStarGraphFavorsHub(t *testing.T) {
	g := BuildLinkGraph(
		[]string{"hub", "a", "b", "c"},
		[][2]string{{"a", "hub"}, {"b", "hub"}, {"c", "hub"}},
	)
	result := ComputePageRank(g)

	assert.Greater(t, result.Rank["hub"], result.Rank["a"])
	assert.Greater(t, result.Rank["hub"], result.Rank["b"])
	assert.Greater(t, result.Rank["hub"], result.Rank["c"])
}

func TestPageRankEmptyGraph(t *testing.T) {
	g := BuildLinkGraph(nil, nil)
	result := ComputePageRank(g)
	assert.Empty(t, result.Rank)
}

func TestPageRankNoEdgesYieldsEqualRanks(t *testing.T) {
	g := BuildLinkGraph([]string{"a", "b", "c", "d"}, nil)
	result := ComputePageRank(g)

	for _, url := range []string{"a", "b", "c", "d"} {
		assert.InDelta(t, 0.25, result.Rank[url], 1e-6)
	}
}

func TestPageRankTopReturnsDescendingOrder(t *testing.T) {
	g := BuildLinkGraph(
		[]string{"hub", "a", "b"},
		[][2]string{{"a", "hub"}, {"b", "hub"}},
	)
	result := ComputePageRank(g)
	top := result.Top(2)

	require := assert.New(t)
	require.Len(top, 2)
	require.Equal("hub", top[0].URL)
	require.GreaterOrEqual(top[0].Score, top[1].Score)
}

func TestIsDangling(t *testing.T) {
	g := BuildLinkGraph(
		[]string{"a", "b"},
		[][2]string{{"a", "b"}},
	)
	assert.True(t, g.IsDangling("b"))
	assert.False(t, g.IsDangling("a"))
}
