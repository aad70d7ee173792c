package videobuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddChildAssignsIncreasingPredictionIDs(t *testing.T) {
	tr := NewPredictionTree()
	a := tr.AddChild(tr.Root(), PredictionNode{ClassLabel: "car"})
	b := tr.AddChild(tr.Root(), PredictionNode{ClassLabel: "truck"})

	require.Equal(t, uint64(1), tr.Node(a).PredictionID)
	require.Equal(t, uint64(2), tr.Node(b).PredictionID)
	require.Equal(t, []int{a, b}, tr.Level1Nodes())
}

func TestDepthReflectsDetectionThenClassificationNesting(t *testing.T) {
	tr := NewPredictionTree()
	det := tr.AddChild(tr.Root(), PredictionNode{ClassLabel: "car"})
	color := tr.AddChild(det, PredictionNode{ClassLabel: "red"})

	require.Equal(t, 0, tr.Depth(tr.Root()))
	require.Equal(t, 1, tr.Depth(det))
	require.Equal(t, 2, tr.Depth(color))
}

func TestWalkVisitsInDepthFirstOrderAndRespectsEarlyStop(t *testing.T) {
	tr := NewPredictionTree()
	det1 := tr.AddChild(tr.Root(), PredictionNode{ClassLabel: "car"})
	tr.AddChild(det1, PredictionNode{ClassLabel: "red"})
	det2 := tr.AddChild(tr.Root(), PredictionNode{ClassLabel: "truck"})
	tr.AddChild(det2, PredictionNode{ClassLabel: "blue"})

	var visited []int
	tr.Walk(tr.Root(), func(idx, depth int) bool {
		visited = append(visited, idx)
		// stop descending into det1's children, but keep walking det2's.
		return idx != det1
	})

	require.Equal(t, []int{tr.Root(), det1, det2, det2 + 1}, visited)
}

func TestScaleAppliesPerAxisFactors(t *testing.T) {
	bb := BBox{X: 10, Y: 20, W: 30, H: 40}
	scaled := bb.Scale(100, 200, 200, 100)
	require.Equal(t, BBox{X: 20, Y: 10, W: 60, H: 20}, scaled)
}
