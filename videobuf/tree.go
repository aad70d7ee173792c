package videobuf

// BBox is an axis-aligned bounding box in frame-pixel coordinates.
type BBox struct {
	X, Y, W, H float64
}

// Scale returns bb scaled from a frame of size (fromW, fromH) to one of
// size (toW, toH), per spec.md §4.9's linear-factor-per-axis bbox rescale.
func (bb BBox) Scale(fromW, fromH, toW, toH float64) BBox {
	if fromW == 0 || fromH == 0 {
		return bb
	}
	sx := toW / fromW
	sy := toH / fromH
	return BBox{X: bb.X * sx, Y: bb.Y * sy, W: bb.W * sx, H: bb.H * sy}
}

// nodeIndex is an offset into PredictionTree.nodes; noNode (-1) means "no
// node" and marks the root's parent. Index 0 is the root, which only
// NewPredictionTree adds, so the zero value of PredictionTree has no root.
type nodeIndex int32

const noNode nodeIndex = -1

// PredictionNode is one node of a PredictionTree: root = image-level,
// depth 1 = object detections, depth 2 = per-object classification
// attributes, attached in the fixed order color, make, type (spec.md §3).
type PredictionNode struct {
	PredictionID  uint64
	BBox          BBox
	ClassID       int32
	ClassProb     float32
	ClassLabel    string
	Enabled       bool
	ObjTrackLabel string

	parent   nodeIndex
	children []nodeIndex
}

// PredictionTree is a rooted arena of PredictionNode, replacing a
// hand-written linked structure with parent/child indices per spec.md §9's
// re-architecture note. Nodes are heap-allocated individually (rather than
// held inline in a growable slice) so a *PredictionNode handed out by Node
// stays valid across later AddChild calls, which a classifier stage relies
// on when it holds onto a node across a batch dispatch.
type PredictionTree struct {
	nodes  []*PredictionNode
	nextID uint64
}

// NewPredictionTree returns a tree containing only the root node (depth 0,
// the image-level node).
func NewPredictionTree() *PredictionTree {
	t := &PredictionTree{}
	t.nodes = append(t.nodes, &PredictionNode{parent: noNode})
	return t
}

// Root returns the index of the image-level root node.
func (t *PredictionTree) Root() int { return 0 }

// AddChild appends a new node as a child of parent, returning its index.
// PredictionID is auto-assigned as a stable, tree-unique u64.
func (t *PredictionTree) AddChild(parent int, node PredictionNode) int {
	t.nextID++
	node.PredictionID = t.nextID
	node.parent = nodeIndex(parent)
	node.children = nil
	idx := len(t.nodes)
	t.nodes = append(t.nodes, &node)
	t.nodes[parent].children = append(t.nodes[parent].children, nodeIndex(idx))
	return idx
}

// Node returns a pointer to the node at idx for in-place mutation (e.g. a
// classifier stage attaching a class label to a detection node).
func (t *PredictionTree) Node(idx int) *PredictionNode {
	return t.nodes[idx]
}

// Children returns the child indices of the node at idx.
func (t *PredictionTree) Children(idx int) []int {
	kids := t.nodes[idx].children
	out := make([]int, len(kids))
	for i, k := range kids {
		out[i] = int(k)
	}
	return out
}

// Depth returns the distance of idx from the root (root is depth 0).
func (t *PredictionTree) Depth(idx int) int {
	d := 0
	for n := t.nodes[idx]; n.parent != noNode; n = t.nodes[n.parent] {
		d++
	}
	return d
}

// Walk performs a recursive depth-first traversal starting at idx, calling
// visit(nodeIndex, depth) for every node including idx itself. Returning
// false from visit stops descent into that node's children but continues
// the walk at its siblings, per spec.md §9's early-termination callback.
func (t *PredictionTree) Walk(idx int, visit func(idx, depth int) bool) {
	t.walk(idx, 0, visit)
}

func (t *PredictionTree) walk(idx, depth int, visit func(idx, depth int) bool) {
	if !visit(idx, depth) {
		return
	}
	for _, c := range t.nodes[idx].children {
		t.walk(int(c), depth+1, visit)
	}
}

// Level1Nodes returns the indices of every depth-1 (object detection) node.
func (t *PredictionTree) Level1Nodes() []int {
	return t.Children(t.Root())
}
