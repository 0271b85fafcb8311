package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// bvhNode is either a leaf covering ordered[offset:offset+count] or an
// interior node with two children in the arena. count == 0 marks interior.
type bvhNode struct {
	bounds      core.Bounds3
	left, right int
	offset      int
	count       int
}

func (n *bvhNode) isLeaf() bool {
	return n.count > 0
}

// BVH is a bounding volume hierarchy over a fixed set of shapes. Nodes live
// in a single arena slice and refer to each other by index; leaves refer to
// contiguous ranges of the ordered shape array. The root is node 0.
// A BVH is read-only after NewBVH and safe for concurrent queries.
type BVH struct {
	nodes   []bvhNode
	ordered []Shape
}

// primitiveInfo is the build-time record for one input shape
type primitiveInfo struct {
	index  int
	bounds core.Bounds3
}

// NewBVH builds a hierarchy over shapes using a midpoint split on the axis
// of greatest centroid extent. The input slice is not modified. Zero shapes
// produce an empty BVH that never reports a hit.
//
// The midpoint split is fast to build but can produce poor trees for
// clustered scenes; a surface area heuristic would do better.
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{}
	if len(shapes) == 0 {
		return bvh
	}

	prims := make([]primitiveInfo, len(shapes))
	for i, shape := range shapes {
		prims[i] = primitiveInfo{index: i, bounds: shape.WorldBounds()}
	}

	bvh.nodes = make([]bvhNode, 0, 2*len(shapes)-1)
	bvh.ordered = make([]Shape, 0, len(shapes))
	bvh.build(shapes, prims, 0, len(prims))
	return bvh
}

// build creates the subtree for prims[start:end] and returns its node index
func (bvh *BVH) build(shapes []Shape, prims []primitiveInfo, start, end int) int {
	bounds := prims[start].bounds
	for i := start + 1; i < end; i++ {
		bounds = bounds.Union(prims[i].bounds)
	}

	nodeIndex := len(bvh.nodes)
	bvh.nodes = append(bvh.nodes, bvhNode{bounds: bounds})

	if end-start == 1 {
		bvh.makeLeaf(nodeIndex, shapes, prims, start, end)
		return nodeIndex
	}

	centroidBounds := core.NewBounds3FromPoint(prims[start].bounds.Centroid)
	for i := start + 1; i < end; i++ {
		centroidBounds = centroidBounds.UnionPoint(prims[i].bounds.Centroid)
	}
	axis := centroidBounds.MaximumExtent()

	// All centroids coincide: no split can separate them
	lo, hi := centroidBounds.PMin.Axis(axis), centroidBounds.PMax.Axis(axis)
	if lo == hi {
		bvh.makeLeaf(nodeIndex, shapes, prims, start, end)
		return nodeIndex
	}

	splitAt := lo + (hi-lo)/2
	mid := partition(prims[start:end], func(p primitiveInfo) bool {
		return p.bounds.Centroid.Axis(axis) < splitAt
	}) + start
	if mid == start || mid == end {
		mid = start + (end-start)/2
	}

	left := bvh.build(shapes, prims, start, mid)
	right := bvh.build(shapes, prims, mid, end)
	bvh.nodes[nodeIndex].left = left
	bvh.nodes[nodeIndex].right = right
	return nodeIndex
}

func (bvh *BVH) makeLeaf(nodeIndex int, shapes []Shape, prims []primitiveInfo, start, end int) {
	node := &bvh.nodes[nodeIndex]
	node.offset = len(bvh.ordered)
	node.count = end - start
	for _, p := range prims[start:end] {
		bvh.ordered = append(bvh.ordered, shapes[p.index])
	}
}

// partition moves every element satisfying pred to the front of prims and
// returns the number of such elements
func partition(prims []primitiveInfo, pred func(primitiveInfo) bool) int {
	first := 0
	for i := range prims {
		if pred(prims[i]) {
			prims[first], prims[i] = prims[i], prims[first]
			first++
		}
	}
	return first
}

// Intersect returns the closest hit along ray. Children are visited left
// first; once the left subtree yields a hit the ray's TMax shrinks to that
// distance, so the right subtree is pruned against it. ray is a copy, so
// the narrowing never reaches the caller.
func (bvh *BVH) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	var closest core.SurfaceInteraction
	var closestT float64
	hitAnything := false
	if len(bvh.nodes) == 0 {
		return closest, 0, false
	}

	stack := append(make([]int, 0, 64), 0)
	for len(stack) > 0 {
		node := &bvh.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if _, _, ok := node.bounds.IntersectRobust(ray); !ok {
			continue
		}

		if node.isLeaf() {
			for _, shape := range bvh.ordered[node.offset : node.offset+node.count] {
				if si, t, ok := shape.Intersect(ray); ok {
					hitAnything = true
					closest, closestT = si, t
					ray.TMax = t
				}
			}
			continue
		}

		// Right is pushed first so the whole left subtree is visited before it
		stack = append(stack, node.right, node.left)
	}

	return closest, closestT, hitAnything
}

// IntersectP reports whether anything is hit along ray, stopping at the
// first hit found
func (bvh *BVH) IntersectP(ray core.Ray) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	stack := append(make([]int, 0, 64), 0)
	for len(stack) > 0 {
		node := &bvh.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if _, _, ok := node.bounds.IntersectRobust(ray); !ok {
			continue
		}
		if node.isLeaf() {
			for _, shape := range bvh.ordered[node.offset : node.offset+node.count] {
				if shape.IntersectP(ray) {
					return true
				}
			}
			continue
		}
		stack = append(stack, node.right, node.left)
	}
	return false
}

// Bounds returns the world bounds of every shape in the BVH. The second
// result is false for an empty BVH.
func (bvh *BVH) Bounds() (core.Bounds3, bool) {
	if len(bvh.nodes) == 0 {
		return core.Bounds3{}, false
	}
	return bvh.nodes[0].bounds, true
}

// Len returns the number of shapes in the BVH
func (bvh *BVH) Len() int {
	return len(bvh.ordered)
}

// Shapes returns a copy of the shapes in leaf order
func (bvh *BVH) Shapes() []Shape {
	out := make([]Shape, len(bvh.ordered))
	copy(out, bvh.ordered)
	return out
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes         int
	Leaves        int
	MaxDepth      int
	AvgLeafDepth  float64
	Shapes        int
	MaxLeafShapes int
}

// Stats walks the hierarchy and returns its statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Nodes: len(bvh.nodes), Shapes: len(bvh.ordered)}
	if len(bvh.nodes) == 0 {
		return stats
	}

	type entry struct{ node, depth int }
	stack := []entry{{0, 0}}
	depthSum := 0
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &bvh.nodes[e.node]

		stats.MaxDepth = max(stats.MaxDepth, e.depth)
		if node.isLeaf() {
			stats.Leaves++
			stats.MaxLeafShapes = max(stats.MaxLeafShapes, node.count)
			depthSum += e.depth
			continue
		}
		stack = append(stack, entry{node.right, e.depth + 1}, entry{node.left, e.depth + 1})
	}
	stats.AvgLeafDepth = float64(depthSum) / float64(stats.Leaves)
	return stats
}
