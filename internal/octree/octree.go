// Package octree implements a Barnes-Hut octree for approximate N-body
// gravity. Distant clusters of mass are folded into single point masses
// under the theta acceptance criterion, bringing per-step force evaluation
// from O(n^2) down to O(n log n) at a controlled accuracy cost.
//
// The tree is rebuilt wholesale each simulation step: Build requires
// exclusive access, after which CalculateForce, Bounds, and Stats may run
// concurrently from any number of goroutines.
package octree

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// ID is an opaque body identity. The tree compares it only to keep a body
// from exerting force on itself; the value carries no other meaning.
type ID uint64

// Body is a point mass. Value type, copied freely.
type Body struct {
	Position mgl64.Vec3
	ID       ID
	Mass     float64
}

const (
	// DefaultLeafThreshold is the maximum bodies per leaf before a node
	// subdivides.
	DefaultLeafThreshold = 4

	// DefaultMaxDepth caps subdivision. More than leafThreshold bodies at
	// one position cannot be separated by octant splits, so at the cap a
	// node becomes a leaf even above the nominal threshold.
	DefaultMaxDepth = 32
)

// boundsPadding expands the root box by this fraction of its extent per
// side so no body sits exactly on the outer boundary.
const boundsPadding = 0.01

// degenerateHalfExtent pads a zero-extent axis (all bodies coincident on
// it) so the root box always has volume to subdivide.
const degenerateHalfExtent = 0.5

// Stats is a read-only snapshot of the current tree.
type Stats struct {
	NodeCount             int
	BodyCount             int
	TotalMass             float64
	CenterOfMass          mgl64.Vec3
	ForceCalculationCount uint64
}

// Octree orchestrates the node arena and the root bounding volume. One
// instance owns its arena exclusively; nothing is shared across instances.
type Octree struct {
	theta         float64 // acceptance criterion: larger = faster, coarser
	minDistance   float64
	maxForce      float64
	leafThreshold int
	maxDepth      int
	minDistSq     float64 // cached minDistance * minDistance

	pool nodePool
	root int32

	forceCalcs atomic.Uint64
}

// New returns an empty octree. Theta controls the accuracy/speed trade-off
// (typical range 0.3 to 1.0); minDistance and maxForce stabilize the force
// kernel against near-coincident bodies, in the same units as the kernel.
func New(theta, minDistance, maxForce float64) *Octree {
	return &Octree{
		theta:         theta,
		minDistance:   minDistance,
		maxForce:      maxForce,
		leafThreshold: DefaultLeafThreshold,
		maxDepth:      DefaultMaxDepth,
		minDistSq:     minDistance * minDistance,
		root:          noChild,
	}
}

// WithLeafThreshold sets the maximum bodies per leaf (minimum 1).
func (t *Octree) WithLeafThreshold(n int) *Octree {
	if n >= 1 {
		t.leafThreshold = n
	}
	return t
}

// WithMaxDepth sets the subdivision depth cap (minimum 1).
func (t *Octree) WithMaxDepth(n int) *Octree {
	if n >= 1 {
		t.maxDepth = n
	}
	return t
}

// WithPoolCapacity pre-reserves arena storage for about n bodies.
func (t *Octree) WithPoolCapacity(n int) *Octree {
	t.pool.reserve(t.estimateNodeCapacity(n))
	return t
}

// Build replaces the tree with one built from bodies. The previous tree's
// nodes return to the arena free list first, so indices from earlier
// generations are invalid afterwards. An empty collection leaves the tree
// empty. Build requires exclusive access to the octree.
func (t *Octree) Build(bodies []Body) {
	if t.root != noChild {
		t.deallocateSubtree(t.root)
		t.root = noChild
	}
	if len(bodies) == 0 {
		return
	}

	min := bodies[0].Position
	max := bodies[0].Position
	for _, b := range bodies[1:] {
		for axis := 0; axis < 3; axis++ {
			if b.Position[axis] < min[axis] {
				min[axis] = b.Position[axis]
			}
			if b.Position[axis] > max[axis] {
				max[axis] = b.Position[axis]
			}
		}
	}

	// Grow the arena only when the estimate exceeds what is already
	// reserved; a warm pool keeps the per-step rebuild allocation-free.
	if est := t.estimateNodeCapacity(len(bodies)); t.pool.capacity() < est {
		t.pool.clear()
		t.pool.reserve(est)
	}

	pad := max.Sub(min).Mul(boundsPadding)
	for axis := 0; axis < 3; axis++ {
		if pad[axis] == 0 {
			pad[axis] = degenerateHalfExtent
		}
	}
	rootBounds := AABB{Min: min.Sub(pad), Max: max.Add(pad)}

	if len(bodies) <= t.leafThreshold {
		leaf := newNode(externalNode, rootBounds)
		for _, b := range bodies {
			leaf.addBody(b)
		}
		t.root = t.pool.allocate(leaf)
		return
	}

	t.root = t.pool.allocate(newNode(internalNode, rootBounds))
	t.buildRecursive(t.root, bodies, 0)
}

// buildRecursive partitions bodies into the octants of the node at nodeIdx,
// materializing only the octants that receive bodies. Subtree mass and
// center of mass accumulate on the way so the parent's aggregates are
// final when the call returns; no second traversal is needed.
func (t *Octree) buildRecursive(nodeIdx int32, bodies []Body, depth int) {
	if len(bodies) <= t.leafThreshold || depth >= t.maxDepth {
		n := t.pool.get(nodeIdx)
		if n == nil {
			return
		}
		n.kind = externalNode
		for _, b := range bodies {
			n.addBody(b)
		}
		return
	}

	n := t.pool.get(nodeIdx)
	if n == nil {
		return
	}
	bounds := n.bounds
	center := bounds.Center()
	octants := bounds.Octants()

	var groups [8][]Body
	for _, b := range bodies {
		oct := octantIndex(b.Position, center)
		groups[oct] = append(groups[oct], b)
	}

	var totalMass float64
	var weightedSum mgl64.Vec3
	bodyCount := 0

	for i, group := range groups {
		if len(group) == 0 {
			continue
		}
		for _, b := range group {
			totalMass += b.Mass
			weightedSum = weightedSum.Add(b.Position.Mul(b.Mass))
		}
		bodyCount += len(group)

		isLeaf := len(group) <= t.leafThreshold || depth+1 >= t.maxDepth
		var childIdx int32
		if isLeaf {
			leaf := newNode(externalNode, octants[i])
			for _, b := range group {
				leaf.addBody(b)
			}
			childIdx = t.pool.allocate(leaf)
		} else {
			childIdx = t.pool.allocate(newNode(internalNode, octants[i]))
		}

		// allocate may have moved the backing array; re-resolve the parent
		// before linking.
		if parent := t.pool.get(nodeIdx); parent != nil {
			parent.children[i] = childIdx
		}

		if !isLeaf {
			t.buildRecursive(childIdx, group, depth+1)
		}
	}

	if parent := t.pool.get(nodeIdx); parent != nil {
		var com mgl64.Vec3
		if totalMass > 0 {
			com = weightedSum.Mul(1 / totalMass)
		}
		parent.setAggregates(com, totalMass, bodyCount)
	}
}

// deallocateSubtree walks the subtree bottom-up and returns every node to
// the free list.
func (t *Octree) deallocateSubtree(idx int32) {
	n := t.pool.get(idx)
	if n == nil {
		return
	}
	if n.kind == internalNode {
		children := n.children
		for _, child := range children {
			if child != noChild {
				t.deallocateSubtree(child)
			}
		}
	}
	t.pool.deallocate(idx)
}

// estimateNodeCapacity sizes the arena for a body count, overcommitting so
// rebuilds rarely regrow it.
func (t *Octree) estimateNodeCapacity(bodyCount int) int {
	if bodyCount <= t.leafThreshold {
		return 1
	}
	leaves := (bodyCount + t.leafThreshold - 1) / t.leafThreshold
	internals := (leaves - 1) / 7
	est := (leaves + internals) * 3 / 2
	if est > bodyCount*2 {
		est = bodyCount * 2
	}
	if est < 16 {
		est = 16
	}
	return est
}

// CalculateForce returns the net gravitational force on b from every other
// body in the tree, with subtrees passing the theta criterion folded into
// single point masses at their center of mass. Zero vector for an empty
// tree. Safe to call concurrently once a Build has completed; each call
// bumps the force-evaluation counter exactly once.
func (t *Octree) CalculateForce(b Body, g float64) mgl64.Vec3 {
	if t.root == noChild {
		return mgl64.Vec3{}
	}
	t.forceCalcs.Add(1)
	return t.forceRecursive(t.root, b, g)
}

func (t *Octree) forceRecursive(idx int32, b Body, g float64) mgl64.Vec3 {
	n := t.pool.get(idx)
	if n == nil {
		return mgl64.Vec3{}
	}

	if n.kind == externalNode {
		// Direct sum over the leaf, skipping the query body's identity.
		var total mgl64.Vec3
		for i := 0; i < n.bodies.len(); i++ {
			if n.bodies.ids[i] == b.ID {
				continue
			}
			total = total.Add(t.pointForce(b, n.bodies.positions[i], n.bodies.masses[i], g))
		}
		return total
	}

	dist := b.Position.Sub(n.centerOfMass).Len()
	if n.size.Len()/dist < t.theta {
		return t.pointForce(b, n.centerOfMass, n.totalMass, g)
	}

	var total mgl64.Vec3
	for _, child := range n.children {
		if child != noChild {
			total = total.Add(t.forceRecursive(child, b, g))
		}
	}
	return total
}

// pointForce is the pairwise kernel shared by the direct and approximated
// paths: squared distance clamped below by minDistance^2 so coincident
// bodies cannot blow up, magnitude clamped above by maxForce so the 1/r^2
// kernel cannot spike the integrator.
func (t *Octree) pointForce(b Body, srcPos mgl64.Vec3, srcMass, g float64) mgl64.Vec3 {
	dir := srcPos.Sub(b.Position)
	distSq := dir.LenSqr()
	if distSq < t.minDistSq {
		distSq = t.minDistSq
	}
	dist := math.Sqrt(distSq)

	mag := g * b.Mass * srcMass / distSq
	if mag > t.maxForce {
		mag = t.maxForce
	}
	return dir.Mul(mag / dist)
}

// Bounds returns the bounding boxes of nodes up to maxDepth, root first
// (root is depth 0). A negative maxDepth returns every node. Purely
// observational; intended for external visualization.
func (t *Octree) Bounds(maxDepth int) []AABB {
	if t.root == noChild {
		return nil
	}
	capHint := 64
	if maxDepth >= 0 {
		capHint = 1
		per := 1
		for d := 0; d < maxDepth && capHint < 1024; d++ {
			per *= 8
			capHint += per
		}
		if capHint > 1024 {
			capHint = 1024
		}
	}
	out := make([]AABB, 0, capHint)
	t.collectBounds(t.root, 0, maxDepth, &out)
	return out
}

func (t *Octree) collectBounds(idx int32, depth, maxDepth int, out *[]AABB) {
	if maxDepth >= 0 && depth > maxDepth {
		return
	}
	n := t.pool.get(idx)
	if n == nil {
		return
	}
	*out = append(*out, n.bounds)
	if n.kind != internalNode {
		return
	}
	for _, child := range n.children {
		if child != noChild {
			t.collectBounds(child, depth+1, maxDepth, out)
		}
	}
}

// Stats walks the current tree and reports node/body counts and the root
// aggregates without mutating anything. An empty tree yields a zeroed
// snapshot.
func (t *Octree) Stats() Stats {
	if t.root == noChild {
		return Stats{}
	}
	root := t.pool.get(t.root)
	if root == nil {
		return Stats{}
	}
	return Stats{
		NodeCount:             t.countNodes(t.root),
		BodyCount:             root.bodyCount,
		TotalMass:             root.totalMass,
		CenterOfMass:          root.centerOfMass,
		ForceCalculationCount: t.forceCalcs.Load(),
	}
}

func (t *Octree) countNodes(idx int32) int {
	n := t.pool.get(idx)
	if n == nil {
		return 0
	}
	count := 1
	if n.kind == internalNode {
		for _, child := range n.children {
			if child != noChild {
				count += t.countNodes(child)
			}
		}
	}
	return count
}

// PoolStats reports arena occupancy: slots backed by storage and slots
// currently parked on the free list.
func (t *Octree) PoolStats() (allocated, free int) {
	return t.pool.stats()
}
