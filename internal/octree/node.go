package octree

import "github.com/go-gl/mathgl/mgl64"

// nodeKind tags a node as internal (subdivided, children by index) or
// external (a leaf holding bodies directly).
type nodeKind uint8

const (
	internalNode nodeKind = iota
	externalNode
)

// noChild marks an empty child slot. Octants are materialized only when a
// body actually lands in them, so most slots stay empty in clustered sets.
const noChild = int32(-1)

// node is one octree cell. The fields read on every force traversal step
// (aggregate center of mass, aggregate mass, box size) come first; the
// build-time bookkeeping follows.
type node struct {
	centerOfMass mgl64.Vec3
	totalMass    float64
	size         mgl64.Vec3

	bounds    AABB
	children  [8]int32
	bodyCount int
	kind      nodeKind
	bodies    bodyBlock
}

func newNode(kind nodeKind, bounds AABB) node {
	n := node{
		size:   bounds.Size(),
		bounds: bounds,
		kind:   kind,
	}
	for i := range n.children {
		n.children[i] = noChild
	}
	return n
}

// addBody appends a body to an external node and refreshes the aggregates
// from the full block. The block never exceeds the leaf threshold (except
// at the depth cap), so the re-summation stays cheap.
func (n *node) addBody(b Body) {
	n.bodies.push(b)
	n.bodyCount = n.bodies.len()
	n.totalMass = n.bodies.totalMass()
	n.centerOfMass = n.bodies.centerOfMass()
}

// setAggregates finalizes an internal node's subtree totals.
func (n *node) setAggregates(com mgl64.Vec3, mass float64, count int) {
	n.centerOfMass = com
	n.totalMass = mass
	n.bodyCount = count
}

// reset clears owned storage and links so the slot can be reused.
func (n *node) reset() {
	n.bodies.clear()
	for i := range n.children {
		n.children[i] = noChild
	}
	n.bodyCount = 0
	n.totalMass = 0
	n.centerOfMass = mgl64.Vec3{}
}
