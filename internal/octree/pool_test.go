package octree

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testBounds() AABB {
	return NewAABB(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
}

func TestPoolAllocateAndGet(t *testing.T) {
	var p nodePool

	a := p.allocate(newNode(internalNode, testBounds()))
	b := p.allocate(newNode(externalNode, testBounds()))
	if a == b {
		t.Fatalf("distinct allocations share index %d", a)
	}
	if n := p.get(a); n == nil || n.kind != internalNode {
		t.Errorf("get(%d) = %v, want the internal node", a, n)
	}
	if n := p.get(b); n == nil || n.kind != externalNode {
		t.Errorf("get(%d) = %v, want the external node", b, n)
	}
}

func TestPoolGetOutOfRange(t *testing.T) {
	var p nodePool
	p.allocate(newNode(internalNode, testBounds()))

	if n := p.get(-1); n != nil {
		t.Errorf("get(-1) = %v, want nil", n)
	}
	if n := p.get(99); n != nil {
		t.Errorf("get(99) = %v, want nil", n)
	}
}

func TestPoolDeallocateReusesSlot(t *testing.T) {
	var p nodePool

	idx := p.allocate(newNode(externalNode, testBounds()))
	n := p.get(idx)
	n.addBody(Body{ID: 1, Mass: 5})

	p.deallocate(idx)
	if _, free := p.stats(); free != 1 {
		t.Fatalf("free list length = %d, want 1", free)
	}

	// The freed slot comes back first, cleared.
	again := p.allocate(newNode(internalNode, testBounds()))
	if again != idx {
		t.Errorf("allocate after deallocate returned %d, want reused slot %d", again, idx)
	}
	if got := p.get(again); got.bodies.len() != 0 {
		t.Errorf("reused slot still holds %d bodies", got.bodies.len())
	}
	if allocated, free := p.stats(); allocated != 1 || free != 0 {
		t.Errorf("stats = (%d, %d), want (1, 0)", allocated, free)
	}
}

func TestPoolClearKeepsCapacity(t *testing.T) {
	var p nodePool
	p.reserve(32)
	for i := 0; i < 10; i++ {
		p.allocate(newNode(internalNode, testBounds()))
	}

	before := p.capacity()
	p.clear()
	if allocated, free := p.stats(); allocated != 0 || free != 0 {
		t.Errorf("stats after clear = (%d, %d), want (0, 0)", allocated, free)
	}
	if p.capacity() != before {
		t.Errorf("capacity after clear = %d, want %d", p.capacity(), before)
	}
}

func TestPoolReserveKeepsNodes(t *testing.T) {
	var p nodePool
	idx := p.allocate(newNode(externalNode, testBounds()))
	p.get(idx).addBody(Body{ID: 42, Mass: 1})

	p.reserve(128)
	if p.capacity() < 128 {
		t.Fatalf("capacity = %d, want at least 128", p.capacity())
	}
	n := p.get(idx)
	if n == nil || n.bodies.len() != 1 || n.bodies.ids[0] != 42 {
		t.Errorf("node contents lost across reserve")
	}
}
