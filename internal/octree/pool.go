package octree

// nodePool owns all node storage. Parent-to-child links are indices into
// the pool rather than pointers, and freed slots are recycled through a
// free list, so a rebuild-every-step workload stops touching the allocator
// once the pool is warm.
type nodePool struct {
	nodes []node
	free  []int32
}

// allocate stores n and returns its index, reusing a freed slot when one is
// available (pop order, no ordering guarantee) and appending otherwise.
func (p *nodePool) allocate(n node) int32 {
	if k := len(p.free); k > 0 {
		idx := p.free[k-1]
		p.free = p.free[:k-1]
		p.nodes[idx] = n
		return idx
	}
	p.nodes = append(p.nodes, n)
	return int32(len(p.nodes) - 1)
}

// get returns the node at idx, or nil when idx is out of range. Indices are
// only valid within the tree generation that produced them.
func (p *nodePool) get(idx int32) *node {
	if idx < 0 || int(idx) >= len(p.nodes) {
		return nil
	}
	return &p.nodes[idx]
}

// deallocate clears the node's owned storage and parks the slot on the free
// list. Children are not freed; the caller walks the subtree itself.
func (p *nodePool) deallocate(idx int32) {
	if idx < 0 || int(idx) >= len(p.nodes) {
		return
	}
	p.nodes[idx].reset()
	p.free = append(p.free, idx)
}

// clear empties the pool while keeping its backing storage reserved.
func (p *nodePool) clear() {
	p.nodes = p.nodes[:0]
	p.free = p.free[:0]
}

// reserve grows the backing storage to hold at least capacity nodes.
// Existing nodes and indices survive the move.
func (p *nodePool) reserve(capacity int) {
	if cap(p.nodes) >= capacity {
		return
	}
	grown := make([]node, len(p.nodes), capacity)
	copy(grown, p.nodes)
	p.nodes = grown
}

func (p *nodePool) capacity() int {
	return cap(p.nodes)
}

// stats reports slots in use (including freed-but-reusable) and the free
// list length.
func (p *nodePool) stats() (allocated, free int) {
	return len(p.nodes), len(p.free)
}
