package octree

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box with Min <= Max componentwise.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB returns the box spanning min to max.
func NewAABB(min, max mgl64.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Octants splits the box into its 8 children at the center. Children cover
// the parent with no gaps and overlap only on shared faces, ordered by
// octant index: bit 0 set = high X half, bit 1 = high Y, bit 2 = high Z.
func (b AABB) Octants() [8]AABB {
	c := b.Center()
	var out [8]AABB
	for i := range out {
		min, max := b.Min, c
		if i&1 != 0 {
			min[0], max[0] = c[0], b.Max[0]
		}
		if i&2 != 0 {
			min[1], max[1] = c[1], b.Max[1]
		}
		if i&4 != 0 {
			min[2], max[2] = c[2], b.Max[2]
		}
		out[i] = AABB{Min: min, Max: max}
	}
	return out
}

// octantIndex maps a position to the octant of a box centered at center.
// A coordinate exactly on the center plane goes to the high half, so every
// position maps to exactly one octant, deterministically.
func octantIndex(p, center mgl64.Vec3) int {
	idx := 0
	if p[0] >= center[0] {
		idx |= 1
	}
	if p[1] >= center[1] {
		idx |= 2
	}
	if p[2] >= center[2] {
		idx |= 4
	}
	return idx
}
