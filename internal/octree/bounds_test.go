package octree

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBCenterAndSize(t *testing.T) {
	b := NewAABB(mgl64.Vec3{-2, -4, -6}, mgl64.Vec3{2, 4, 6})
	if got := b.Center(); got != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("center = %v, want origin", got)
	}
	if got := b.Size(); got != (mgl64.Vec3{4, 8, 12}) {
		t.Errorf("size = %v, want {4 8 12}", got)
	}
}

func TestOctantsPartitionParent(t *testing.T) {
	parent := NewAABB(mgl64.Vec3{-1, -2, -3}, mgl64.Vec3{5, 6, 7})
	center := parent.Center()
	octants := parent.Octants()

	for i, oct := range octants {
		// Each octant spans exactly half the parent on every axis.
		for axis := 0; axis < 3; axis++ {
			wantExtent := parent.Size()[axis] / 2
			if got := oct.Size()[axis]; got != wantExtent {
				t.Errorf("octant %d axis %d extent = %v, want %v", i, axis, got, wantExtent)
			}
		}
		// The low corner is the parent min or the center per the index bits.
		for axis, bit := range []int{1, 2, 4} {
			wantMin := parent.Min[axis]
			if i&bit != 0 {
				wantMin = center[axis]
			}
			if oct.Min[axis] != wantMin {
				t.Errorf("octant %d axis %d min = %v, want %v", i, axis, oct.Min[axis], wantMin)
			}
		}
	}
}

func TestOctantIndexMatchesOctantBounds(t *testing.T) {
	parent := NewAABB(mgl64.Vec3{-10, -10, -10}, mgl64.Vec3{10, 10, 10})
	center := parent.Center()
	octants := parent.Octants()

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		p := mgl64.Vec3{
			rng.Float64()*20 - 10,
			rng.Float64()*20 - 10,
			rng.Float64()*20 - 10,
		}
		oct := octants[octantIndex(p, center)]
		for axis := 0; axis < 3; axis++ {
			if p[axis] < oct.Min[axis] || p[axis] > oct.Max[axis] {
				t.Fatalf("point %v assigned to octant %+v that does not contain it", p, oct)
			}
		}
	}
}

func TestOctantIndexBoundaryRule(t *testing.T) {
	center := mgl64.Vec3{1, 2, 3}
	cases := []struct {
		p    mgl64.Vec3
		want int
	}{
		{mgl64.Vec3{0, 0, 0}, 0},
		{mgl64.Vec3{1, 0, 0}, 1}, // on the X plane: high half
		{mgl64.Vec3{0, 2, 0}, 2},
		{mgl64.Vec3{0, 0, 3}, 4},
		{mgl64.Vec3{1, 2, 3}, 7},
		{mgl64.Vec3{2, 3, 4}, 7},
	}
	for _, tc := range cases {
		if got := octantIndex(tc.p, center); got != tc.want {
			t.Errorf("octantIndex(%v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}
