package octree

import "github.com/go-gl/mathgl/mgl64"

// bodyBlock stores a leaf's bodies as parallel arrays: identity, position,
// and mass share one index space. Keeping the arrays contiguous lets the
// direct force sum in a leaf walk straight through memory.
type bodyBlock struct {
	ids       []ID
	positions []mgl64.Vec3
	masses    []float64
}

func (bl *bodyBlock) len() int {
	return len(bl.ids)
}

func (bl *bodyBlock) push(b Body) {
	bl.ids = append(bl.ids, b.ID)
	bl.positions = append(bl.positions, b.Position)
	bl.masses = append(bl.masses, b.Mass)
}

func (bl *bodyBlock) clear() {
	bl.ids = bl.ids[:0]
	bl.positions = bl.positions[:0]
	bl.masses = bl.masses[:0]
}

func (bl *bodyBlock) at(i int) Body {
	return Body{ID: bl.ids[i], Position: bl.positions[i], Mass: bl.masses[i]}
}

func (bl *bodyBlock) totalMass() float64 {
	var total float64
	for _, m := range bl.masses {
		total += m
	}
	return total
}

// centerOfMass returns the mass-weighted average position, or the zero
// vector when the block is empty or carries no mass.
func (bl *bodyBlock) centerOfMass() mgl64.Vec3 {
	total := bl.totalMass()
	if total <= 0 {
		return mgl64.Vec3{}
	}
	var weighted mgl64.Vec3
	for i, p := range bl.positions {
		weighted = weighted.Add(p.Mul(bl.masses[i]))
	}
	return weighted.Mul(1 / total)
}
