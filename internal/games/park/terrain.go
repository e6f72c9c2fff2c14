package park

import (
	"math"
	"math/rand"

	"github.com/qisge/qisge/internal/qubit"
)

// terrain maps world coordinates to tile image ids. Each tile runs a small
// rotation circuit whose angles mix the coordinates with six seed weights;
// the |0> probability of the resulting state picks the tile. Equal seeds give
// equal landscapes.
type terrain struct {
	seed  [6]float64
	types int
}

func newTerrain(rng *rand.Rand, types int) terrain {
	t := terrain{types: types}
	for i := range t.seed {
		t.seed[i] = 0.5 * rng.Float64()
	}
	return t
}

func (t terrain) imageID(x, y int) int {
	fx, fy := float64(x), float64(y)
	d := math.Sqrt(fx*fx + fy*fy)

	var f [6]float64
	for i, s := range t.seed {
		f[i] = s * math.Cos(s*d*math.Pi/100)
	}

	tx := (f[0]*fx + f[1]*fy) * math.Pi / 7
	ty := (f[2]*fx - f[3]*fy) * math.Pi / 7
	tz := (f[4]*(fx+fy) + f[5]*(fx-fy)) * math.Pi / 7

	qc := qubit.NewCircuit().RX(tx).RZ(tz).RY(ty)
	if x == y {
		qc.H()
	}

	p := qc.Simulate().Prob0()
	return int(math.Round(p * float64(t.types-1)))
}
