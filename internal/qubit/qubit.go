// Package qubit is a minimal single-qubit statevector simulator. The park
// game uses it to derive terrain tiles from rotation circuits; it supports
// exactly the gates that game needs.
package qubit

import (
	"math"
	"math/cmplx"
)

// State is a single-qubit statevector: amplitudes for |0> and |1>.
type State [2]complex128

// Zero returns the |0> state.
func Zero() State {
	return State{1, 0}
}

// Prob0 returns the probability of measuring |0>.
func (s State) Prob0() float64 {
	re, im := real(s[0]), imag(s[0])
	return re*re + im*im
}

// Prob1 returns the probability of measuring |1>.
func (s State) Prob1() float64 {
	re, im := real(s[1]), imag(s[1])
	return re*re + im*im
}

type gate [2][2]complex128

// Circuit is an ordered list of single-qubit gates.
type Circuit struct {
	gates []gate
}

// NewCircuit creates an empty circuit.
func NewCircuit() *Circuit {
	return &Circuit{}
}

// RX appends a rotation around the X axis by theta radians.
func (c *Circuit) RX(theta float64) *Circuit {
	cos := complex(math.Cos(theta/2), 0)
	isin := complex(0, -math.Sin(theta/2))
	c.gates = append(c.gates, gate{
		{cos, isin},
		{isin, cos},
	})
	return c
}

// RY appends a rotation around the Y axis by theta radians.
func (c *Circuit) RY(theta float64) *Circuit {
	cos := complex(math.Cos(theta/2), 0)
	sin := complex(math.Sin(theta/2), 0)
	c.gates = append(c.gates, gate{
		{cos, -sin},
		{sin, cos},
	})
	return c
}

// RZ appends a rotation around the Z axis by theta radians.
func (c *Circuit) RZ(theta float64) *Circuit {
	c.gates = append(c.gates, gate{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	})
	return c
}

// H appends a Hadamard gate.
func (c *Circuit) H() *Circuit {
	h := complex(1/math.Sqrt2, 0)
	c.gates = append(c.gates, gate{
		{h, h},
		{h, -h},
	})
	return c
}

// Simulate runs the circuit on |0> and returns the final statevector.
func (c *Circuit) Simulate() State {
	s := Zero()
	for _, g := range c.gates {
		s = State{
			g[0][0]*s[0] + g[0][1]*s[1],
			g[1][0]*s[0] + g[1][1]*s[1],
		}
	}
	return s
}
