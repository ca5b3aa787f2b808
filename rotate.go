/*
Copyright (C) 2026 the ctu3d authors.
This file is part of ctu3d.

ctu3d is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ctu3d is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ctu3d.  If not, see <http://www.gnu.org/licenses/>.
*/

package ctu3d

import "math"

// Dir is a sweep direction. A 1-D sweep in direction d treats the sweep
// axis as "x" and the two transverse axes as "y","z" in a fixed cyclic
// permutation (spec.md §3): Dir1 -> (1,2,3), Dir2 -> (2,3,1), Dir3 ->
// (3,1,2). Design Notes §9 models the rotated sweep state as a struct with
// fields (Mx,My,Mz,By,Bz) and a small permutation table instead of
// per-direction code copies; cyc/invcyc are that table.
type Dir int

const (
	Dir1 Dir = iota
	Dir2
	Dir3
)

// cyc returns the (normal, transverse-a, transverse-b) axis indices (each
// in [0,3)) for the cyclic rotation used by direction d.
func (d Dir) cyc() (n, a, b int) {
	switch d {
	case Dir1:
		return 0, 1, 2
	case Dir2:
		return 1, 2, 0
	case Dir3:
		return 2, 0, 1
	default:
		panic("ctu3d: invalid Dir")
	}
}

// toIJK maps a (normal, transverse-a, transverse-b) position triple for
// direction d onto physical (k,j,i) grid indices, where axis 0 is x1(i),
// axis 1 is x2(j), and axis 2 is x3(k). This is the spatial counterpart of
// rotateState: rotateState permutes vector *components*, toIJK permutes
// loop *coordinates*, both using the same cyc() table.
func (d Dir) toIJK(normal, a, b int) (k, j, i int) {
	nAxis, aAxis, bAxis := d.cyc()
	var c [3]int
	c[nAxis] = normal
	c[aAxis] = a
	c[bAxis] = b
	return c[2], c[1], c[0]
}

// axisBounds returns the inclusive interior index bounds along physical
// axis 0,1,2 (i,j,k respectively).
func (dom Domain) axisBounds(axis int) (lo, hi int) {
	switch axis {
	case 0:
		return dom.Is, dom.Ie
	case 1:
		return dom.Js, dom.Je
	default:
		return dom.Ks, dom.Ke
	}
}

// sweepBounds returns, for direction d, the interior bounds along the
// normal axis and the two transverse axes (a, b), in that rotated order.
func (dom Domain) sweepBounds(d Dir) (nLo, nHi, aLo, aHi, bLo, bHi int) {
	nAxis, aAxis, bAxis := d.cyc()
	nLo, nHi = dom.axisBounds(nAxis)
	aLo, aHi = dom.axisBounds(aAxis)
	bLo, bHi = dom.axisBounds(bAxis)
	return
}

// String names the direction the way the spec's GLOSSARY and §3 do.
func (d Dir) String() string {
	switch d {
	case Dir1:
		return "x1"
	case Dir2:
		return "x2"
	case Dir3:
		return "x3"
	default:
		return "invalid"
	}
}

// Cons1D is the rotated conserved state of Design Notes §9: (d, Mx, My,
// Mz, E, By, Bz, s[]), where (x,y,z) is the local rotated frame for the
// active sweep direction. Bx (the sweep-normal face field) is carried
// alongside a Cons1D by the caller, not inside it, since it lives on the
// face rather than being reconstructed.
type Cons1D struct {
	D          float64
	Mx, My, Mz float64
	E          float64
	By, Bz     float64
	S          []float64
}

// Prim1D is the rotated primitive counterpart of Cons1D, as produced by
// the external Cons1D_to_Prim1D conversion and consumed by lr_states.
type Prim1D struct {
	D          float64
	Vx, Vy, Vz float64
	P          float64
	By, Bz     float64
	S          []float64
}

// rotateState extracts the rotated 1-D conserved vector for direction d
// from a grid-frame State. The sweep-normal B component is not part of
// Cons1D; it is read by the caller from the appropriate face-B array.
func rotateState(s State, d Dir) Cons1D {
	n, a, b := d.cyc()
	m := [3]float64{s.M1, s.M2, s.M3}
	bc := [3]float64{s.B1c, s.B2c, s.B3c}
	return Cons1D{
		D:  s.D,
		Mx: m[n], My: m[a], Mz: m[b],
		E:  s.E,
		By: bc[a], Bz: bc[b],
		S: s.S,
	}
}

// unrotateMomentum maps a rotated (Mx,My,Mz) triple for direction d back
// onto the grid-frame (M1,M2,M3) axes.
func unrotateMomentum(mx, my, mz float64, d Dir) (m1, m2, m3 float64) {
	n, a, b := d.cyc()
	var m [3]float64
	m[n], m[a], m[b] = mx, my, mz
	return m[0], m[1], m[2]
}

// unrotateTransverseB maps a rotated (By,Bz) pair for direction d back
// onto the two grid-frame transverse B-field axes, leaving the normal
// axis's slot as reported separately.
func unrotateTransverseB(by, bz float64, d Dir) (b1, b2, b3 float64) {
	_, a, b := d.cyc()
	var bc [3]float64
	bc[a], bc[b] = by, bz
	return bc[0], bc[1], bc[2]
}

// minMod is the two-argument min-mod limiter of spec.md §4.4:
//
//	minMod(x,y) := x if xy>0 and |x|<=|y|; y if xy>0 and |y|<|x|; 0 otherwise.
func minMod(x, y float64) float64 {
	if x*y <= 0 {
		return 0
	}
	if math.Abs(x) <= math.Abs(y) {
		return x
	}
	return y
}
