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

import "gonum.org/v1/gonum/floats"

// Domain describes the rectangular block of interior indices and uniform
// spacing owned by the grid container of spec.md §3. Is/Ie etc. are
// inclusive interior bounds in the padded array's index space: valid cell
// indices run [0 .. Is-1] (ghost), [Is .. Ie] (interior), [Ie+1 ..]
// (ghost).
type Domain struct {
	Is, Ie int
	Js, Je int
	Ks, Ke int
	NGhost int
	Dx1, Dx2, Dx3 float64
	Dt            float64
}

// dx returns the grid spacing along direction d.
func (dom Domain) dx(d Dir) float64 {
	switch d {
	case Dir1:
		return dom.Dx1
	case Dir2:
		return dom.Dx2
	default:
		return dom.Dx3
	}
}

// nx1/nx2/nx3 are the interior extents, i.e. what integrate_init_3d takes.
func (dom Domain) nx1() int { return dom.Ie - dom.Is + 1 }
func (dom Domain) nx2() int { return dom.Je - dom.Js + 1 }
func (dom Domain) nx3() int { return dom.Ke - dom.Ks + 1 }

// Grid is the cell-centered/face-centered state container of spec.md §3.
// It is owned by the caller: the caller allocates it, fills ghost cells
// via its own boundary-exchange machinery, and hands it to Step. The
// integrator mutates U's components and B1i/B2i/B3i, and, when
// Cfg.SelfGravity is set, MassFlux1/2/3; every other field is read-only
// to it.
type Grid struct {
	Dom Domain
	Cfg Config

	// Cell-centered conserved state, each shaped (N3,N2,N1) where
	// N_d = nx_d + 2*NGhost.
	D, M1, M2, M3, E *Array3
	B1c, B2c, B3c    *Array3
	S                []*Array3 // len == Cfg.NScalars

	// Face-centered magnetic field. B1i is staggered by one in the i
	// (x1) direction: B1i[k][j][i] is the left x1-face of cell (i,j,k).
	// B2i/B3i are staggered analogously in j/k.
	B1i, B2i, B3i *Array3

	// Full-step mass fluxes written back by phase 9 when Cfg.SelfGravity is
	// set, staggered the same way as B1i/B2i/B3i. spec.md §4.7: "The x_d
	// full-step mass fluxes must be written back to the grid so the caller
	// can apply a second-order flux correction next step."
	MassFlux1, MassFlux2, MassFlux3 *Array3
}

// NewGrid allocates a Grid for the given domain and configuration. All
// fields are zeroed; the caller is responsible for seeding initial
// conditions before the first Step.
func NewGrid(dom Domain, cfg Config) (*Grid, error) {
	if dom.nx1() <= 0 || dom.nx2() <= 0 || dom.nx3() <= 0 {
		return nil, errBadExtents
	}
	if dom.NGhost < 4 {
		return nil, errGhostTooNarrow
	}
	n1, n2, n3 := dom.nx1()+2*dom.NGhost, dom.nx2()+2*dom.NGhost, dom.nx3()+2*dom.NGhost
	g := &Grid{Dom: dom, Cfg: cfg}
	g.D = NewArray3(n3, n2, n1)
	g.M1 = NewArray3(n3, n2, n1)
	g.M2 = NewArray3(n3, n2, n1)
	g.M3 = NewArray3(n3, n2, n1)
	if cfg.hasEnergy() {
		g.E = NewArray3(n3, n2, n1)
	}
	if cfg.MHD {
		g.B1c = NewArray3(n3, n2, n1)
		g.B2c = NewArray3(n3, n2, n1)
		g.B3c = NewArray3(n3, n2, n1)
		g.B1i = NewArray3(n3, n2, n1+1)
		g.B2i = NewArray3(n3, n2+1, n1)
		g.B3i = NewArray3(n3+1, n2, n1)
	}
	if cfg.NScalars > 0 {
		g.S = make([]*Array3, cfg.NScalars)
		for i := range g.S {
			g.S[i] = NewArray3(n3, n2, n1)
		}
	}
	if cfg.SelfGravity {
		g.MassFlux1 = NewArray3(n3, n2, n1+1)
		g.MassFlux2 = NewArray3(n3, n2+1, n1)
		g.MassFlux3 = NewArray3(n3+1, n2, n1)
	}
	return g, nil
}

// State reads the cell-centered conserved state at (k,j,i).
func (g *Grid) State(k, j, i int) State {
	s := State{
		D:  g.D.At(k, j, i),
		M1: g.M1.At(k, j, i),
		M2: g.M2.At(k, j, i),
		M3: g.M3.At(k, j, i),
	}
	if g.Cfg.hasEnergy() {
		s.E = g.E.At(k, j, i)
	}
	if g.Cfg.MHD {
		s.B1c, s.B2c, s.B3c = g.B1c.At(k, j, i), g.B2c.At(k, j, i), g.B3c.At(k, j, i)
	}
	if n := len(g.S); n > 0 {
		s.S = make([]float64, n)
		for si, arr := range g.S {
			s.S[si] = arr.At(k, j, i)
		}
	}
	return s
}

// SetState writes the cell-centered conserved state at (k,j,i). This is
// the only way phase 9 (the full-step cell update) is permitted to mutate
// U, per spec.md §3's "mutated by phase 9 only" invariant.
func (g *Grid) SetState(k, j, i int, s State) {
	g.D.Set(k, j, i, s.D)
	g.M1.Set(k, j, i, s.M1)
	g.M2.Set(k, j, i, s.M2)
	g.M3.Set(k, j, i, s.M3)
	if g.Cfg.hasEnergy() {
		g.E.Set(k, j, i, s.E)
	}
	if g.Cfg.MHD {
		g.B1c.Set(k, j, i, s.B1c)
		g.B2c.Set(k, j, i, s.B2c)
		g.B3c.Set(k, j, i, s.B3c)
	}
	for si, v := range s.S {
		g.S[si].Set(k, j, i, v)
	}
}

// faceNormalB returns the sweep-normal face field array for direction d.
func (g *Grid) faceNormalB(d Dir) *Array3 {
	switch d {
	case Dir1:
		return g.B1i
	case Dir2:
		return g.B2i
	default:
		return g.B3i
	}
}

// DivB computes the discrete divergence of the face-centered magnetic
// field at interior cell (k,j,i), per spec.md §3's invariant:
//
//	(B1i[k][j][i+1]-B1i[k][j][i])/dx1 + ... == 0 to round-off.
func (g *Grid) DivB(k, j, i int) float64 {
	if !g.Cfg.MHD {
		return 0
	}
	dom := g.Dom
	return (g.B1i.At(k, j, i+1)-g.B1i.At(k, j, i))/dom.Dx1 +
		(g.B2i.At(k, j+1, i)-g.B2i.At(k, j, i))/dom.Dx2 +
		(g.B3i.At(k+1, j, i)-g.B3i.At(k, j, i))/dom.Dx3
}

// MaxDivB returns the largest |DivB| over the interior cells, the
// diagnostic used to test property 1 of spec.md §8. It packs the interior
// DivB field into an Array3 and reduces it with MaxAbs, the same
// divergence-diagnostic "phase 0" reduction DivBNorms uses floats.Norm for.
func (g *Grid) MaxDivB() float64 {
	dom := g.Dom
	divB := NewArray3(dom.nx3(), dom.nx2(), dom.nx1())
	for k := dom.Ks; k <= dom.Ke; k++ {
		for j := dom.Js; j <= dom.Je; j++ {
			for i := dom.Is; i <= dom.Ie; i++ {
				divB.Set(k-dom.Ks, j-dom.Js, i-dom.Is, g.DivB(k, j, i))
			}
		}
	}
	return divB.MaxAbs()
}

// DivBNorms returns the L1 and L2 norms of the interior DivB field, each
// divided by the number of interior cells, as companions to MaxDivB's
// L-infinity norm.
func (g *Grid) DivBNorms() (l1, l2 float64) {
	dom := g.Dom
	vals := make([]float64, 0, dom.nx1()*dom.nx2()*dom.nx3())
	for k := dom.Ks; k <= dom.Ke; k++ {
		for j := dom.Js; j <= dom.Je; j++ {
			for i := dom.Is; i <= dom.Ie; i++ {
				vals = append(vals, g.DivB(k, j, i))
			}
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}
	return floats.Norm(vals, 1) / float64(len(vals)), floats.Norm(vals, 2) / float64(len(vals))
}
