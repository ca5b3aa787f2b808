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

// cellEMF fills emf1cc/emf2cc/emf3cc from grid-frame cell-centered
// velocity and magnetic field components, per spec.md §4.2's definition
// of the cell-centered EMF as the ideal-MHD electric field E = -v x B,
// the same sign the face-flux EMFs carry in emf.go (x1Flux.By = -E3):
//
//	emf1cc = v3*B2c - v2*B3c
//	emf2cc = v1*B3c - v3*B1c
//	emf3cc = v2*B1c - v1*B2c
func (it *Integrator) cellEMF(v1, v2, v3, b1, b2, b3 float64) (e1, e2, e3 float64) {
	return v3*b2 - v2*b3, v1*b3 - v3*b1, v2*b1 - v1*b2
}

// computeCellEMF fills it.emf1cc/2cc/3cc from the current grid state g,
// used before the first corner-EMF pass (phase 2, operating on the
// time-n state).
func (it *Integrator) computeCellEMF(g *Grid) {
	if !it.cfg.MHD {
		return
	}
	dom := it.dom
	ng := dom.NGhost
	for k := dom.Ks - ng; k <= dom.Ke+ng; k++ {
		for j := dom.Js - ng; j <= dom.Je+ng; j++ {
			for i := dom.Is - ng; i <= dom.Ie+ng; i++ {
				d := g.D.At(k, j, i)
				v1, v2, v3 := g.M1.At(k, j, i)/d, g.M2.At(k, j, i)/d, g.M3.At(k, j, i)/d
				b1, b2, b3 := g.B1c.At(k, j, i), g.B2c.At(k, j, i), g.B3c.At(k, j, i)
				e1, e2, e3 := it.cellEMF(v1, v2, v3, b1, b2, b3)
				it.emf1cc.Set(k, j, i, e1)
				it.emf2cc.Set(k, j, i, e2)
				it.emf3cc.Set(k, j, i, e3)
			}
		}
	}
}

// fluxDiv returns the divergence of a flux triple given the low/high
// face values along each axis for cell (k,j,i).
func (it *Integrator) fluxDiv(k, j, i int, f1lo, f1hi, f2lo, f2hi, f3lo, f3hi float64) float64 {
	dom := it.dom
	return (f1hi-f1lo)/dom.Dx1 + (f2hi-f2lo)/dom.Dx2 + (f3hi-f3lo)/dom.Dx3
}

// halfStepState runs phase 5 (spec.md §4.5): it advances density (and,
// if the fluid carries energy, pressure) a half time step using the
// divergence of the first-pass fluxes, then recomputes the cell-centered
// EMFs at the half step from the half-step momentum and the half-step
// face-centered B produced by phase 3 (it.bHalf). The half-step momentum
// itself is not retained; spec.md §4.5 uses it only to seed emf*cc for
// the corner-EMF pass that follows in phase 7/2.
func (it *Integrator) halfStepState(g *Grid) {
	if it.dhalf == nil {
		return
	}
	dom := it.dom
	hdt := 0.5 * dom.Dt

	for k := dom.Ks; k <= dom.Ke; k++ {
		for j := dom.Js; j <= dom.Je; j++ {
			for i := dom.Is; i <= dom.Ie; i++ {
				d1lo, d1hi := it.flux[Dir1][k][j][i].D, it.flux[Dir1][k][j][i+1].D
				d2lo, d2hi := it.flux[Dir2][k][j][i].D, it.flux[Dir2][k][j+1][i].D
				d3lo, d3hi := it.flux[Dir3][k][j][i].D, it.flux[Dir3][k+1][j][i].D
				dHalf := g.D.At(k, j, i) - hdt*it.fluxDiv(k, j, i, d1lo, d1hi, d2lo, d2hi, d3lo, d3hi)
				it.dhalf.Set(k, j, i, dHalf)

				if !it.cfg.MHD && it.phalf == nil {
					continue
				}

				m1lo, m1hi := it.unrotatedMomentumFlux(Dir1, k, j, i)
				m2lo, m2hi := it.unrotatedMomentumFlux(Dir2, k, j, i)
				m3lo, m3hi := it.unrotatedMomentumFlux(Dir3, k, j, i)
				m1h := g.M1.At(k, j, i) - hdt*it.fluxDiv(k, j, i, m1lo[0], m1hi[0], m2lo[0], m2hi[0], m3lo[0], m3hi[0])
				m2h := g.M2.At(k, j, i) - hdt*it.fluxDiv(k, j, i, m1lo[1], m1hi[1], m2lo[1], m2hi[1], m3lo[1], m3hi[1])
				m3h := g.M3.At(k, j, i) - hdt*it.fluxDiv(k, j, i, m1lo[2], m1hi[2], m2lo[2], m2hi[2], m3lo[2], m3hi[2])

				var b1h, b2h, b3h float64
				if it.cfg.MHD {
					b1h = 0.5 * (it.bHalf[0].At(k, j, i) + it.bHalf[0].At(k, j, i+1))
					b2h = 0.5 * (it.bHalf[1].At(k, j, i) + it.bHalf[1].At(k, j+1, i))
					b3h = 0.5 * (it.bHalf[2].At(k, j, i) + it.bHalf[2].At(k+1, j, i))

					e1, e2, e3 := it.cellEMF(m1h/dHalf, m2h/dHalf, m3h/dHalf, b1h, b2h, b3h)
					it.emf1cc.Set(k, j, i, e1)
					it.emf2cc.Set(k, j, i, e2)
					it.emf3cc.Set(k, j, i, e3)
				}

				if it.phalf != nil {
					elo, ehi := it.flux[Dir1][k][j][i].E, it.flux[Dir1][k][j][i+1].E
					elo2, ehi2 := it.flux[Dir2][k][j][i].E, it.flux[Dir2][k][j+1][i].E
					elo3, ehi3 := it.flux[Dir3][k][j][i].E, it.flux[Dir3][k+1][j][i].E
					eHalf := g.E.At(k, j, i) - hdt*it.fluxDiv(k, j, i, elo, ehi, elo2, ehi2, elo3, ehi3)
					ke := 0.5 * (m1h*m1h + m2h*m2h + m3h*m3h) / dHalf
					var magP float64
					if it.cfg.MHD {
						magP = 0.5 * (b1h*b1h + b2h*b2h + b3h*b3h)
					}
					p := (it.cfg.Gamma - 1) * (eHalf - ke - magP)
					it.phalf.Set(k, j, i, p)
				}
			}
		}
	}
}

// unrotatedMomentumFlux returns, for the face flux stored for sweep
// direction d at cell (k,j,i), the grid-frame (M1,M2,M3) momentum-flux
// triple through the low face and through the high face of the cell
// along d, so the caller can assemble each grid-frame momentum's
// divergence from all three sweep directions' contributions.
func (it *Integrator) unrotatedMomentumFlux(d Dir, k, j, i int) (lo, hi [3]float64) {
	var lk, lj, li, hk, hj, hi2 int
	switch d {
	case Dir1:
		lk, lj, li = k, j, i
		hk, hj, hi2 = k, j, i+1
	case Dir2:
		lk, lj, li = k, j, i
		hk, hj, hi2 = k, j+1, i
	default:
		lk, lj, li = k, j, i
		hk, hj, hi2 = k + 1, j, i
	}
	fl := it.flux[d][lk][lj][li]
	fh := it.flux[d][hk][hj][hi2]
	l1, l2, l3 := unrotateMomentum(fl.Mx, fl.My, fl.Mz, d)
	h1, h2, h3 := unrotateMomentum(fh.Mx, fh.My, fh.Mz, d)
	return [3]float64{l1, l2, l3}, [3]float64{h1, h2, h3}
}
