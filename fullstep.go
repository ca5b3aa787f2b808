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

// fullStepUpdate runs phase 9 (spec.md §4.5/§4.7/§4.9): the full-step
// cell update. It is the only phase permitted to call g.SetState. By the
// time this runs, phase 8 (ctFullStep) has already advanced the grid's
// face-centered B in place, so the final cell-centered B average below
// reads the new field.
func (it *Integrator) fullStepUpdate(g *Grid) {
	dom := it.dom
	dt := dom.Dt

	for k := dom.Ks; k <= dom.Ke; k++ {
		for j := dom.Js; j <= dom.Je; j++ {
			for i := dom.Is; i <= dom.Ie; i++ {
				s := g.State(k, j, i).clone()

				d1lo, d1hi := it.flux[Dir1][k][j][i], it.flux[Dir1][k][j][i+1]
				d2lo, d2hi := it.flux[Dir2][k][j][i], it.flux[Dir2][k][j+1][i]
				d3lo, d3hi := it.flux[Dir3][k][j][i], it.flux[Dir3][k+1][j][i]

				s.D = g.State(k, j, i).D - dt*it.fluxDiv(k, j, i, d1lo.D, d1hi.D, d2lo.D, d2hi.D, d3lo.D, d3hi.D)

				m1lo, m1hi := it.unrotatedMomentumFlux(Dir1, k, j, i)
				m2lo, m2hi := it.unrotatedMomentumFlux(Dir2, k, j, i)
				m3lo, m3hi := it.unrotatedMomentumFlux(Dir3, k, j, i)
				s.M1 = g.State(k, j, i).M1 - dt*it.fluxDiv(k, j, i, m1lo[0], m1hi[0], m2lo[0], m2hi[0], m3lo[0], m3hi[0])
				s.M2 = g.State(k, j, i).M2 - dt*it.fluxDiv(k, j, i, m1lo[1], m1hi[1], m2lo[1], m2hi[1], m3lo[1], m3hi[1])
				s.M3 = g.State(k, j, i).M3 - dt*it.fluxDiv(k, j, i, m1lo[2], m1hi[2], m2lo[2], m2hi[2], m3lo[2], m3hi[2])

				if it.cfg.hasEnergy() {
					s.E = g.State(k, j, i).E - dt*it.fluxDiv(k, j, i, d1lo.E, d1hi.E, d2lo.E, d2hi.E, d3lo.E, d3hi.E)
				}
				for si := range s.S {
					s.S[si] = g.State(k, j, i).S[si] - dt*it.fluxDiv(k, j, i,
						d1lo.S[si], d1hi.S[si], d2lo.S[si], d2hi.S[si], d3lo.S[si], d3hi.S[si])
				}

				if it.col.Potential != nil {
					if it.cfg.SelfGravity {
						s = it.fullStepGravitySelfGravity(s, k, j, i)
					} else {
						s = it.fullStepGravity(s, k, j, i)
					}
				}
				if it.col.Cooling != nil && it.cfg.hasEnergy() {
					dHalf := s.D
					if it.dhalf != nil {
						dHalf = it.dhalf.At(k, j, i)
					}
					pHalf := 0.
					if it.phalf != nil {
						pHalf = it.phalf.At(k, j, i)
					}
					s.E -= dt * (it.cfg.Gamma - 1) * it.col.Cooling(dHalf, pHalf, dt)
				}
				if it.cfg.ShearingBox {
					s = it.fullStepShearBox(s, k, j, i)
				}

				if it.cfg.SelfGravity {
					g.MassFlux1.Set(k, j, i, d1lo.D)
					g.MassFlux2.Set(k, j, i, d2lo.D)
					g.MassFlux3.Set(k, j, i, d3lo.D)
					if i == dom.Ie {
						g.MassFlux1.Set(k, j, i+1, d1hi.D)
					}
					if j == dom.Je {
						g.MassFlux2.Set(k, j+1, i, d2hi.D)
					}
					if k == dom.Ke {
						g.MassFlux3.Set(k+1, j, i, d3hi.D)
					}
				}

				if it.cfg.MHD {
					s.B1c = 0.5 * (g.B1i.At(k, j, i) + g.B1i.At(k, j, i+1))
					s.B2c = 0.5 * (g.B2i.At(k, j, i) + g.B2i.At(k, j+1, i))
					s.B3c = 0.5 * (g.B3i.At(k, j, i) + g.B3i.At(k+1, j, i))
				}

				g.SetState(k, j, i, s)
			}
		}
	}
}

// fullStepGravity adds the full-step momentum and energy source of
// spec.md §4.7 using the half-step density (where available) for the
// momentum source, per the usual CTU "evaluate the source at the time
// level that makes the scheme time-centered" rule.
func (it *Integrator) fullStepGravity(s State, k, j, i int) State {
	dHalf := s.D
	if it.dhalf != nil {
		dHalf = it.dhalf.At(k, j, i)
	}
	grad := func(d Dir, lk, lj, li, hk, hj, hi int) float64 {
		return (it.cellPhi(hk, hj, hi) - it.cellPhi(lk, lj, li)) / (2 * it.dom.dx(d))
	}
	g1 := grad(Dir1, k, j, i-1, k, j, i+1)
	g2 := grad(Dir2, k, j-1, i, k, j+1, i)
	g3 := grad(Dir3, k-1, j, i, k+1, j, i)

	dM1 := -dHalf * g1 * it.dom.Dt
	dM2 := -dHalf * g2 * it.dom.Dt
	dM3 := -dHalf * g3 * it.dom.Dt

	if it.cfg.hasEnergy() {
		v1, v2, v3 := s.M1/s.D, s.M2/s.D, s.M3/s.D
		s.E += 0.5 * (dM1*v1 + dM2*v2 + dM3*v3)
	}
	s.M1 += dM1
	s.M2 += dM2
	s.M3 += dM3
	return s
}

// jeansStressTensor builds the symmetric Jeans-swindle self-gravity stress
// tensor of spec.md §4.7,
//
//	T_ij = (1/(4*pi*G))*(g_i*g_j - 0.5*delta_ij*|g|^2) + rhoBar*phi*delta_ij
//
// from the gravitational acceleration vector g, Config.FourPiG, a reference
// density rhoBar and the potential phi at the point g/phi were evaluated.
func jeansStressTensor(g [3]float64, fourPiG, rhoBar, phi float64) [3][3]float64 {
	g2 := g[0]*g[0] + g[1]*g[1] + g[2]*g[2]
	var t [3][3]float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			var delta float64
			if a == b {
				delta = 1
			}
			t[a][b] = (g[a]*g[b]-0.5*delta*g2)/fourPiG + rhoBar*phi*delta
		}
	}
	return t
}

// fullStepGravitySelfGravity adds the full-step self-gravity momentum and
// energy source of spec.md §4.7 in momentum-flux form: the divergence of
// the Jeans-swindle stress tensor T_ij across the two faces bounding cell
// (k,j,i) along each axis, using the half-step density as the stress
// tensor's reference density. The energy term uses the face-averaged
// potential spec.md calls for, weighted by the second-pass mass flux
// through each face, the same it.flux values the caller (fullStepUpdate)
// uses for the flux-divergence update, read via transverseFluxPair.
func (it *Integrator) fullStepGravitySelfGravity(s State, k, j, i int) State {
	dHalf := s.D
	if it.dhalf != nil {
		dHalf = it.dhalf.At(k, j, i)
	}
	fourPiG := it.cfg.FourPiG

	axes := [3]Dir{Dir1, Dir2, Dir3}
	loNeighbor := [3][3]int{{k, j, i - 1}, {k, j - 1, i}, {k - 1, j, i}}

	var dM [3]float64
	var dE float64
	for n, axis := range axes {
		lk, lj, li := loNeighbor[n][0], loNeighbor[n][1], loNeighbor[n][2]
		gLo, phiLo := it.faceGravAccel(axis, lk, lj, li)
		gHi, phiHi := it.faceGravAccel(axis, k, j, i)

		tLo := jeansStressTensor(gLo, fourPiG, dHalf, phiLo)
		tHi := jeansStressTensor(gHi, fourPiG, dHalf, phiHi)

		dtdx := it.dom.Dt / it.dom.dx(axis)
		for m := 0; m < 3; m++ {
			dM[m] -= dtdx * (tHi[m][n] - tLo[m][n])
		}

		flo, fhi := it.transverseFluxPair(axis, k, j, i)
		dE -= dtdx * (fhi.D*phiHi - flo.D*phiLo)
	}

	if it.cfg.hasEnergy() {
		s.E += dE
	}
	s.M1 += dM[0]
	s.M2 += dM[1]
	s.M3 += dM[2]
	return s
}

// fullStepShearBox applies the Crank-Nicholson shearing-box update of
// spec.md §4.7 to the (M1, M2) pair of cell (k,j,i).
func (it *Integrator) fullStepShearBox(s State, k, j, i int) State {
	x1, _, _ := it.col.CellPos(i, j, k)
	m1New, m2New := it.crankNicholsonShearBox(s.M1, s.M2, s.D, x1)
	s.M1, s.M2 = m1New, m2New
	return s
}
