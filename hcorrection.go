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

// This file implements phase 6 (spec.md §4.6): the Sanders-Morano-Druguet
// multidimensional entropy fix. hCorrection fills eta1/eta2/eta3 with the
// per-face wave-speed width; etahAt combines those into the single
// dissipation coefficient the second-pass Riemann solve (phase 7) uses.

// etaArr returns the per-face dissipation-width array for direction d.
func (it *Integrator) etaArr(d Dir) *Array3 {
	switch d {
	case Dir1:
		return it.eta1
	case Dir2:
		return it.eta2
	default:
		return it.eta3
	}
}

// hCorrection computes eta_d at every face along direction d from the
// two straddling cells' sweep-normal velocity and fast magnetosonic
// speed: eta_face = 0.5*max(|lambda+_r - lambda+_l|, |lambda-_r - lambda-_l|),
// with lambda+- = v_n +- c_fast evaluated on each side.
func (it *Integrator) hCorrection(g *Grid, d Dir) {
	if !it.cfg.HCorrection {
		return
	}
	dom := it.dom
	nLo, nHi, aLo, aHi, bLo, bHi := dom.sweepBounds(d)
	arr := it.etaArr(d)

	for a := aLo; a <= aHi; a++ {
		for b := bLo; b <= bHi; b++ {
			for n := nLo; n <= nHi+1; n++ {
				rk, rj, ri := d.toIJK(n, a, b)
				lk, lj, li := d.toIJK(n-1, a, b)

				uL := rotateState(g.State(lk, lj, li), d)
				uR := rotateState(g.State(rk, rj, ri), d)
				bxL := normalCellB(g, d).At(lk, lj, li)
				bxR := normalCellB(g, d).At(rk, rj, ri)

				cfL := it.col.FastSpeed(uL, bxL, it.cfg.Gamma)
				cfR := it.col.FastSpeed(uR, bxR, it.cfg.Gamma)
				vL, vR := uL.Mx/uL.D, uR.Mx/uR.D

				plus := math.Abs((vR + cfR) - (vL + cfL))
				minus := math.Abs((vR - cfR) - (vL - cfL))
				eta := 0.5 * math.Max(plus, minus)
				arr.Set(rk, rj, ri, eta)
			}
		}
	}
}

// etahAt returns the combined H-correction coefficient for the face at
// axis-local position (n,a,b) along direction d: the maximum of the face's
// own eta_d and the eight transverse neighbor faces of the two other
// directions' eta arrays, per spec.md §4.6's "+ cross-stencil".
func (it *Integrator) etahAt(d Dir, n, a, b int) float64 {
	if !it.cfg.HCorrection {
		return 0
	}
	_, aAxis, bAxis := d.cyc()
	dA := Dir(aAxis)
	dB := Dir(bAxis)

	k, j, i := d.toIJK(n, a, b)
	best := it.etaArr(d).At(k, j, i)

	etaA := it.etaArr(dA)
	for _, nn := range [2]int{n, n - 1} {
		for _, aa := range [2]int{a, a + 1} {
			ck, cj, ci := d.toIJK(nn, aa, b)
			if v := etaA.At(ck, cj, ci); v > best {
				best = v
			}
		}
	}
	etaB := it.etaArr(dB)
	for _, nn := range [2]int{n, n - 1} {
		for _, bb := range [2]int{b, b + 1} {
			ck, cj, ci := d.toIJK(nn, a, bb)
			if v := etaB.At(ck, cj, ci); v > best {
				best = v
			}
		}
	}
	return best
}
