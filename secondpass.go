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

// secondPassSolve runs phase 7 (spec.md §4.6, second half): it re-invokes
// the external Riemann solver on the transverse-corrected interface
// states from it.ul[d]/it.ur[d], this time with the real H-correction
// coefficient, overwriting it.flux[d] with the second-pass flux that
// phases 8 and 9 consume. The normal-B argument to ToPrim/Solve is read
// from it.bHalf, the half-step predicted face field phase 3 (ctHalfStep)
// produced, not the grid's t^n g.B1i/B2i/B3i — the corrector flux solve
// needs a time-centered normal B for second-order accuracy, the same
// half-step field phase 5's cell-EMF recompute already reads.
func (it *Integrator) secondPassSolve(g *Grid, d Dir) {
	dom := it.dom
	nLo, nHi, aLo, aHi, bLo, bHi := dom.sweepBounds(d)

	for a := aLo; a <= aHi; a++ {
		for b := bLo; b <= bHi; b++ {
			for n := nLo; n <= nHi+1; n++ {
				k, j, i := d.toIJK(n, a, b)
				ul := it.ul[d][k][j][i]
				ur := it.ur[d][k][j][i]

				var bx float64
				if it.cfg.MHD {
					bx = it.bHalf[d].At(k, j, i)
				}
				wl := it.col.ToPrim(ul, bx, it.cfg.Gamma)
				wr := it.col.ToPrim(ur, bx, it.cfg.Gamma)

				var etah float64
				if it.cfg.HCorrection {
					etah = it.etahAt(d, n, a, b)
				}
				it.flux[d][k][j][i] = it.col.Solve(ul, ur, wl, wr, bx, etah, it.cfg.Gamma)
			}
		}
	}
}
