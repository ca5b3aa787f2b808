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

import "github.com/sirupsen/logrus"

// Step runs one unsplit 3D CTU time step on g, per spec.md §5's ordering
// guarantee (integrate_3d_ctu): the predictor and first-pass corner EMF run
// before the half-step CT update, the transverse corrector runs before the
// full-step CT update, and the full-step CT update runs before the full-step
// cell update. dt must already be set on the Integrator's Domain (g and it
// must share the same Domain extents).
func (it *Integrator) Step(g *Grid) {
	log := logrus.WithFields(logrus.Fields{
		"dt": it.dom.Dt, "mhd": it.cfg.MHD, "hcorrection": it.cfg.HCorrection,
	})
	log.Debug("ctu3d: step start")

	if it.cfg.MHD {
		it.computeCellEMF(g)
	}

	// Phase 1: directionally-split predictor and first-pass Riemann solve.
	it.predict(g, Dir1)
	it.predict(g, Dir2)
	it.predict(g, Dir3)

	// Phase 2 (first pass): corner EMFs from the first-pass fluxes.
	it.cornerEMF()

	// Phase 3: half-step CT update of the face-centered field into bHalf.
	it.ctHalfStep(g)

	// Phase 4: transverse-flux correction of the predicted interface states.
	it.transverseCorrect(g, Dir1)
	it.transverseCorrect(g, Dir2)
	it.transverseCorrect(g, Dir3)

	// Phase 5: half-step cell-centered density/momentum/pressure diagnostics
	// and the half-step cell-centered EMFs they feed into the second pass.
	it.halfStepState(g)

	// Phase 6: H-correction dissipation widths, built from the time-n cell
	// states' sweep-normal velocity and fast speed.
	if it.cfg.HCorrection {
		it.hCorrection(g, Dir1)
		it.hCorrection(g, Dir2)
		it.hCorrection(g, Dir3)
	}

	// Phase 7: second-pass Riemann solve on the transverse-corrected states.
	it.secondPassSolve(g, Dir1)
	it.secondPassSolve(g, Dir2)
	it.secondPassSolve(g, Dir3)

	// Phase 2 (second pass): corner EMFs recomputed from the second-pass
	// fluxes, consumed by the full-step CT update below.
	it.cornerEMF()

	// Phase 8: full-step CT update of the grid's face-centered field.
	it.ctFullStep(g)

	// Phase 9: full-step cell update; the only phase that writes g.SetState.
	it.fullStepUpdate(g)

	log.Debug("ctu3d: step done")
}
