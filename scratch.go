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

// consField is a dense (k,j,i)-indexed field of rotated conserved states,
// used for the per-direction Ul_xdFace/Ur_xdFace/xdFlux scratch arrays of
// spec.md §3. Unlike Array3 (which holds one float64 per cell), these
// carry a whole Cons1D per cell, so they are plain nested slices rather
// than a sparse.DenseArray.
type consField [][][]Cons1D

func newConsField(nk, nj, ni, nscalars int) consField {
	f := make(consField, nk)
	for k := range f {
		f[k] = make([][]Cons1D, nj)
		for j := range f[k] {
			f[k][j] = make([]Cons1D, ni)
			if nscalars > 0 {
				for i := range f[k][j] {
					f[k][j][i].S = make([]float64, nscalars)
				}
			}
		}
	}
	return f
}

// Integrator owns every scratch array the twelve-phase pipeline needs for
// one time step, per spec.md §3's "Lifecycle": allocated once at
// NewIntegrator for a given padded extent, zeroed and reused every Step,
// released by Close.
type Integrator struct {
	cfg Config
	dom Domain
	col Collaborators

	// Phase 1: per-direction reconstructed face states and first-pass
	// fluxes, all in that direction's rotated convention.
	ul, ur   [3]consField
	flux     [3]consField

	// Phase 3/8: half-step predicted normal face magnetic components.
	bHalf [3]*Array3

	// Phase 2/5: edge and cell-centered EMFs.
	emf1, emf2, emf3          *Array3
	emf1cc, emf2cc, emf3cc    *Array3

	// Phase 5: half-step diagnostics, allocated only if needed.
	dhalf, phalf *Array3

	// Phase 6: H-correction dissipation widths, allocated only if enabled.
	eta1, eta2, eta3 *Array3
}

// NewIntegrator preallocates scratch for a block of interior size
// (nx1,nx2,nx3), per spec.md §6's integrate_init_3d. hasPotential and
// hasCooling let the caller declare at construction time whether the
// half-step diagnostics of phase 5 are needed; they are read on their own,
// independently of whether col.Potential/col.Cooling are non-nil.
func NewIntegrator(dom Domain, cfg Config, col Collaborators, hasPotential, hasCooling bool) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := col.validate(cfg); err != nil {
		return nil, err
	}
	if dom.nx1() <= 0 || dom.nx2() <= 0 || dom.nx3() <= 0 {
		return nil, errBadExtents
	}
	if dom.NGhost < 4 {
		return nil, errGhostTooNarrow
	}

	n1, n2, n3 := dom.nx1()+2*dom.NGhost, dom.nx2()+2*dom.NGhost, dom.nx3()+2*dom.NGhost

	it := &Integrator{cfg: cfg, dom: dom, col: col}
	for d := 0; d < 3; d++ {
		it.ul[d] = newConsField(n3, n2, n1, cfg.NScalars)
		it.ur[d] = newConsField(n3, n2, n1, cfg.NScalars)
		it.flux[d] = newConsField(n3, n2, n1, cfg.NScalars)
	}
	if cfg.MHD {
		it.bHalf[0] = NewArray3(n3, n2, n1+1)
		it.bHalf[1] = NewArray3(n3, n2+1, n1)
		it.bHalf[2] = NewArray3(n3+1, n2, n1)
		it.emf1 = NewArray3(n3+1, n2+1, n1)
		it.emf2 = NewArray3(n3+1, n2, n1+1)
		it.emf3 = NewArray3(n3, n2+1, n1+1)
		it.emf1cc = NewArray3(n3, n2, n1)
		it.emf2cc = NewArray3(n3, n2, n1)
		it.emf3cc = NewArray3(n3, n2, n1)
	}
	if cfg.needsHalfStep(hasPotential, hasCooling) {
		it.dhalf = NewArray3(n3, n2, n1)
		if cfg.hasEnergy() {
			it.phalf = NewArray3(n3, n2, n1)
		}
	}
	if cfg.HCorrection {
		it.eta1 = NewArray3(n3, n2, n1+1)
		it.eta2 = NewArray3(n3, n2+1, n1)
		it.eta3 = NewArray3(n3+1, n2, n1)
	}

	logrus.WithFields(logrus.Fields{
		"nx1": dom.nx1(), "nx2": dom.nx2(), "nx3": dom.nx3(), "nghost": dom.NGhost,
		"mhd": cfg.MHD, "hcorrection": cfg.HCorrection,
	}).Debug("ctu3d: integrator scratch allocated")

	return it, nil
}

// Close releases the scratch arrays, per spec.md §6's integrate_destruct_3d.
// Go's garbage collector reclaims the backing storage; Close only drops
// the Integrator's own references so a caller that retains the struct
// value does not keep multi-megabyte arrays alive.
func (it *Integrator) Close() {
	*it = Integrator{}
}
