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

// This file specifies the core's interface with the external collaborators
// named in spec.md §1 and §6. None of these are implemented here; the
// caller supplies concrete functions at NewIntegrator time. Per Design
// Notes §9, the flag set (Collaborators, Config) is resolved once at Step
// entry rather than dispatched per cell.

// Reconstructor produces piecewise-reconstructed left/right primitive
// states at each interior face, including two ghost faces on each side
// (spec.md §4.1 step 3, the external lr_states routine). w and bxc are
// indexed [lo-2 .. hi+2]; wl/wr are written for faces [lo .. hi+1].
type Reconstructor func(w []Prim1D, bxc []float64, dt, dtodx float64, lo, hi int, wl, wr []Prim1D)

// ConsToPrim converts a rotated conserved state to primitive form given
// the sweep-normal face field bx (Cons1D_to_Prim1D).
type ConsToPrim func(u Cons1D, bx, gamma float64) Prim1D

// PrimToCons converts a rotated primitive state to conserved form given
// the sweep-normal face field bx (Prim1D_to_Cons1D).
type PrimToCons func(w Prim1D, bx, gamma float64) Cons1D

// RiemannSolver resolves the interface Riemann problem between left/right
// conserved and primitive states and the shared normal field bxi, writing
// a conserved flux in the same rotated convention (GET_FLUXES). etah is
// the H-correction dissipation coefficient of spec.md §4.6, computed by
// the core and passed explicitly (Design Notes §9 recommends replacing the
// reference implementation's module-level "etah" global with an explicit
// parameter).
type RiemannSolver func(ul, ur Cons1D, wl, wr Prim1D, bxi, etah, gamma float64) Cons1D

// FastMagnetosonic returns the fast magnetosonic wave speed for a cell
// given its conserved state and sweep-normal face field (cfast). It is
// only invoked when Config.HCorrection is set.
type FastMagnetosonic func(u Cons1D, bx, gamma float64) float64

// Potential evaluates a static or self-gravitational potential at a
// cell-center or face position (StaticGravPot). A nil Potential is
// equivalent to Phi==0 everywhere.
type Potential func(x1, x2, x3 float64) float64

// CoolingFunc evaluates the optically-thin cooling function Lambda(d,P,dt)
// (CoolingFunc). A nil CoolingFunc disables cooling.
type CoolingFunc func(d, p, dt float64) float64

// CCPos returns the cell-center coordinates of cell (i,j,k) (cc_pos).
type CCPos func(i, j, k int) (x1, x2, x3 float64)

// EyRemap remaps the y-component of the edge EMF across a shearing-box
// radial (x1) boundary (RemapEy_ix1 / RemapEy_ox1). It is invoked by the
// caller, not the core; ctu3d only guarantees emf2 is fully assembled
// before the caller's boundary exchange runs.
type EyRemap func(ey *Array3)

// Collaborators bundles every external hook the core needs for one Step.
// Reconstruct, ToPrim, ToCons, and Solve must be non-nil; the physics
// hooks (Potential, Cooling, FastSpeed) may be nil to mean "disabled",
// per Design Notes §9's "absent ≡ skipped" model.
type Collaborators struct {
	Reconstruct Reconstructor
	ToPrim      ConsToPrim
	ToCons      PrimToCons
	Solve       RiemannSolver
	FastSpeed   FastMagnetosonic // required iff Config.HCorrection
	Potential   Potential        // static or self-gravity Phi; nil = none
	Cooling     CoolingFunc      // nil = disabled
	CellPos     CCPos            // required iff Potential != nil or Config.ShearingBox
}

func (c Collaborators) validate(cfg Config) error {
	if c.Reconstruct == nil || c.ToPrim == nil || c.ToCons == nil || c.Solve == nil {
		return errRequiredCollaborator
	}
	if cfg.HCorrection && c.FastSpeed == nil {
		return errMissingFastSpeed
	}
	if (c.Potential != nil || cfg.ShearingBox) && c.CellPos == nil {
		return errMissingCellPos
	}
	return nil
}
