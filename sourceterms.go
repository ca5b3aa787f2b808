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

// This file implements the source-term subsystem of spec.md §4.7, shared
// by the predictor (phase 1), the transverse corrector (phase 4), and the
// full-step cell update (phase 9).

// cellPhi evaluates the caller's potential at the center of cell (k,j,i),
// or 0 if no Potential collaborator was supplied.
func (it *Integrator) cellPhi(k, j, i int) float64 {
	if it.col.Potential == nil {
		return 0
	}
	x1, x2, x3 := it.col.CellPos(i, j, k)
	return it.col.Potential(x1, x2, x3)
}

// facePhi evaluates the potential at the left face of cell (k,j,i) along
// direction d, offsetting the cell-center position by half the grid
// spacing as spec.md §4.7 requires ("face-centered differences for
// velocity source terms in predictor").
func (it *Integrator) facePhi(d Dir, k, j, i int) float64 {
	if it.col.Potential == nil {
		return 0
	}
	x1, x2, x3 := it.col.CellPos(i, j, k)
	half := 0.5 * it.dom.dx(d)
	switch d {
	case Dir1:
		x1 -= half
	case Dir2:
		x2 -= half
	default:
		x3 -= half
	}
	return it.col.Potential(x1, x2, x3)
}

// cellPhiGrad returns the centered-difference gradient of the potential
// along direction d at cell (k,j,i), the direct cell-centered form spec.md
// §4.1 step 5 uses for the self-gravity velocity source (as opposed to
// predictorGravityDv's face-difference form for a generic static
// potential).
func (it *Integrator) cellPhiGrad(d Dir, k, j, i int) float64 {
	switch d {
	case Dir1:
		return (it.cellPhi(k, j, i+1) - it.cellPhi(k, j, i-1)) / (2 * it.dom.Dx1)
	case Dir2:
		return (it.cellPhi(k, j+1, i) - it.cellPhi(k, j-1, i)) / (2 * it.dom.Dx2)
	default:
		return (it.cellPhi(k+1, j, i) - it.cellPhi(k-1, j, i)) / (2 * it.dom.Dx3)
	}
}

// predictorSelfGravityDv returns the half-step self-gravity velocity source
// term of spec.md §4.1 step 5: -0.5*dt*gradient(Phi_selfgrav). Unlike
// predictorGravityDv's face-difference treatment of a generic static
// potential, spec.md textually distinguishes this term as a direct
// cell-centered gradient.
func (it *Integrator) predictorSelfGravityDv(d Dir, k, j, i int) float64 {
	return -0.5 * it.dom.Dt * it.cellPhiGrad(d, k, j, i)
}

// faceGravAccel returns the gravitational acceleration vector g = -grad(Phi)
// and the face-averaged potential at the face between cell (k,j,i) and its
// neighbor one cell up along axis n (k,j,i+1 for Dir1, etc.), the
// ingredients spec.md §4.7's self-gravity stress tensor needs at a face.
// The normal component uses the one-sided difference across the face
// itself; the two transverse components average the neighboring cells'
// centered gradients, matching the face-averaging spec.md §4.7 calls for
// ("Energy uses face-averaged Phi").
func (it *Integrator) faceGravAccel(n Dir, k, j, i int) (g [3]float64, phiFace float64) {
	hk, hj, hi := k, j, i
	switch n {
	case Dir1:
		hi++
	case Dir2:
		hj++
	default:
		hk++
	}
	phiFace = 0.5 * (it.cellPhi(k, j, i) + it.cellPhi(hk, hj, hi))

	for idx, t := range [3]Dir{Dir1, Dir2, Dir3} {
		if t == n {
			g[idx] = -(it.cellPhi(hk, hj, hi) - it.cellPhi(k, j, i)) / it.dom.dx(n)
			continue
		}
		g[idx] = -0.5 * (it.cellPhiGrad(t, k, j, i) + it.cellPhiGrad(t, hk, hj, hi))
	}
	return g, phiFace
}

// predictorGravityDv returns the half-step velocity source term of
// spec.md §4.1 step 5 for the sweep-normal velocity component, for the
// state on the "left" (upwind, zone m-1) or "right" (zone m) side of face
// m: -(dt/dx)*(Phi_face - Phi_cellface).
func (it *Integrator) predictorGravityDv(d Dir, faceK, faceJ, faceI int, leftCellK, leftCellJ, leftCellI int, isLeft bool) float64 {
	if it.col.Potential == nil {
		return 0
	}
	phiFace := it.facePhi(d, faceK, faceJ, faceI)
	var phiCell float64
	if isLeft {
		phiCell = it.cellPhi(leftCellK, leftCellJ, leftCellI)
	} else {
		phiCell = it.cellPhi(faceK, faceJ, faceI)
	}
	return -(it.dom.Dt / it.dom.dx(d)) * (phiFace - phiCell)
}

// predictorCoolingDp returns the half-step pressure sink of spec.md §4.1
// step 5: -0.5*dt*(gamma-1)*Lambda(d,P,dt). Returns 0 if cooling is
// disabled.
func (it *Integrator) predictorCoolingDp(d, p float64) float64 {
	if it.col.Cooling == nil {
		return 0
	}
	return -0.5 * it.dom.Dt * (it.cfg.Gamma - 1) * it.col.Cooling(d, p, it.dom.Dt)
}

// shearingBoxPredictor applies the half-step Coriolis/tidal terms of
// spec.md §4.7 to a rotated primitive velocity pair (vx along the sweep
// direction, vy the x2-like transverse velocity in the *grid* frame).
// Only meaningful for sweeps where Vx/Vy correspond to the box's radial
// and azimuthal velocities; the caller (predictor.go) only invokes this
// for Dir1 and Dir2 sweeps, matching the usual shearing-box convention
// that the box's orbital plane is (x1,x2).
func (it *Integrator) shearingBoxPredictor(vx, vy float64) (dvx, dvy float64) {
	if !it.cfg.ShearingBox {
		return 0, 0
	}
	dt := it.dom.Dt
	omega := it.cfg.Omega
	dvx = dt * omega * vy
	if it.cfg.Fargo {
		dvy = -0.25 * dt * omega * vx
	} else {
		dvy = -dt * omega * vy
	}
	return dvx, dvy
}

// crankNicholsonShearBox applies the full-step Crank-Nicholson update of
// spec.md §4.7 to the (M1, delta-M2) pair, where delta-M2 is the momentum
// departure from the background Keplerian shear -Omega*x1*d at the cell.
// It returns the updated (m1, m2).
func (it *Integrator) crankNicholsonShearBox(m1, m2, d, x1 float64) (float64, float64) {
	omega := it.cfg.Omega
	dt := it.dom.Dt
	fact := omega * dt / (1 + 0.25*omega*omega*dt*dt)
	background := -omega * x1 * d
	dM2 := m2 - background
	m1New := m1 + fact*(2*dM2+0.5*omega*dt*m1)
	dM2New := dM2 + fact*(-2*m1-0.5*omega*dt*dM2)
	return m1New, background + dM2New
}
