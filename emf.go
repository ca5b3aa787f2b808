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

// emfArr returns the edge-EMF array for direction d (the edge parallel to
// axis d), used both by cornerEMF itself and by the transverse corrector's
// face-B correction (transverse.go).
func (it *Integrator) emfArr(d Dir) *Array3 {
	switch d {
	case Dir1:
		return it.emf1
	case Dir2:
		return it.emf2
	default:
		return it.emf3
	}
}

// cornerEMF implements phase 2 (spec.md §4.2): the Gardiner-Stone upwind
// constrained-transport construction of edge-centered EMFs from the
// directional fluxes-of-B and the cell-centered EMFs. It mirrors, at the
// level of "pick the upwind neighbor by the sign of the transporting mass
// flux, else average", the same upwind-selection idiom the teacher's
// westEastFlux/southNorthFlux/belowAboveFlux use in science.go — applied
// here to the corner-EMF average rather than to a scalar advective flux.
func (it *Integrator) cornerEMF() {
	if !it.cfg.MHD {
		return
	}
	dom := it.dom

	// emf3 (z-edges): k is cell-centered, j and i are edge coordinates
	// one layer beyond the interior, per spec.md §4.3's "edge faces at
	// the interior boundary must also be updated one layer outside the
	// interior" requirement for the CT update that consumes it.
	for k := dom.Ks; k <= dom.Ke; k++ {
		for j := dom.Js; j <= dom.Je+1; j++ {
			for i := dom.Is; i <= dom.Ie+1; i++ {
				it.emf3.Set(k, j, i, it.emf3At(k, j, i))
			}
		}
	}
	// emf1 (x-edges): i is cell-centered, k and j are edge coordinates.
	for k := dom.Ks; k <= dom.Ke+1; k++ {
		for j := dom.Js; j <= dom.Je+1; j++ {
			for i := dom.Is; i <= dom.Ie; i++ {
				it.emf1.Set(k, j, i, it.emf1At(k, j, i))
			}
		}
	}
	// emf2 (y-edges): j is cell-centered, k and i are edge coordinates.
	for k := dom.Ks; k <= dom.Ke+1; k++ {
		for j := dom.Js; j <= dom.Je; j++ {
			for i := dom.Is; i <= dom.Ie+1; i++ {
				it.emf2.Set(k, j, i, it.emf2At(k, j, i))
			}
		}
	}
}

// upwindAvg implements spec.md §4.2's single "de" term selection: upwind
// by the sign of massFlux, or the average of the two candidates when it
// is exactly zero.
func upwindAvg(massFlux, upwind, downwind float64) float64 {
	switch {
	case massFlux > 0:
		return upwind
	case massFlux < 0:
		return downwind
	default:
		return 0.5 * (upwind + downwind)
	}
}

// emf3At computes the z-edge EMF at (k,j,i) using x1Flux.By (sign
// convention x1Flux.By = -E3) and x2Flux.Bz (x2Flux.Bz = +E3).
func (it *Integrator) emf3At(k, j, i int) float64 {
	fx1jm1 := -it.flux[Dir1][k][j-1][i].By
	fx1j := -it.flux[Dir1][k][j][i].By
	fx2im1 := it.flux[Dir2][k][j][i-1].Bz
	fx2i := it.flux[Dir2][k][j][i].Bz

	ccIm1Jm1 := it.emf3cc.At(k, j-1, i-1)
	ccIJm1 := it.emf3cc.At(k, j-1, i)
	ccIm1J := it.emf3cc.At(k, j, i-1)
	ccIJ := it.emf3cc.At(k, j, i)

	deL := upwindAvg(it.flux[Dir2][k][j][i-1].D, ccIm1Jm1-fx1jm1, ccIm1J-fx1j)
	deR := upwindAvg(it.flux[Dir2][k][j][i].D, ccIJm1-fx1jm1, ccIJ-fx1j)
	deB := upwindAvg(it.flux[Dir1][k][j-1][i].D, ccIm1Jm1-fx2im1, ccIJm1-fx2i)
	deT := upwindAvg(it.flux[Dir1][k][j][i].D, ccIm1J-fx2im1, ccIJ-fx2i)

	return 0.25*(fx1jm1+fx1j+fx2im1+fx2i) + 0.25*(deL+deR+deB+deT)
}

// emf1At computes the x-edge EMF at (k,j,i) using x2Flux.By (=-E1) and
// x3Flux.Bz (=+E1), cyclic with emf3At.
func (it *Integrator) emf1At(k, j, i int) float64 {
	fx2km1 := -it.flux[Dir2][k-1][j][i].By
	fx2k := -it.flux[Dir2][k][j][i].By
	fx3jm1 := it.flux[Dir3][k][j-1][i].Bz
	fx3j := it.flux[Dir3][k][j][i].Bz

	ccKm1Jm1 := it.emf1cc.At(k-1, j-1, i)
	ccKJm1 := it.emf1cc.At(k, j-1, i)
	ccKm1J := it.emf1cc.At(k-1, j, i)
	ccKJ := it.emf1cc.At(k, j, i)

	deL := upwindAvg(it.flux[Dir3][k][j-1][i].D, ccKm1Jm1-fx2km1, ccKJm1-fx2k)
	deR := upwindAvg(it.flux[Dir3][k][j][i].D, ccKm1J-fx2km1, ccKJ-fx2k)
	deB := upwindAvg(it.flux[Dir2][k-1][j][i].D, ccKm1Jm1-fx3jm1, ccKm1J-fx3j)
	deT := upwindAvg(it.flux[Dir2][k][j][i].D, ccKJm1-fx3jm1, ccKJ-fx3j)

	return 0.25*(fx2km1+fx2k+fx3jm1+fx3j) + 0.25*(deL+deR+deB+deT)
}

// emf2At computes the y-edge EMF at (k,j,i) using x3Flux.By (=-E2) and
// x1Flux.Bz (=+E2), cyclic with emf3At.
func (it *Integrator) emf2At(k, j, i int) float64 {
	fx3im1 := -it.flux[Dir3][k][j][i-1].By
	fx3i := -it.flux[Dir3][k][j][i].By
	fx1km1 := it.flux[Dir1][k-1][j][i].Bz
	fx1k := it.flux[Dir1][k][j][i].Bz

	ccIm1Km1 := it.emf2cc.At(k-1, j, i-1)
	ccIKm1 := it.emf2cc.At(k-1, j, i)
	ccIm1K := it.emf2cc.At(k, j, i-1)
	ccIK := it.emf2cc.At(k, j, i)

	deL := upwindAvg(it.flux[Dir1][k-1][j][i].D, ccIm1Km1-fx3im1, ccIKm1-fx3i)
	deR := upwindAvg(it.flux[Dir1][k][j][i].D, ccIm1K-fx3im1, ccIK-fx3i)
	deB := upwindAvg(it.flux[Dir3][k][j][i-1].D, ccIm1Km1-fx1km1, ccIm1K-fx1k)
	deT := upwindAvg(it.flux[Dir3][k][j][i].D, ccIKm1-fx1km1, ccIK-fx1k)

	return 0.25*(fx3im1+fx3i+fx1km1+fx1k) + 0.25*(deL+deR+deB+deT)
}
