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

// This file implements phase 4 (spec.md §4.4): the transverse-flux
// corrector. For every direction d it walks the interior transverse lines
// only (aLo..aHi, bLo..bHi), not the two-line margin the predictor
// (phase 1) also populated, and, for each face, corrects the
// reconstructed Ul/Ur conserved states with (1) the divergence of the
// other two directions' first-pass fluxes, (2) a face-B correction built
// from the corner EMFs, (3) the multidimensional MHD source term, and
// (4) the gravity/shearing-box source correction.

// transverseCorrect runs phase 4 for direction d.
func (it *Integrator) transverseCorrect(g *Grid, d Dir) {
	dom := it.dom
	nLo, nHi, aLo, aHi, bLo, bHi := dom.sweepBounds(d)

	lines := make([][2]int, 0, (aHi-aLo+1)*(bHi-bLo+1))
	for a := aLo; a <= aHi; a++ {
		for b := bLo; b <= bHi; b++ {
			lines = append(lines, [2]int{a, b})
		}
	}

	work := func(line [2]int) { it.transverseCorrectLine(g, d, nLo, nHi, line[0], line[1]) }

	if it.cfg.Parallel {
		runParallelLines(lines, work)
		return
	}
	for _, line := range lines {
		work(line)
	}
}

// transverseCorrectLine processes a single transverse line (a,b) for
// direction d, over the n range of faces spec.md §4.4 corrects.
func (it *Integrator) transverseCorrectLine(g *Grid, d Dir, nLo, nHi, a, b int) {
	dom := it.dom
	nAxis, aAxis, bAxis := d.cyc()
	dA, dB := Dir(aAxis), Dir(bAxis)
	hdt := 0.5 * dom.Dt

	for n := nLo; n <= nHi+1; n++ {
		k, j, i := d.toIJK(n, a, b)
		lk, lj, li := d.toIJK(n-1, a, b)

		ul := it.ul[d][k][j][i]
		ur := it.ur[d][k][j][i]

		ul = it.applyTransverseFluxGradient(ul, d, dA, dB, lk, lj, li, hdt)
		ur = it.applyTransverseFluxGradient(ur, d, dA, dB, k, j, i, hdt)

		if it.cfg.MHD {
			ul = it.applyFaceBEMFCorrection(ul, d, n-1, a, b, nAxis, aAxis, bAxis)
			ur = it.applyFaceBEMFCorrection(ur, d, n, a, b, nAxis, aAxis, bAxis)

			bxiArr := g.faceNormalB(d)
			bxL := bxiArr.At(lk, lj, li)
			bxR := bxiArr.At(k, j, i)
			ul = it.applyMHDSourceTerm(g, ul, d, lk, lj, li, bxL, hdt)
			ur = it.applyMHDSourceTerm(g, ur, d, k, j, i, bxR, hdt)
		}

		if it.col.Potential != nil {
			if it.cfg.SelfGravity {
				ul = it.applyTransverseSelfGravity(ul, d, lk, lj, li)
				ur = it.applyTransverseSelfGravity(ur, d, k, j, i)
			} else {
				ul = it.applyTransverseGravity(ul, d, k, j, i, lk, lj, li, true)
				ur = it.applyTransverseGravity(ur, d, k, j, i, lk, lj, li, false)
			}
		}
		if it.cfg.ShearingBox && (d == Dir1 || d == Dir2) {
			ul = it.applyTransverseShearBox(ul)
			ur = it.applyTransverseShearBox(ur)
		}

		it.ul[d][k][j][i] = ul
		it.ur[d][k][j][i] = ur
	}
}

// applyTransverseFluxGradient subtracts, from conserved state u (the
// reconstructed face state belonging to cell (ck,cj,ci)), the half-step
// divergence of the first-pass fluxes along the two directions transverse
// to d: dA and dB. D, E and the passive scalars are frame-invariant; the
// momentum is unrotated to the grid frame, summed, and rotated back into
// d's frame before being subtracted.
func (it *Integrator) applyTransverseFluxGradient(u Cons1D, d, dA, dB Dir, ck, cj, ci int, hdt float64) Cons1D {
	var dD, dE float64
	var dM1, dM2, dM3 float64
	var dS []float64
	if n := len(u.S); n > 0 {
		dS = make([]float64, n)
	}

	for _, e := range [2]Dir{dA, dB} {
		lo, hi := it.transverseFluxPair(e, ck, cj, ci)
		dx := it.dom.dx(e)
		scale := hdt / dx

		dD += scale * (hi.D - lo.D)
		dE += scale * (hi.E - lo.E)
		l1, l2, l3 := unrotateMomentum(lo.Mx, lo.My, lo.Mz, e)
		h1, h2, h3 := unrotateMomentum(hi.Mx, hi.My, hi.Mz, e)
		dM1 += scale * (h1 - l1)
		dM2 += scale * (h2 - l2)
		dM3 += scale * (h3 - l3)
		for si := range dS {
			dS[si] += scale * (hi.S[si] - lo.S[si])
		}
	}

	dMx, dMy, dMz := rotateVec3(dM1, dM2, dM3, d)
	u.D -= dD
	u.Mx -= dMx
	u.My -= dMy
	u.Mz -= dMz
	u.E -= dE
	for si := range u.S {
		u.S[si] -= dS[si]
	}
	return u
}

// transverseFluxPair returns the low/high flux currently held in it.flux
// (in direction e's own rotated frame) bounding cell (ck,cj,ci) along axis
// e: the first-pass flux during phase 4, the second-pass flux in phase 9.
func (it *Integrator) transverseFluxPair(e Dir, ck, cj, ci int) (lo, hi Cons1D) {
	lo = it.flux[e][ck][cj][ci]
	switch e {
	case Dir1:
		hi = it.flux[e][ck][cj][ci+1]
	case Dir2:
		hi = it.flux[e][ck][cj+1][ci]
	default:
		hi = it.flux[e][ck+1][cj][ci]
	}
	return lo, hi
}

// rotateVec3 permutes a grid-frame 3-vector into direction d's rotated
// (x,y,z) ordering, the vector counterpart of rotateState's momentum
// permutation.
func rotateVec3(v1, v2, v3 float64, d Dir) (vx, vy, vz float64) {
	n, a, b := d.cyc()
	v := [3]float64{v1, v2, v3}
	return v[n], v[a], v[b]
}

// applyFaceBEMFCorrection updates the face state's transverse magnetic
// components (By, Bz) from the corner EMFs, per spec.md §4.4's averaging
// pattern (illustrated there for Ul_x1Face.Bz). cellN identifies the cell
// (upwind for Ul, downwind for Ur) whose bounding edges supply the EMF
// values; nAxis/aAxis/bAxis are d's cyclic axis assignment.
func (it *Integrator) applyFaceBEMFCorrection(u Cons1D, d Dir, cellN, a, b, nAxis, aAxis, bAxis int) Cons1D {
	emfD := it.emfArr(d)
	qa := 0.5 * it.dom.Dt / it.dom.dx(Dir(aAxis))
	qb := 0.5 * it.dom.Dt / it.dom.dx(Dir(bAxis))

	at := func(n, a, b int) float64 {
		var c [3]int
		c[nAxis], c[aAxis], c[bAxis] = n, a, b
		return emfD.At(c[2], c[1], c[0])
	}

	dBz := qa * 0.5 * ((at(cellN, a+1, b) - at(cellN, a, b)) + (at(cellN, a+1, b+1) - at(cellN, a, b+1)))
	dBy := -qb * 0.5 * ((at(cellN, a, b+1) - at(cellN, a, b)) + (at(cellN, a+1, b+1) - at(cellN, a+1, b)))

	u.By += dBy
	u.Bz += dBz
	return u
}

// applyMHDSourceTerm adds the multidimensional min-mod-limited MHD source
// term of spec.md §4.4 to face state u, belonging to cell (ck,cj,ci) with
// sweep-normal face field bx. The bx*dbD momentum term is added to all
// three momentum components, not only the sweep-normal one.
func (it *Integrator) applyMHDSourceTerm(g *Grid, u Cons1D, d Dir, ck, cj, ci int, bx, hdt float64) Cons1D {
	dbD, dbA, dbB := cellDivComponents(g, it.dom, d, ck, cj, ci)
	mdbA := minMod(-dbD, dbA)
	mdbB := minMod(-dbD, dbB)

	cell := rotateState(g.State(ck, cj, ci), d)
	va, vb := cell.My/cell.D, cell.Mz/cell.D
	ba, bb := cell.By, cell.Bz

	dm := hdt * bx * dbD
	u.Mx += dm
	u.My += dm
	u.Mz += dm

	u.By += hdt * va * (-mdbB)
	u.Bz += hdt * vb * (-mdbA)
	u.E += hdt * (ba*va*(-mdbB) + bb*vb*(-mdbA))
	return u
}

// applyTransverseGravity adds the transverse-corrector's gravity source
// term, mirroring the predictor's half-step form but weighted by the
// face's own mass density (momentum-flux form appropriate to a conserved
// rather than primitive state), per spec.md §4.4 and §4.7.
func (it *Integrator) applyTransverseGravity(u Cons1D, d Dir, faceK, faceJ, faceI, cellK, cellJ, cellI int, isLeft bool) Cons1D {
	phiFace := it.facePhi(d, faceK, faceJ, faceI)
	var phiCell float64
	if isLeft {
		phiCell = it.cellPhi(cellK, cellJ, cellI)
	} else {
		phiCell = it.cellPhi(faceK, faceJ, faceI)
	}
	dMx := -(it.dom.Dt / it.dom.dx(d)) * u.D * (phiFace - phiCell)
	vx := u.Mx / u.D
	u.Mx += dMx
	u.E += vx * dMx
	return u
}

// applyTransverseSelfGravity adds the transverse corrector's self-gravity
// source term using the direct cell-centered gradient form of spec.md
// §4.1 step 5/§4.7, mirroring predictorSelfGravityDv but in momentum form
// since phase 4 works on conserved rather than primitive states, the same
// way applyTransverseShearBox mirrors shearingBoxPredictor.
func (it *Integrator) applyTransverseSelfGravity(u Cons1D, d Dir, k, j, i int) Cons1D {
	dMx := -0.5 * it.dom.Dt * u.D * it.cellPhiGrad(d, k, j, i)
	vx := u.Mx / u.D
	u.Mx += dMx
	u.E += vx * dMx
	return u
}

// applyTransverseShearBox adds the same half-step Coriolis/tidal terms as
// the predictor (sourceterms.go's shearingBoxPredictor), but in momentum
// form since phase 4 works on conserved rather than primitive states.
func (it *Integrator) applyTransverseShearBox(u Cons1D) Cons1D {
	vx, vy := u.Mx/u.D, u.My/u.D
	dvx, dvy := it.shearingBoxPredictor(vx, vy)
	u.Mx += u.D * dvx
	u.My += u.D * dvy
	return u
}
