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

import (
	"runtime"
	"sync"
)

// predict runs phase 1 (spec.md §4.1) for sweep direction d: for every
// transverse line it reconstructs half-step left/right primitive
// interface states, applies the MHD transverse source correction and the
// half-step physics source terms, and invokes the Riemann solver for the
// first-pass flux.
func (it *Integrator) predict(g *Grid, d Dir) {
	nLo, nHi, aLo, aHi, bLo, bHi := it.dom.sweepBounds(d)
	margin := 2 // two ghost faces transverse to the sweep, per spec.md §4.1

	lines := make([][2]int, 0, (aHi-aLo+1+2*margin)*(bHi-bLo+1+2*margin))
	for a := aLo - margin; a <= aHi+margin; a++ {
		for b := bLo - margin; b <= bHi+margin; b++ {
			lines = append(lines, [2]int{a, b})
		}
	}

	work := func(line [2]int) { it.predictLine(g, d, nLo, nHi, line[0], line[1]) }

	if it.cfg.Parallel {
		runParallelLines(lines, work)
		return
	}
	for _, line := range lines {
		work(line)
	}
}

// runParallelLines fans a slice of transverse lines out across
// runtime.GOMAXPROCS(0) goroutines, each owning a disjoint strided slice
// of the work, the same shape as the teacher's run.go Calculations
// worker pool.
func runParallelLines(lines [][2]int, work func(line [2]int)) {
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for ii := pp; ii < len(lines); ii += nprocs {
				work(lines[ii])
			}
		}(pp)
	}
	wg.Wait()
}

// predictLine processes a single transverse line (a,b) for direction d,
// over normal cell indices [nLo-NGhost .. nHi+NGhost].
func (it *Integrator) predictLine(g *Grid, d Dir, nLo, nHi, a, b int) {
	ng := it.dom.NGhost
	lo, hi := nLo-ng, nHi+ng
	n := hi - lo + 1

	bxiArr := g.faceNormalB(d)
	bxcArr := normalCellB(g, d)

	u1d := make([]Cons1D, n)
	bxi := make([]float64, n+1) // face values, one more than cells
	bxc := make([]float64, n)
	w := make([]Prim1D, n)

	for m := 0; m < n; m++ {
		normal := lo + m
		k, j, i := d.toIJK(normal, a, b)
		u1d[m] = rotateState(g.State(k, j, i), d)
		if it.cfg.MHD {
			bxc[m] = bxcArr.At(k, j, i)
			bxi[m] = bxiArr.At(k, j, i)
		}
	}
	if it.cfg.MHD {
		kEnd, jEnd, iEnd := d.toIJK(hi+1, a, b)
		bxi[n] = bxiArr.At(kEnd, jEnd, iEnd)
	}
	for m := range u1d {
		bx := 0.
		if it.cfg.MHD {
			bx = bxi[m]
		}
		w[m] = it.col.ToPrim(u1d[m], bx, it.cfg.Gamma)
	}

	wl := make([]Prim1D, n)
	wr := make([]Prim1D, n)
	dtodx := it.dom.Dt / it.dom.dx(d)
	it.col.Reconstruct(w, bxc, it.dom.Dt, dtodx, ng, n-1-ng, wl, wr)

	hdt := 0.5 * it.dom.Dt

	// Faces run over local index [ng .. n-ng], i.e. interior faces plus
	// the one extra face on the right; no ghost faces along the sweep
	// direction are solved.
	for m := ng; m <= n-ng; m++ {
		normal := lo + m
		k, j, i := d.toIJK(normal, a, b)
		lk, lj, li := d.toIJK(normal-1, a, b)

		if it.cfg.MHD {
			dbDL, dbAL, dbBL := cellDivComponents(g, it.dom, d, lk, lj, li)
			laL := limiterStep(dbDL, dbAL)
			lbL := limiterStep(dbDL, dbBL)
			vaL, vbL := u1d[m-1].My/u1d[m-1].D, u1d[m-1].Mz/u1d[m-1].D
			wl[m].By += hdt * vaL * laL
			wl[m].Bz += hdt * vbL * lbL

			dbDR, dbAR, dbBR := cellDivComponents(g, it.dom, d, k, j, i)
			laR := limiterStep(dbDR, dbAR)
			lbR := limiterStep(dbDR, dbBR)
			vaR, vbR := u1d[m].My/u1d[m].D, u1d[m].Mz/u1d[m].D
			wr[m].By += hdt * vaR * laR
			wr[m].Bz += hdt * vbR * lbR
		}

		if it.col.Potential != nil {
			var dvxL, dvxR float64
			if it.cfg.SelfGravity {
				dvxL = it.predictorSelfGravityDv(d, lk, lj, li)
				dvxR = it.predictorSelfGravityDv(d, k, j, i)
			} else {
				dvxL = it.predictorGravityDv(d, k, j, i, lk, lj, li, true)
				dvxR = it.predictorGravityDv(d, k, j, i, lk, lj, li, false)
			}
			wl[m].Vx += dvxL
			wr[m].Vx += dvxR
		}
		if it.col.Cooling != nil {
			wl[m].P += it.predictorCoolingDp(wl[m].D, wl[m].P)
			wr[m].P += it.predictorCoolingDp(wr[m].D, wr[m].P)
		}
		if it.cfg.ShearingBox && (d == Dir1 || d == Dir2) {
			dvxL, dvyL := it.shearingBoxPredictor(wl[m].Vx, wl[m].Vy)
			wl[m].Vx += dvxL
			wl[m].Vy += dvyL
			dvxR, dvyR := it.shearingBoxPredictor(wr[m].Vx, wr[m].Vy)
			wr[m].Vx += dvxR
			wr[m].Vy += dvyR
		}

		bx := 0.
		if it.cfg.MHD {
			bx = bxi[m]
		}
		ul := it.col.ToCons(wl[m], bx, it.cfg.Gamma)
		ur := it.col.ToCons(wr[m], bx, it.cfg.Gamma)

		etah := 0.
		if it.cfg.HCorrection {
			etah = it.eta1Value(d, k, j, i)
		}
		flux := it.col.Solve(ul, ur, wl[m], wr[m], bx, etah, it.cfg.Gamma)

		it.ul[d][k][j][i] = ul
		it.ur[d][k][j][i] = ur
		it.flux[d][k][j][i] = flux
	}
}

// normalCellB returns the cell-centered B component along the
// sweep-normal axis for direction d.
func normalCellB(g *Grid, d Dir) *Array3 {
	switch d {
	case Dir1:
		return g.B1c
	case Dir2:
		return g.B2c
	default:
		return g.B3c
	}
}

// cellDivComponents computes the three partial B-divergences db1,db2,db3
// of spec.md §4.1 step 4 at cell (k,j,i), then returns them rotated into
// (db_d, db_a, db_b) order for direction d.
func cellDivComponents(g *Grid, dom Domain, d Dir, k, j, i int) (dbD, dbA, dbB float64) {
	db1 := (g.B1i.At(k, j, i+1) - g.B1i.At(k, j, i)) / dom.Dx1
	db2 := (g.B2i.At(k, j+1, i) - g.B2i.At(k, j, i)) / dom.Dx2
	db3 := (g.B3i.At(k+1, j, i) - g.B3i.At(k, j, i)) / dom.Dx3
	n, a, b := d.cyc()
	db := [3]float64{db1, db2, db3}
	return db[n], db[a], db[b]
}

// limiterStep implements spec.md §4.1 step 4's selection scheme for a
// single transverse slope:
//
//	if db_d >= 0: l_t := max(0, min(db_d, -db_t))
//	else:         l_t := min(0, max(db_d, -db_t))
//
// Design Notes §9 warns this combination must be reproduced exactly, not
// simplified.
func limiterStep(dbD, dbT float64) float64 {
	if dbD >= 0 {
		v := dbD
		if -dbT < v {
			v = -dbT
		}
		if v < 0 {
			v = 0
		}
		return v
	}
	v := dbD
	if -dbT > v {
		v = -dbT
	}
	if v > 0 {
		v = 0
	}
	return v
}

// eta1Value is the H-correction coefficient used by the first-pass Riemann
// solve for the face at (k,j,i) along direction d. It always returns 0, so
// the first-pass solve receives etah=0, matching spec.md §4.6:
// H-correction only affects the second-pass flux solve.
func (it *Integrator) eta1Value(d Dir, k, j, i int) float64 {
	return 0
}
