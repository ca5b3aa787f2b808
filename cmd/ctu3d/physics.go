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

package main

import (
	"math"

	"github.com/go-astro/ctu3d"
)

// This file supplies a minimal, self-contained set of ctu3d.Collaborators
// for the command-line demo: a donor-cell (first-order) reconstructor, an
// ideal-gas/ideal-MHD primitive<->conserved conversion, a Rusanov
// (local-Lax-Friedrichs) Riemann flux, and the fast magnetosonic speed the
// H-correction needs. None of this claims the accuracy of a dedicated
// Riemann solver package (spec.md §1 deliberately keeps that external); it
// exists so `ctu3d run` has something concrete to integrate.

func toPrim(u ctu3d.Cons1D, bx, gamma float64) ctu3d.Prim1D {
	d := u.D
	vx, vy, vz := u.Mx/d, u.My/d, u.Mz/d
	ke := 0.5 * d * (vx*vx + vy*vy + vz*vz)
	magP := 0.5 * (bx*bx + u.By*u.By + u.Bz*u.Bz)
	p := (gamma - 1) * (u.E - ke - magP)
	return ctu3d.Prim1D{D: d, Vx: vx, Vy: vy, Vz: vz, P: p, By: u.By, Bz: u.Bz, S: u.S}
}

func toCons(w ctu3d.Prim1D, bx, gamma float64) ctu3d.Cons1D {
	ke := 0.5 * w.D * (w.Vx*w.Vx + w.Vy*w.Vy + w.Vz*w.Vz)
	magP := 0.5 * (bx*bx + w.By*w.By + w.Bz*w.Bz)
	e := w.P/(gamma-1) + ke + magP
	return ctu3d.Cons1D{D: w.D, Mx: w.D * w.Vx, My: w.D * w.Vy, Mz: w.D * w.Vz, E: e, By: w.By, Bz: w.Bz, S: w.S}
}

// fastMagnetosonic returns the fast magnetosonic wave speed of ideal MHD,
// cf^2 = 0.5*(a^2+va^2 + sqrt((a^2+va^2)^2 - 4*a^2*vax^2)).
func fastMagnetosonic(u ctu3d.Cons1D, bx, gamma float64) float64 {
	w := toPrim(u, bx, gamma)
	a2 := gamma * w.P / w.D
	va2 := (bx*bx + w.By*w.By + w.Bz*w.Bz) / w.D
	vax2 := bx * bx / w.D
	disc := (a2+va2)*(a2+va2) - 4*a2*vax2
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt(0.5 * (a2 + va2 + math.Sqrt(disc)))
}

// reconstruct is donor-cell (piecewise constant) reconstruction: the left
// state of face m is cell m-1's own state, the right state is cell m's.
func reconstruct(w []ctu3d.Prim1D, bxc []float64, dt, dtodx float64, lo, hi int, wl, wr []ctu3d.Prim1D) {
	for m := lo; m <= hi+1; m++ {
		wl[m] = w[m-1]
		wr[m] = w[m]
	}
}

// mhdFlux returns the ideal-MHD conserved flux in the rotated frame for
// primitive state w with conserved state u and sweep-normal field bx.
func mhdFlux(u ctu3d.Cons1D, w ctu3d.Prim1D, bx float64) ctu3d.Cons1D {
	pStar := w.P + 0.5*(bx*bx+w.By*w.By+w.Bz*w.Bz)
	var f ctu3d.Cons1D
	f.D = u.Mx
	f.Mx = u.Mx*w.Vx + pStar - bx*bx
	f.My = u.My*w.Vx - bx*w.By
	f.Mz = u.Mz*w.Vx - bx*w.Bz
	f.E = (u.E+pStar)*w.Vx - bx*(bx*w.Vx+w.By*w.Vy+w.Bz*w.Vz)
	f.By = w.By*w.Vx - bx*w.Vy
	f.Bz = w.Bz*w.Vx - bx*w.Vz
	if n := len(u.S); n > 0 {
		f.S = make([]float64, n)
		for i := range f.S {
			f.S[i] = u.S[i] * w.Vx
		}
	}
	return f
}

// solve is a Rusanov (local Lax-Friedrichs) flux: F = avg(FL,FR) -
// 0.5*smax*(uR-uL), with smax the larger of the two sides' |Vx|+cf (and
// at least etah, so the H-correction's extra dissipation near strong
// shocks actually widens the numerical viscosity it is meant to add).
func solve(ul, ur ctu3d.Cons1D, wl, wr ctu3d.Prim1D, bx, etah, gamma float64) ctu3d.Cons1D {
	cfL := fastMagnetosonic(ul, bx, gamma)
	cfR := fastMagnetosonic(ur, bx, gamma)
	smax := math.Max(math.Abs(wl.Vx)+cfL, math.Abs(wr.Vx)+cfR)
	if etah > smax {
		smax = etah
	}

	fl := mhdFlux(ul, wl, bx)
	fr := mhdFlux(ur, wr, bx)

	var f ctu3d.Cons1D
	f.D = 0.5*(fl.D+fr.D) - 0.5*smax*(ur.D-ul.D)
	f.Mx = 0.5*(fl.Mx+fr.Mx) - 0.5*smax*(ur.Mx-ul.Mx)
	f.My = 0.5*(fl.My+fr.My) - 0.5*smax*(ur.My-ul.My)
	f.Mz = 0.5*(fl.Mz+fr.Mz) - 0.5*smax*(ur.Mz-ul.Mz)
	f.E = 0.5*(fl.E+fr.E) - 0.5*smax*(ur.E-ul.E)
	f.By = 0.5*(fl.By+fr.By) - 0.5*smax*(ur.By-ul.By)
	f.Bz = 0.5*(fl.Bz+fr.Bz) - 0.5*smax*(ur.Bz-ul.Bz)
	if n := len(ul.S); n > 0 {
		f.S = make([]float64, n)
		for i := range f.S {
			f.S[i] = 0.5*(fl.S[i]+fr.S[i]) - 0.5*smax*(ur.S[i]-ul.S[i])
		}
	}
	return f
}

func demoCollaborators() ctu3d.Collaborators {
	return ctu3d.Collaborators{
		Reconstruct: reconstruct,
		ToPrim:      toPrim,
		ToCons:      toCons,
		Solve:       solve,
		FastSpeed:   fastMagnetosonic,
	}
}
