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
	"math"
	"testing"
)

// testGamma is the adiabatic index used throughout this file's fixtures.
const testGamma = 5. / 3.

func testToPrim(u Cons1D, bx, gamma float64) Prim1D {
	d := u.D
	vx, vy, vz := u.Mx/d, u.My/d, u.Mz/d
	ke := 0.5 * d * (vx*vx + vy*vy + vz*vz)
	magP := 0.5 * (bx*bx + u.By*u.By + u.Bz*u.Bz)
	p := (gamma - 1) * (u.E - ke - magP)
	return Prim1D{D: d, Vx: vx, Vy: vy, Vz: vz, P: p, By: u.By, Bz: u.Bz, S: u.S}
}

func testToCons(w Prim1D, bx, gamma float64) Cons1D {
	ke := 0.5 * w.D * (w.Vx*w.Vx + w.Vy*w.Vy + w.Vz*w.Vz)
	magP := 0.5 * (bx*bx + w.By*w.By + w.Bz*w.Bz)
	e := w.P/(gamma-1) + ke + magP
	return Cons1D{D: w.D, Mx: w.D * w.Vx, My: w.D * w.Vy, Mz: w.D * w.Vz, E: e, By: w.By, Bz: w.Bz, S: w.S}
}

func testFastSpeed(u Cons1D, bx, gamma float64) float64 {
	w := testToPrim(u, bx, gamma)
	a2 := gamma * w.P / w.D
	va2 := (bx*bx + w.By*w.By + w.Bz*w.Bz) / w.D
	vax2 := bx * bx / w.D
	disc := (a2+va2)*(a2+va2) - 4*a2*vax2
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt(0.5 * (a2 + va2 + math.Sqrt(disc)))
}

// testReconstruct is donor-cell (piecewise-constant) reconstruction.
func testReconstruct(w []Prim1D, bxc []float64, dt, dtodx float64, lo, hi int, wl, wr []Prim1D) {
	for m := lo; m <= hi+1; m++ {
		wl[m] = w[m-1]
		wr[m] = w[m]
	}
}

func testMHDFlux(u Cons1D, w Prim1D, bx float64) Cons1D {
	pStar := w.P + 0.5*(bx*bx+w.By*w.By+w.Bz*w.Bz)
	var f Cons1D
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

// testSolve is a Rusanov flux, the same family the CLI's demo uses.
func testSolve(ul, ur Cons1D, wl, wr Prim1D, bx, etah, gamma float64) Cons1D {
	cfL := testFastSpeed(ul, bx, gamma)
	cfR := testFastSpeed(ur, bx, gamma)
	smax := math.Max(math.Abs(wl.Vx)+cfL, math.Abs(wr.Vx)+cfR)
	if etah > smax {
		smax = etah
	}
	fl := testMHDFlux(ul, wl, bx)
	fr := testMHDFlux(ur, wr, bx)
	var f Cons1D
	f.D = 0.5*(fl.D+fr.D) - 0.5*smax*(ur.D-ul.D)
	f.Mx = 0.5*(fl.Mx+fr.Mx) - 0.5*smax*(ur.Mx-ul.Mx)
	f.My = 0.5*(fl.My+fr.My) - 0.5*smax*(ur.My-ul.My)
	f.Mz = 0.5*(fl.Mz+fr.Mz) - 0.5*smax*(ur.Mz-ul.Mz)
	f.E = 0.5*(fl.E+fr.E) - 0.5*smax*(ur.E-ul.E)
	f.By = 0.5*(fl.By+fr.By) - 0.5*smax*(ur.By-ul.By)
	f.Bz = 0.5*(fl.Bz+fr.Bz) - 0.5*smax*(ur.Bz-ul.Bz)
	return f
}

func testCollaborators() Collaborators {
	return Collaborators{
		Reconstruct: testReconstruct,
		ToPrim:      testToPrim,
		ToCons:      testToCons,
		Solve:       testSolve,
		FastSpeed:   testFastSpeed,
	}
}

func fillUniform(g *Grid, d, v1, v2, v3, p, b1, b2, b3 float64) {
	n3, n2, n1 := g.D.Shape()
	w := Prim1D{D: d, Vx: v1, Vy: v2, Vz: v3, P: p, By: b2, Bz: b3}
	u := testToCons(w, b1, testGamma)
	for k := 0; k < n3; k++ {
		for j := 0; j < n2; j++ {
			for i := 0; i < n1; i++ {
				s := State{D: u.D, M1: u.Mx, M2: u.My, M3: u.Mz, E: u.E}
				if g.Cfg.MHD {
					s.B1c, s.B2c, s.B3c = b1, b2, b3
				}
				g.SetState(k, j, i, s)
			}
		}
	}
	if g.Cfg.MHD {
		n3, n2, n1 = g.B1i.Shape()
		for k := 0; k < n3; k++ {
			for j := 0; j < n2; j++ {
				for i := 0; i < n1; i++ {
					g.B1i.Set(k, j, i, b1)
				}
			}
		}
		n3, n2, n1 = g.B2i.Shape()
		for k := 0; k < n3; k++ {
			for j := 0; j < n2; j++ {
				for i := 0; i < n1; i++ {
					g.B2i.Set(k, j, i, b2)
				}
			}
		}
		n3, n2, n1 = g.B3i.Shape()
		for k := 0; k < n3; k++ {
			for j := 0; j < n2; j++ {
				for i := 0; i < n1; i++ {
					g.B3i.Set(k, j, i, b3)
				}
			}
		}
	}
}

func TestStepHydroUniformStateIsSteady(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parallel = false
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.01}
	g, err := NewGrid(dom, cfg)
	if err != nil {
		t.Fatal(err)
	}
	fillUniform(g, 1.0, 0, 0, 0, 1.0, 0, 0, 0)

	it, err := NewIntegrator(dom, cfg, testCollaborators(), false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	before := g.State(6, 6, 6)
	it.Step(g)
	after := g.State(6, 6, 6)

	const tol = 1e-9
	if math.Abs(after.D-before.D) > tol || math.Abs(after.M1-before.M1) > tol ||
		math.Abs(after.M2-before.M2) > tol || math.Abs(after.M3-before.M3) > tol ||
		math.Abs(after.E-before.E) > tol {
		t.Fatalf("a uniform hydro state should be an exact steady state, before=%+v after=%+v", before, after)
	}
}

func TestStepMHDUniformStateIsSteadyAndDivBFree(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MHD = true
	cfg.Parallel = false
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.01}
	g, err := NewGrid(dom, cfg)
	if err != nil {
		t.Fatal(err)
	}
	fillUniform(g, 1.0, 0, 0, 0, 1.0, 0.5, 0, 0)

	it, err := NewIntegrator(dom, cfg, testCollaborators(), false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	before := g.State(6, 6, 6)
	it.Step(g)
	after := g.State(6, 6, 6)

	const tol = 1e-9
	if math.Abs(after.D-before.D) > tol || math.Abs(after.B1c-before.B1c) > tol {
		t.Fatalf("a uniform MHD state should be an exact steady state, before=%+v after=%+v", before, after)
	}
	if max := g.MaxDivB(); max > tol {
		t.Errorf("MaxDivB() after a steady step = %g, want ~0", max)
	}
}

// TestStepSelfGravityWritesBackMassFluxToGrid checks spec.md §4.7's "the
// x_d full-step mass fluxes must be written back to the grid so the
// caller can apply a second-order flux correction next step": with
// Cfg.SelfGravity set, a caller must be able to read g.MassFlux1/2/3 after
// Step, not just have the integrator compute them internally and drop
// them.
func TestStepSelfGravityWritesBackMassFluxToGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SelfGravity = true
	cfg.Parallel = false
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.01}
	g, err := NewGrid(dom, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if g.MassFlux1 == nil || g.MassFlux2 == nil || g.MassFlux3 == nil {
		t.Fatal("NewGrid with Cfg.SelfGravity should allocate MassFlux1/2/3")
	}
	fillUniform(g, 1.0, 0.3, 0, 0, 1.0, 0, 0, 0)

	it, err := NewIntegrator(dom, cfg, testCollaborators(), false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	it.Step(g)

	const tol = 1e-9
	if got := g.MassFlux1.At(6, 6, 6); math.Abs(got-0.3) > tol {
		t.Errorf("g.MassFlux1 after Step = %g, want 0.3 (d*v1 of the uniform x1 flow)", got)
	}
	if got := g.MassFlux2.At(6, 6, 6); math.Abs(got) > tol {
		t.Errorf("g.MassFlux2 after Step = %g, want 0", got)
	}
	if got := g.MassFlux3.At(6, 6, 6); math.Abs(got) > tol {
		t.Errorf("g.MassFlux3 after Step = %g, want 0", got)
	}
}

func TestNewGridWithoutSelfGravityLeavesMassFluxNil(t *testing.T) {
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.01}
	g, err := NewGrid(dom, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if g.MassFlux1 != nil || g.MassFlux2 != nil || g.MassFlux3 != nil {
		t.Error("NewGrid without Cfg.SelfGravity should leave MassFlux1/2/3 nil")
	}
}

// TestSecondPassSolveUsesHalfStepFaceBNotGridFaceB is a regression test for
// the second-pass Riemann solve's normal-B input (spec.md §3's bHalf
// scratch, consumed per §4.6): secondPassSolve must read it.bHalf, the
// half-step predicted face field phase 3 produced, not the grid's t^n
// g.B1i/B2i/B3i (which phase 8 has not yet touched at the time phase 7
// runs). A spatially uniform B can never distinguish the two sources since
// bHalf trivially equals the original field everywhere, so this seeds a
// non-uniform bHalf that disagrees with g.B1i at the probed face and
// checks the resulting flux only matches a reference solve against bHalf.
func TestSecondPassSolveUsesHalfStepFaceBNotGridFaceB(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MHD = true
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.01}
	g, err := NewGrid(dom, cfg)
	if err != nil {
		t.Fatal(err)
	}
	fillUniform(g, 1.0, 0.1, -0.2, 0.05, 1.0, 0.4, 0.2, -0.1)

	it, err := NewIntegrator(dom, cfg, testCollaborators(), false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()

	k, j, i := 6, 6, 6
	w0 := Prim1D{D: 1.0, Vx: 0.1, Vy: -0.2, Vz: 0.05, P: 1.0, By: 0.2, Bz: -0.1}
	it.ul[Dir1][k][j][i] = testToCons(w0, 0.4, cfg.Gamma)
	it.ur[Dir1][k][j][i] = testToCons(w0, 0.4, cfg.Gamma)
	ul := it.ul[Dir1][k][j][i]
	ur := it.ur[Dir1][k][j][i]

	// Disagree the grid's t^n face-B from the half-step predicted face-B
	// at the probed face; secondPassSolve must use the latter.
	g.B1i.Set(k, j, i, 0.4)
	it.bHalf[Dir1].Set(k, j, i, 0.9)

	it.secondPassSolve(g, Dir1)
	got := it.flux[Dir1][k][j][i]

	wantBx := 0.9
	wl := it.col.ToPrim(ul, wantBx, cfg.Gamma)
	wr := it.col.ToPrim(ur, wantBx, cfg.Gamma)
	want := it.col.Solve(ul, ur, wl, wr, wantBx, 0, cfg.Gamma)

	const tol = 1e-12
	if math.Abs(got.D-want.D) > tol || math.Abs(got.Mx-want.Mx) > tol || math.Abs(got.By-want.By) > tol {
		t.Fatalf("secondPassSolve flux = %+v, want %+v computed from bHalf (not g.B1i)", got, want)
	}

	// Sanity check the regression actually distinguishes the two sources:
	// solving with the grid's (wrong) t^n field must give a different flux.
	wrongBx := 0.4
	wlWrong := it.col.ToPrim(ul, wrongBx, cfg.Gamma)
	wrWrong := it.col.ToPrim(ur, wrongBx, cfg.Gamma)
	wrong := it.col.Solve(ul, ur, wlWrong, wrWrong, wrongBx, 0, cfg.Gamma)
	if math.Abs(wrong.Mx-want.Mx) < tol {
		t.Fatal("test fixture does not distinguish g.B1i from it.bHalf; strengthen the probe")
	}
}

func TestNewIntegratorRejectsMissingCollaborators(t *testing.T) {
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.01}
	if _, err := NewIntegrator(dom, DefaultConfig(), Collaborators{}, false, false); err == nil {
		t.Error("NewIntegrator with no collaborators should fail")
	}
}

func TestNewIntegratorRejectsHCorrectionWithoutFastSpeed(t *testing.T) {
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.01}
	cfg := DefaultConfig()
	cfg.HCorrection = true
	col := testCollaborators()
	col.FastSpeed = nil
	if _, err := NewIntegrator(dom, cfg, col, false, false); err == nil {
		t.Error("NewIntegrator with HCorrection and no FastSpeed should fail")
	}
}

func TestNewIntegratorRejectsShearingBoxWithoutCellPos(t *testing.T) {
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.01}
	cfg := DefaultConfig()
	cfg.ShearingBox = true
	cfg.Omega = 1
	if _, err := NewIntegrator(dom, cfg, testCollaborators(), false, false); err == nil {
		t.Error("NewIntegrator with ShearingBox and no CellPos should fail")
	}
}
