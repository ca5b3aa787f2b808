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

func testIntegratorWithPotential(t *testing.T, phi func(x1, x2, x3 float64) float64) *Integrator {
	t.Helper()
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.1}
	col := testCollaborators()
	col.Potential = phi
	col.CellPos = func(i, j, k int) (float64, float64, float64) {
		return float64(i), float64(j), float64(k)
	}
	it, err := NewIntegrator(dom, DefaultConfig(), col, true, false)
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func TestCellPhiZeroWithoutPotential(t *testing.T) {
	it := testIntegratorWithPotential(t, nil)
	if v := it.cellPhi(5, 5, 5); v != 0 {
		t.Errorf("cellPhi with no Potential = %g, want 0", v)
	}
}

func TestCellPhiLinearPotential(t *testing.T) {
	it := testIntegratorWithPotential(t, func(x1, x2, x3 float64) float64 { return x1 })
	if v := it.cellPhi(5, 5, 7); v != 7 {
		t.Errorf("cellPhi(x1=7) = %g, want 7", v)
	}
}

func TestFacePhiOffsetsHalfSpacing(t *testing.T) {
	it := testIntegratorWithPotential(t, func(x1, x2, x3 float64) float64 { return x1 })
	if v := it.facePhi(Dir1, 5, 5, 7); v != 6.5 {
		t.Errorf("facePhi(Dir1) at i=7 = %g, want 6.5 (half a cell to the left)", v)
	}
	if v := it.facePhi(Dir2, 5, 5, 7); v != 7 {
		t.Errorf("facePhi(Dir2) should not offset x1, got %g want 7", v)
	}
}

func TestPredictorCoolingDpDisabled(t *testing.T) {
	it := testIntegratorWithPotential(t, nil)
	if v := it.predictorCoolingDp(1, 1); v != 0 {
		t.Errorf("predictorCoolingDp with no Cooling = %g, want 0", v)
	}
}

func TestShearingBoxPredictorDisabled(t *testing.T) {
	it := testIntegratorWithPotential(t, nil)
	dvx, dvy := it.shearingBoxPredictor(1, 1)
	if dvx != 0 || dvy != 0 {
		t.Errorf("shearingBoxPredictor without ShearingBox = (%g,%g), want (0,0)", dvx, dvy)
	}
}

func TestShearingBoxPredictorCoriolis(t *testing.T) {
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.5}
	cfg := DefaultConfig()
	cfg.ShearingBox = true
	cfg.Omega = 2.0
	col := testCollaborators()
	col.CellPos = func(i, j, k int) (float64, float64, float64) { return float64(i), float64(j), float64(k) }
	it, err := NewIntegrator(dom, cfg, col, false, false)
	if err != nil {
		t.Fatal(err)
	}
	dvx, dvy := it.shearingBoxPredictor(0, 3)
	wantDvx := 0.5 * 2.0 * 3.0
	wantDvy := -0.5 * 2.0 * 3.0
	if math.Abs(dvx-wantDvx) > 1e-12 || math.Abs(dvy-wantDvy) > 1e-12 {
		t.Errorf("shearingBoxPredictor(0,3) = (%g,%g), want (%g,%g)", dvx, dvy, wantDvx, wantDvy)
	}

	cfg.Fargo = true
	it2, err := NewIntegrator(dom, cfg, col, false, false)
	if err != nil {
		t.Fatal(err)
	}
	_, dvyFargo := it2.shearingBoxPredictor(4, 3)
	wantFargo := -0.25 * 0.5 * 2.0 * 4.0
	if math.Abs(dvyFargo-wantFargo) > 1e-12 {
		t.Errorf("Fargo shearingBoxPredictor dvy = %g, want %g", dvyFargo, wantFargo)
	}
}

func TestCrankNicholsonShearBoxPreservesBackgroundShear(t *testing.T) {
	dom := Domain{Is: 4, Ie: 9, Js: 4, Je: 9, Ks: 4, Ke: 9, NGhost: 4, Dx1: 1, Dx2: 1, Dx3: 1, Dt: 0.1}
	cfg := DefaultConfig()
	cfg.ShearingBox = true
	cfg.Omega = 1.5
	col := testCollaborators()
	col.CellPos = func(i, j, k int) (float64, float64, float64) { return float64(i), float64(j), float64(k) }
	it, err := NewIntegrator(dom, cfg, col, false, false)
	if err != nil {
		t.Fatal(err)
	}
	d, x1 := 1.0, 2.0
	m2Background := -cfg.Omega * x1 * d
	m1, m2 := it.crankNicholsonShearBox(0, m2Background, d, x1)
	if math.Abs(m1) > 1e-9 {
		t.Errorf("a cell exactly on the background shear should see zero radial momentum kick, got m1=%g", m1)
	}
	if math.Abs(m2-m2Background) > 1e-9 {
		t.Errorf("a cell exactly on the background shear should be unperturbed, got m2=%g want %g", m2, m2Background)
	}
}
