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
	"strings"
	"testing"
)

const shockTubeTOML = `
Kind = "shocktube"
Nx1 = 8
Nx2 = 2
Nx3 = 2
NGhost = 4
Dx1 = 1.0
Dx2 = 1.0
Dx3 = 1.0
Dt = 0.01

D = 1.0
V1 = 0.0
V2 = 0.0
V3 = 0.0
P = 1.0

DR = 0.125
V1R = 0.0
V2R = 0.0
V3R = 0.0
PR = 0.1

[Config]
Gamma = 1.6666666666666667
CourantNumber = 0.8
`

func TestLoadProblemConfig(t *testing.T) {
	pc, err := LoadProblemConfig(strings.NewReader(shockTubeTOML))
	if err != nil {
		t.Fatalf("LoadProblemConfig: %v", err)
	}
	if pc.Kind != "shocktube" {
		t.Errorf("Kind = %q, want shocktube", pc.Kind)
	}
	if pc.Nx1 != 8 || pc.NGhost != 4 {
		t.Errorf("Nx1/NGhost = %d/%d, want 8/4", pc.Nx1, pc.NGhost)
	}
	if pc.Config.Gamma < 1.66 || pc.Config.Gamma > 1.67 {
		t.Errorf("Config.Gamma = %g, want ~5/3", pc.Config.Gamma)
	}
}

func TestLoadProblemConfigRejectsBadTOML(t *testing.T) {
	if _, err := LoadProblemConfig(strings.NewReader("this is not = [valid")); err == nil {
		t.Error("LoadProblemConfig should reject malformed TOML")
	}
}

func TestProblemConfigDomain(t *testing.T) {
	pc, err := LoadProblemConfig(strings.NewReader(shockTubeTOML))
	if err != nil {
		t.Fatal(err)
	}
	dom := pc.Domain()
	if dom.Is != 4 || dom.Ie != 11 {
		t.Errorf("Domain() x1 bounds = [%d,%d], want [4,11]", dom.Is, dom.Ie)
	}
	if dom.NGhost != 4 {
		t.Errorf("Domain().NGhost = %d, want 4", dom.NGhost)
	}
}

func TestProblemConfigBuildShockTube(t *testing.T) {
	pc, err := LoadProblemConfig(strings.NewReader(shockTubeTOML))
	if err != nil {
		t.Fatal(err)
	}
	g, err := pc.Build(func(d, v1, v2, v3, p, b1, b2, b3, gamma float64) (m1, m2, m3, e float64) {
		w := Prim1D{D: d, Vx: v1, Vy: v2, Vz: v3, P: p, By: b2, Bz: b3}
		u := testToCons(w, b1, gamma)
		return u.Mx, u.My, u.Mz, u.E
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	left := g.State(5, 5, 5)  // i=5, well inside the left half
	right := g.State(5, 5, 10) // i=10, well inside the right half
	if left.D != pc.D {
		t.Errorf("left-state D = %g, want %g", left.D, pc.D)
	}
	if right.D != pc.DR {
		t.Errorf("right-state D = %g, want %g", right.D, pc.DR)
	}
}

func TestProblemConfigBuildWaveIsPeriodicInDensity(t *testing.T) {
	doc := strings.Replace(shockTubeTOML, `Kind = "shocktube"`, `Kind = "wave"`, 1)
	doc = strings.Replace(doc, "[Config]", "WaveAmplitude = 0.1\nWaveNumber = 1.0\n\n[Config]", 1)
	pc, err := LoadProblemConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	g, err := pc.Build(func(d, v1, v2, v3, p, b1, b2, b3, gamma float64) (m1, m2, m3, e float64) {
		w := Prim1D{D: d, Vx: v1, Vy: v2, Vz: v3, P: p, By: b2, Bz: b3}
		u := testToCons(w, b1, gamma)
		return u.Mx, u.My, u.Mz, u.E
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d0 := g.D.At(5, 5, 4)  // first interior cell, phase 0: perturbation 0
	if d0 != pc.D {
		t.Errorf("wave seed at phase 0: D = %g, want background %g", d0, pc.D)
	}
}
