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
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"
)

// ProblemConfig is the TOML-loadable description of a synthetic test
// problem, per SPEC_FULL.md §6: the CLI binds this to NewGrid the same way
// the teacher's cmd/inmap binds a VarGridConfig loaded from its own config
// file.
type ProblemConfig struct {
	Kind string // "constant", "wave", or "shocktube"

	Nx1, Nx2, Nx3 int
	NGhost        int
	Dx1, Dx2, Dx3 float64
	Dt            float64

	Config Config

	// Background state, also the left state for "shocktube".
	D, V1, V2, V3, P float64
	B1, B2, B3       float64

	// Right state for "shocktube"; ignored otherwise.
	DR, V1R, V2R, V3R, PR float64
	B1R, B2R, B3R         float64

	// WaveAmplitude/WaveNumber parameterize "wave": a sinusoidal density
	// perturbation advected along x1 at the background velocity.
	WaveAmplitude float64
	WaveNumber    float64
}

// LoadProblemConfig decodes a ProblemConfig from r, following the same
// toml.DecodeReader idiom the teacher's cmd/inmapweb/main.go and
// emissions/slca test fixtures use.
func LoadProblemConfig(r io.Reader) (*ProblemConfig, error) {
	var pc ProblemConfig
	if _, err := toml.DecodeReader(r, &pc); err != nil {
		return nil, fmt.Errorf("ctu3d: decoding problem config: %w", err)
	}
	return &pc, nil
}

// Domain builds the Domain this problem describes, with interior index
// origin at NGhost.
func (pc *ProblemConfig) Domain() Domain {
	ng := pc.NGhost
	return Domain{
		Is: ng, Ie: ng + pc.Nx1 - 1,
		Js: ng, Je: ng + pc.Nx2 - 1,
		Ks: ng, Ke: ng + pc.Nx3 - 1,
		NGhost: ng,
		Dx1:    pc.Dx1, Dx2: pc.Dx2, Dx3: pc.Dx3,
		Dt: pc.Dt,
	}
}

// Build allocates a Grid for this problem and seeds every cell (including
// ghosts, so a caller without its own boundary exchange still has a
// consistent state to step) according to Kind:
//
//   - "constant": the background (D,V,P,B) everywhere, scenario C of
//     spec.md §8 (the grid should remain exactly steady to round-off).
//   - "wave": the background state with a sinusoidal density perturbation
//     along x1, scenario B (linear wave convergence).
//   - "shocktube": the background state on the low half of x1 and the
//     "R"-suffixed state on the high half, the Ryu & Jones 2a MHD
//     shocktube of scenario A.
//
// toCons is the caller's PrimToCons collaborator evaluated in the grid
// (un-rotated) frame, since problem seeding has no notion of sweep
// direction: given (d,v1,v2,v3,p,b1,b2,b3,gamma) it returns (m1,m2,m3,e).
func (pc *ProblemConfig) Build(toCons func(d, v1, v2, v3, p, b1, b2, b3, gamma float64) (m1, m2, m3, e float64)) (*Grid, error) {
	dom := pc.Domain()
	g, err := NewGrid(dom, pc.Config)
	if err != nil {
		return nil, err
	}
	gamma := pc.Config.Gamma
	nk, nj, ni := g.D.Shape()
	mid := dom.Is + dom.nx1()/2

	for k := 0; k < nk; k++ {
		for j := 0; j < nj; j++ {
			for i := 0; i < ni; i++ {
				d, v1, v2, v3, p := pc.D, pc.V1, pc.V2, pc.V3, pc.P
				b1, b2, b3 := pc.B1, pc.B2, pc.B3

				switch pc.Kind {
				case "wave":
					x1 := float64(i-dom.Is) * dom.Dx1
					phase := 2 * math.Pi * pc.WaveNumber * x1 / (float64(dom.nx1()) * dom.Dx1)
					d += pc.WaveAmplitude * math.Sin(phase)
				case "shocktube":
					if i >= mid {
						d, v1, v2, v3, p = pc.DR, pc.V1R, pc.V2R, pc.V3R, pc.PR
						b1, b2, b3 = pc.B1R, pc.B2R, pc.B3R
					}
				}

				m1, m2, m3, e := toCons(d, v1, v2, v3, p, b1, b2, b3, gamma)
				s := newState(g.Cfg.NScalars)
				s.D, s.M1, s.M2, s.M3 = d, m1, m2, m3
				if g.Cfg.hasEnergy() {
					s.E = e
				}
				if g.Cfg.MHD {
					s.B1c, s.B2c, s.B3c = b1, b2, b3
				}
				g.SetState(k, j, i, s)

				if g.Cfg.MHD {
					g.B1i.Set(k, j, i, b1)
					g.B2i.Set(k, j, i, b2)
					g.B3i.Set(k, j, i, b3)
				}
			}
		}
	}
	if g.Cfg.MHD {
		// Fill the one extra staggered face each direction's B1i/B2i/B3i
		// carries beyond the cell-centered extent, per grid.go's shape
		// convention; a uniform background field makes every face equal
		// to its neighboring cells' value, so this is exact for
		// "constant" and "wave" and only approximate (first-order) at
		// the shocktube's single discontinuous face, acceptable for a
		// synthetic seed a caller's own boundary exchange will refine.
		for k := 0; k < nk; k++ {
			for j := 0; j < nj; j++ {
				g.B1i.Set(k, j, ni, g.B1i.At(k, j, ni-1))
			}
		}
		for k := 0; k < nk; k++ {
			for i := 0; i < ni; i++ {
				g.B2i.Set(k, nj, i, g.B2i.At(k, nj-1, i))
			}
		}
		for j := 0; j < nj; j++ {
			for i := 0; i < ni; i++ {
				g.B3i.Set(nk, j, i, g.B3i.At(nk-1, j, i))
			}
		}
	}
	return g, nil
}
