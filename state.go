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

// State is the cell-centered conserved fluid state of spec.md §3, sampled
// in the fixed Cartesian (1,2,3) frame. E and the scalar slice are only
// meaningful when the owning Grid's Config says so (hasEnergy, NScalars).
type State struct {
	D          float64 // density
	M1, M2, M3 float64 // momentum components
	E          float64 // total energy (present iff non-barotropic)
	B1c, B2c   float64 // cell-centered magnetic field (present iff MHD)
	B3c        float64
	S          []float64 // passive scalars, length Config.NScalars
}

// Prim is the cell-centered primitive fluid state: density, velocity,
// thermal pressure, cell-centered B, and passive scalar concentrations.
// Conversion to/from State is the external collaborator's job
// (Cons1D_to_Prim1D / Prim1D_to_Cons1D in the rotated frame); Prim exists
// in the grid frame only for diagnostics (dhalf/phalf) and test problem
// generators.
type Prim struct {
	D          float64
	V1, V2, V3 float64
	P          float64
	B1c, B2c   float64
	B3c        float64
	S          []float64
}

func newState(nscalars int) State {
	return State{S: make([]float64, nscalars)}
}

// clone returns a deep copy of s, since S is a slice.
func (s State) clone() State {
	s2 := s
	if len(s.S) > 0 {
		s2.S = append([]float64(nil), s.S...)
	}
	return s2
}
