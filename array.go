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

import "github.com/ctessum/sparse"

// Array3 is a dense, bounds-checked (k,j,i)-indexed 3-D scalar field,
// backed by the same dense-array type the teacher's meteorological grids
// use for their own regular (layer, row, column) data
// (bitbucket.org/ctessum/sparse.DenseArray in lib.aim/wrf2inmap). Every
// scratch and grid field named in spec.md §3 (U's components, B1i/B2i/B3i,
// emf1/2/3, eta1/2/3, dhalf/phalf) is one of these.
type Array3 struct {
	d *sparse.DenseArray
}

// NewArray3 allocates a zeroed array of shape (nk, nj, ni).
func NewArray3(nk, nj, ni int) *Array3 {
	return &Array3{d: sparse.ZerosDense(nk, nj, ni)}
}

// At returns the value at (k,j,i).
func (a *Array3) At(k, j, i int) float64 { return a.d.Get(k, j, i) }

// Set stores val at (k,j,i).
func (a *Array3) Set(k, j, i int, val float64) { a.d.Set(val, k, j, i) }

// Add adds val to the existing value at (k,j,i).
func (a *Array3) Add(k, j, i int, val float64) { a.d.AddVal(val, k, j, i) }

// Shape returns the (nk, nj, ni) extents.
func (a *Array3) Shape() (nk, nj, ni int) {
	s := a.d.GetShape()
	return s[0], s[1], s[2]
}

// Scale multiplies every element by val.
func (a *Array3) Scale(val float64) { a.d.Scale(val) }

// MaxAbs returns the maximum absolute element value, the L-infinity
// reduction Grid.MaxDivB uses for the divergence-diagnostic "phase 0" of
// SPEC_FULL.md §2.
func (a *Array3) MaxAbs() float64 { return a.d.AbsMax() }

// Zero resets every element to 0.
func (a *Array3) Zero() {
	for i := range a.d.Elements {
		a.d.Elements[i] = 0
	}
}
