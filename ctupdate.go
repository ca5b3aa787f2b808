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

// This file implements the constrained-transport face-B update of
// spec.md §4.3, used both as the half-step update (phase 3, writing into
// it.bHalf) and the full-step update (phase 8, writing directly into
// the grid's B1i/B2i/B3i). Both are the same discrete curl of the edge
// EMFs; only the source field, destination field and time weight differ.

// ctHalfStep runs phase 3: it advances the face-centered B one half
// time step using the edge EMFs computed by phase 2 from the first-pass
// fluxes, storing the result in it.bHalf rather than mutating the grid.
func (it *Integrator) ctHalfStep(g *Grid) {
	if !it.cfg.MHD {
		return
	}
	q1 := 0.5 * it.dom.Dt / it.dom.Dx1
	q2 := 0.5 * it.dom.Dt / it.dom.Dx2
	q3 := 0.5 * it.dom.Dt / it.dom.Dx3
	it.ctUpdate(g.B1i, g.B2i, g.B3i, it.bHalf[0], it.bHalf[1], it.bHalf[2], q1, q2, q3)
}

// ctFullStep runs phase 8: it advances the face-centered B the full time
// step using the edge EMFs recomputed by phase 2 from the second-pass
// fluxes, mutating the grid's face fields in place.
func (it *Integrator) ctFullStep(g *Grid) {
	if !it.cfg.MHD {
		return
	}
	q1 := it.dom.Dt / it.dom.Dx1
	q2 := it.dom.Dt / it.dom.Dx2
	q3 := it.dom.Dt / it.dom.Dx3
	it.ctUpdate(g.B1i, g.B2i, g.B3i, g.B1i, g.B2i, g.B3i, q1, q2, q3)
}

// ctUpdate applies spec.md §4.3's discrete Faraday update
//
//	B1i' = B1i + q3*(emf2[k+1][j][i]-emf2[k][j][i]) - q2*(emf3[k][j+1][i]-emf3[k][j][i])
//	B2i' = B2i + q1*(emf3[k][j][i+1]-emf3[k][j][i]) - q3*(emf1[k+1][j][i]-emf1[k][j][i])
//	B3i' = B3i + q2*(emf1[k][j+1][i]-emf1[k][j][i]) - q1*(emf2[k][j][i+1]-emf2[k][j][i])
//
// reading the old face field from (b1old,b2old,b3old) and writing the
// updated field into (b1new,b2new,b3new); the two may be the same arrays
// (full step) or distinct ones (half step). Each face array's own staggered
// (normal) axis already runs one face past the interior; spec.md §4.3 also
// requires the two transverse axes be updated one layer outside the
// interior, so every loop below carries a "+1" bound on its two transverse
// indices in addition to the normal axis's own extra face.
func (it *Integrator) ctUpdate(b1old, b2old, b3old, b1new, b2new, b3new *Array3, q1, q2, q3 float64) {
	dom := it.dom

	for k := dom.Ks; k <= dom.Ke+1; k++ {
		for j := dom.Js; j <= dom.Je+1; j++ {
			for i := dom.Is; i <= dom.Ie+1; i++ {
				v := b1old.At(k, j, i) +
					q3*(it.emf2.At(k+1, j, i)-it.emf2.At(k, j, i)) -
					q2*(it.emf3.At(k, j+1, i)-it.emf3.At(k, j, i))
				b1new.Set(k, j, i, v)
			}
		}
	}
	for k := dom.Ks; k <= dom.Ke+1; k++ {
		for j := dom.Js; j <= dom.Je+1; j++ {
			for i := dom.Is; i <= dom.Ie+1; i++ {
				v := b2old.At(k, j, i) +
					q1*(it.emf3.At(k, j, i+1)-it.emf3.At(k, j, i)) -
					q3*(it.emf1.At(k+1, j, i)-it.emf1.At(k, j, i))
				b2new.Set(k, j, i, v)
			}
		}
	}
	for k := dom.Ks; k <= dom.Ke+1; k++ {
		for j := dom.Js; j <= dom.Je+1; j++ {
			for i := dom.Is; i <= dom.Ie+1; i++ {
				v := b3old.At(k, j, i) +
					q2*(it.emf1.At(k, j+1, i)-it.emf1.At(k, j, i)) -
					q1*(it.emf2.At(k, j, i+1)-it.emf2.At(k, j, i))
				b3new.Set(k, j, i, v)
			}
		}
	}
}
