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

// Package ctu3d implements the three-dimensional unsplit Corner Transport
// Upwind integrator for ideal magnetohydrodynamics on a uniform
// logically-Cartesian grid, with a constrained-transport magnetic field
// update. Given cell-centered conserved fluid quantities and face-centered
// magnetic fields at time t, Step advances them to t+dt while preserving
// the discrete solenoidal constraint on B to machine precision.
//
// The Riemann solver, the one-dimensional reconstruction routine, the fast
// magnetosonic speed function, ghost-cell exchange and physical boundary
// conditions, and the self-gravity Poisson solve are external
// collaborators; this package only specifies its interface with them.
package ctu3d
