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

import "errors"

// Per spec.md §7 and §9, these are caller-contract violations: they are
// returned by NewGrid/NewIntegrator rather than panicking, since they are
// detectable in advance of any array access, but they are not part of the
// "recoverable variation" spec.md §7 says is otherwise absent from the
// core's runtime behavior.
var (
	errRequiredCollaborator = errors.New("ctu3d: Reconstruct, ToPrim, ToCons, and Solve must all be non-nil")
	errMissingFastSpeed     = errors.New("ctu3d: Config.HCorrection requires a non-nil FastSpeed collaborator")
	errMissingCellPos       = errors.New("ctu3d: a non-nil Potential or Config.ShearingBox requires a non-nil CellPos collaborator")
	errGhostTooNarrow       = errors.New("ctu3d: nghost must be >= 4 (Design Notes §9 stencil-extent requirement)")
	errBadExtents           = errors.New("ctu3d: grid extents must be positive")
)
