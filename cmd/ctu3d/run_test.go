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
	"testing"
)

func TestOmegaFromPeriodConvertsSecondsToRadPerSecond(t *testing.T) {
	got, err := omegaFromPeriod(2 * math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("omegaFromPeriod(2*pi) = %g, want 1", got)
	}
}

func TestOmegaFromPeriodRejectsZero(t *testing.T) {
	if _, err := omegaFromPeriod(0); err == nil {
		t.Error("omegaFromPeriod(0) should fail, a zero period is not a valid orbit")
	}
}
