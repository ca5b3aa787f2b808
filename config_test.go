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

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate, got %v", err)
	}
}

func TestConfigValidateFargoRequiresShearingBox(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fargo = true
	if err := cfg.Validate(); err == nil {
		t.Error("Fargo without ShearingBox should fail validation")
	}
	cfg.ShearingBox = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Fargo with ShearingBox should validate, got %v", err)
	}
}

func TestConfigValidateNegativeScalars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NScalars = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative NScalars should fail validation")
	}
}

func TestConfigValidateBadGamma(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gamma = 1
	if err := cfg.Validate(); err == nil {
		t.Error("Gamma <= 1 on a non-barotropic config should fail validation")
	}
	cfg.Barotropic = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Gamma <= 1 on a barotropic config should validate, got %v", err)
	}
}

func TestConfigHasEnergy(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.hasEnergy() {
		t.Error("non-barotropic config should have energy")
	}
	cfg.Barotropic = true
	if cfg.hasEnergy() {
		t.Error("barotropic config should not have energy")
	}
}

func TestConfigNeedsHalfStep(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.needsHalfStep(false, false) {
		t.Error("plain hydro with no potential/cooling should not need the half-step pass")
	}
	if !cfg.needsHalfStep(true, false) {
		t.Error("a static potential should force the half-step pass")
	}
	if !cfg.needsHalfStep(false, true) {
		t.Error("cooling should force the half-step pass")
	}
	cfg.MHD = true
	if !cfg.needsHalfStep(false, false) {
		t.Error("MHD should force the half-step pass")
	}
}
