package validation

import (
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/spec"
)

func TestValidatePhysicsValid(t *testing.T) {
	r := ValidatePhysics(validSpec())
	if !r.Valid {
		t.Fatalf("expected valid report, got %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
	if len(r.Info) != 1 {
		t.Errorf("info = %d, want the working point summary", len(r.Info))
	}
}

func TestValidatePhysicsHotAirTemperature(t *testing.T) {
	s := validSpec()
	s.Gas = "hot_air"
	s.Material = "Nylon"
	s.Target = 3000
	s.InsideTempC = temp(10)
	r := ValidatePhysics(s)
	if !hasError(r, "inside_temp_c") {
		t.Errorf("expected inside_temp_c error, got %v", r.Errors)
	}
}

func TestValidatePhysicsHotAirInsideZero(t *testing.T) {
	s := validSpec()
	s.Gas = "hot_air"
	s.Material = "Nylon"
	s.Target = 3000
	s.InsideTempC = temp(0)
	r := ValidatePhysics(s)
	if !hasError(r, "inside_temp_c") {
		t.Errorf("0 °C inside a 15 °C day should fail, got %v", r.Errors)
	}
}

func temp(c float64) *float64 { return &c }

func TestValidatePhysicsNoLift(t *testing.T) {
	s := validSpec()
	s.WorkHeightM = 48000
	r := ValidatePhysics(s)
	if r.Valid {
		t.Fatal("expected no-lift error above the model ceiling")
	}
	if !hasError(r, "work_height_m") {
		t.Errorf("expected work_height_m error, got %v", r.Errors)
	}
	if !hasWarning(r, "work_height_m") {
		t.Errorf("expected troposphere warning, got %v", r.Warnings)
	}
}

func TestValidatePhysicsStratosphereWarning(t *testing.T) {
	s := validSpec()
	s.WorkHeightM = 15000
	r := ValidatePhysics(s)
	if !r.Valid {
		t.Fatalf("15 km helium should still lift: %v", r.Errors)
	}
	if !hasWarning(r, "work_height_m") {
		t.Errorf("expected troposphere warning, got %v", r.Warnings)
	}
}

func TestValidatePhysicsLowSafetyFactor(t *testing.T) {
	s := validSpec()
	s.Gas = "hot_air"
	s.Material = "HDPE"
	s.ThicknessUM = 1
	s.Target = 3000
	s.InsideTempC = temp(120)
	r := ValidatePhysics(s)
	if !hasWarning(r, "thickness_um") {
		t.Errorf("expected safety factor warning, got %v", r.Warnings)
	}
}

func TestValidatePhysicsHeavyEnvelope(t *testing.T) {
	s := validSpec()
	s.Target = 0.01
	s.ThicknessUM = 1000
	r := ValidatePhysics(s)
	if !hasWarning(r, "target") {
		t.Errorf("expected payload warning, got %v", r.Warnings)
	}
}

func TestValidateRunsPhysicsOnlyWhenSchemaPasses(t *testing.T) {
	s := validSpec()
	s.Material = "Kevlar"
	r := Validate(s)
	for _, e := range r.Errors {
		if e.Level != LevelSchema {
			t.Errorf("physics ran on an invalid schema: %+v", e)
		}
	}

	r = Validate(validSpec())
	if !r.Valid || len(r.Info) == 0 {
		t.Errorf("valid spec report = %+v", r)
	}
}

func TestValidatePhysicsPayloadMode(t *testing.T) {
	s := validSpec()
	s.Mode = spec.ModePayload
	s.Target = 2
	r := ValidatePhysics(s)
	if !r.Valid || len(r.Warnings) != 0 {
		t.Errorf("payload-mode report = %+v", r)
	}
}
