package config

import "testing"

func TestScaleParamsKnown(t *testing.T) {
	p, err := ScaleSmall.Params()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Robots != 8 || p.Batteries != 20 || p.VehiclesPerHour != 10 {
		t.Errorf("ScaleSmall.Params() = %+v", p)
	}
}

func TestScaleParamsUnknown(t *testing.T) {
	if _, err := Scale("huge").Params(); err == nil {
		t.Error("expected error for unknown scale")
	}
}

func TestValidateRejectsUnknownPolicy(t *testing.T) {
	cfg := Default()
	cfg.Policy = "made_up_policy"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown policy")
	}
}

func TestValidateRejectsUnknownScale(t *testing.T) {
	cfg := Default()
	cfg.Scale = "huge"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown scale")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
