package ratings

import "testing"

func TestDeriveClampsAndDefaults(t *testing.T) {
	out := Derive(map[string]float64{})
	if len(out) != len(Table) {
		t.Fatalf("expected %d derived abilities, got %d", len(Table), len(out))
	}
	for k, v := range out {
		if v < 0 || v > 100 {
			t.Fatalf("%s out of range: %v", k, v)
		}
	}
}

func TestDeriveOverdrivenCoefficientsStillClamp(t *testing.T) {
	raw := map[string]float64{
		"Speed with Ball": 100, "Ball Handle": 100, "Agility": 100, "Layup": 100,
		"Shot IQ": 100, "Offensive Consistency": 100, "Strength": 100, "Hands": 100,
		"Pass IQ": 100, "Speed": 100, "Vertical": 100, "Stamina": 100,
	}
	out := Derive(raw)
	for _, name := range []string{"DRIVE_CREATE", "HANDLE_SAFE", "FIRST_STEP"} {
		if out[name] != 100 {
			t.Fatalf("%s: expected clamp to 100, got %v", name, out[name])
		}
	}
}

func TestDeriveMissingRatingDefaultsTo50(t *testing.T) {
	out := Derive(map[string]float64{"Free Throw": 80})
	if out["FT_SHOOT"] != 80 {
		t.Fatalf("expected FT_SHOOT=80, got %v", out["FT_SHOOT"])
	}
	if out["PHYSICAL"] <= 0 {
		t.Fatalf("expected default-derived PHYSICAL to be computed from defaults, got %v", out["PHYSICAL"])
	}
}
