package utils

import "testing"

func TestRandomMaterialColorsDeterministic(t *testing.T) {
	a := RandomMaterialColors(42, 8)
	b := RandomMaterialColors(42, 8)
	if len(a) != 8 {
		t.Fatalf("len = %d; expected 8", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("color %d differs between runs: %v vs %v", i, a[i], b[i])
		}
		for c := 0; c < 3; c++ {
			if a[i][c] < 0.4 || a[i][c] > 1.0 {
				t.Errorf("color %d channel %d = %f outside [0.4, 1]", i, c, a[i][c])
			}
		}
		if a[i][3] != 1.0 {
			t.Errorf("color %d alpha = %f; expected 1", i, a[i][3])
		}
	}
}

func TestRandomNameGeneratorUnique(t *testing.T) {
	var rng RandomNameGenerator
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		name := rng.RandomName()
		if name == "" {
			t.Fatal("empty name")
		}
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true
	}
}
