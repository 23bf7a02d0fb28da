package palette

import "testing"

func TestDefaultPalette(t *testing.T) {
	p := Default()
	if len(p) != 6 {
		t.Fatalf("expected 6 colors, got %d", len(p))
	}

	if _, err := Parse(p); err != nil {
		t.Errorf("default palette failed to parse: %v", err)
	}

	// Callers get a copy, not the shared slice.
	p[0] = "#000000"
	if Default()[0] == "#000000" {
		t.Error("mutation leaked into the default palette")
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		hexes []string
	}{
		{"missing hash", []string{"f4b8c4"}},
		{"wrong length", []string{"#f4b8c"}},
		{"not hex", []string{"#zzzzzz"}},
		{"empty entry", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.hexes); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	colors, err := Parse([]string{"#ff0000", "#00ff00", "#0000ff"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(colors) != 3 {
		t.Fatalf("expected 3 colors, got %d", len(colors))
	}
	if colors[0].Hex() != "#ff0000" {
		t.Errorf("expected #ff0000, got %s", colors[0].Hex())
	}
}

func TestPastelGeneration(t *testing.T) {
	p := Pastel(10)
	if len(p) != 10 {
		t.Fatalf("expected 10 colors, got %d", len(p))
	}

	if _, err := Parse(p); err != nil {
		t.Errorf("generated palette failed to parse: %v", err)
	}

	seen := map[string]bool{}
	for _, h := range p {
		if seen[h] {
			t.Errorf("duplicate generated color %s", h)
		}
		seen[h] = true
	}
}
