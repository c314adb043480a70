package services

import (
	"strings"
	"testing"
)

func TestGenerateEntityCodeUniqueInTightLoop(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := generateEntityCode("Paracetamol Tablet")
		if seen[code] {
			t.Fatalf("duplicate code %q after %d generations", code, i)
		}
		seen[code] = true
	}
}

func TestGenerateEntityCodePrefix(t *testing.T) {
	code := generateEntityCode("Amoxicillin 500mg")
	if !strings.HasPrefix(code, "AMOXICIL-") {
		t.Errorf("code = %q, want AMOXICIL- prefix", code)
	}

	code = generateEntityCode("!!!")
	if !strings.HasPrefix(code, "MED-") {
		t.Errorf("code for non-alphanumeric name = %q, want MED- prefix", code)
	}
}
