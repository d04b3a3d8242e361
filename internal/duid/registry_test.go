package duid

import (
	"testing"

	"github.com/aristath/nem-sentinel/internal/domain"
)

func TestLookupKnownDUID(t *testing.T) {
	entry, ok := Lookup("HPRL1")
	if !ok {
		t.Fatal("expected HPRL1 to be registered")
	}
	if entry.Region != domain.SA1 {
		t.Fatalf("expected SA1, got %v", entry.Region)
	}
	if entry.FuelCategory != domain.FuelBattery {
		t.Fatalf("expected battery fuel category, got %v", entry.FuelCategory)
	}
}

func TestLookupUnknownDUID(t *testing.T) {
	_, ok := Lookup("NOT_A_REAL_UNIT")
	if ok {
		t.Fatal("expected unregistered unit to report not found")
	}
}

func TestLenMatchesTableSize(t *testing.T) {
	if Len() == 0 {
		t.Fatal("expected a non-empty registry")
	}
}

// TestBatteryCoverageIsMeaningful guards against the registry regressing to
// a handful of battery DUIDs, which starves the completeness validator's
// battery-unit sub-check and the fuel-mix rollup of real units to count.
func TestBatteryCoverageIsMeaningful(t *testing.T) {
	batteries := 0
	for _, e := range table {
		if e.FuelCategory == domain.FuelBattery {
			batteries++
		}
	}
	if batteries < 25 {
		t.Fatalf("expected at least 25 registered battery DUIDs, got %d", batteries)
	}
}
