package money_test

import (
	"testing"

	"github.com/amirasaad/fintrack/pkg/money"
)

// FuzzMinorUnitsRoundTrip checks that rendering then parsing minor units is lossless.
func FuzzMinorUnitsRoundTrip(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(256075))
	f.Add(int64(-12050))
	f.Add(int64(1))

	f.Fuzz(func(t *testing.T, cents int64) {
		s := money.MinorUnitsToString(cents)
		got, err := money.ParseMinorUnits(s)
		if err != nil {
			t.Fatalf("ParseMinorUnits(%q) failed: %v", s, err)
		}
		if got != cents {
			t.Errorf("round trip changed value: %d -> %q -> %d", cents, s, got)
		}
	})
}
