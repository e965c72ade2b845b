package aenet

import (
	"strconv"
	"strings"
	"testing"
)

func TestBehlerFingerprints(Te *testing.T) {
	B := &Behler{
		Cutoff:    6.5,
		G2Etas:    []float64{0.1, 0.2},
		G4Etas:    []float64{0.01},
		G4Lambdas: []float64{-1, 1},
		G4Zetas:   []float64{1, 4},
	}
	lines := B.Fingerprints([]string{"Ni", "P"})
	if lines[0] != "SYMMFUNC type=Behler2011" {
		Te.Fatalf("Wrong header: %q", lines[0])
	}
	count, err := strconv.Atoi(lines[1])
	if err != nil || count != len(lines)-2 {
		Te.Fatalf("Count line %q for %d records", lines[1], len(lines)-2)
	}
	var radial, angular int
	for _, v := range lines[2:] {
		switch {
		case strings.HasPrefix(v, "G=2"):
			radial++
		case strings.HasPrefix(v, "G=4"):
			angular++
		default:
			Te.Errorf("Unrecognized fingerprint record %q", v)
		}
	}
	//2 symbols x 2 radial etas
	if radial != 4 {
		Te.Errorf("Got %d radial records, want 4", radial)
	}
	//3 pairs x 1 eta x 2 lambdas x 2 zetas
	if angular != 12 {
		Te.Errorf("Got %d angular records, want 12", angular)
	}
	if lines[2] != "G=2  type2=Ni  eta=0.1  Rs=0  Rc=6.5" {
		Te.Errorf("First radial record: %q", lines[2])
	}
	first := "G=4  type2=Ni  type3=Ni  eta=0.01  lambda=-1  zeta=1  Rc=6.5"
	if lines[2+radial] != first {
		Te.Errorf("First angular record: %q", lines[2+radial])
	}
}

func TestBehlerPairEnumeration(Te *testing.T) {
	B := &Behler{
		Cutoff:    4.5,
		G2Etas:    []float64{0.05},
		G4Etas:    []float64{0.005},
		G4Lambdas: []float64{1},
		G4Zetas:   []float64{2},
	}
	lines := B.Fingerprints([]string{"A", "B", "C"})
	pairs := make([]string, 0, 6)
	for _, v := range lines[2:] {
		if strings.HasPrefix(v, "G=4") {
			fields := strings.Fields(v)
			pairs = append(pairs, fields[1]+" "+fields[2])
		}
	}
	want := []string{
		"type2=A type3=A", "type2=A type3=B", "type2=A type3=C",
		"type2=B type3=B", "type2=B type3=C", "type2=C type3=C",
	}
	if len(pairs) != len(want) {
		Te.Fatalf("Got %d pairs, want %d: %v", len(pairs), len(want), pairs)
	}
	for i, v := range want {
		if pairs[i] != v {
			Te.Errorf("Pair %d is %q, want %q", i, pairs[i], v)
		}
	}
}

func TestChebyshevDefaults(Te *testing.T) {
	lines := (&Chebyshev{}).Fingerprints([]string{"Ni", "P"})
	if len(lines) != 2 {
		Te.Fatalf("Chebyshev block has %d lines", len(lines))
	}
	if lines[0] != "BASIS type=Chebyshev" {
		Te.Errorf("Wrong header: %q", lines[0])
	}
	want := "radial_Rc = 4 radial_N = 6 angular_Rc = 4 angular_N = 2"
	if lines[1] != want {
		Te.Errorf("Defaults rendered as %q, want %q", lines[1], want)
	}
	set := (&Chebyshev{RadialCutoff: 8.0, RadialN: 16, AngularCutoff: 6.5, AngularN: 4}).Fingerprints(nil)
	want = "radial_Rc = 8 radial_N = 16 angular_Rc = 6.5 angular_N = 4"
	if set[1] != want {
		Te.Errorf("Set parameters rendered as %q, want %q", set[1], want)
	}
}
