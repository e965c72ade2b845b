package calc

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	aenet "github.com/rmera/goaenet"
)

func TestPredictInput(Te *testing.T) {
	A := testAlgorithm(Te)
	A.PredictForces = true
	A.PredictRelax = "0.01 99 T T T"
	lines, err := PredictInput(A, []string{"1.xsf", "2.xsf"})
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(strings.Join(lines, "\n"))
	want := []string{
		"TYPES",
		"2",
		"Ni",
		"P",
		"",
		"NETWORKS",
		"Ni   Ni.nn",
		"P    P.nn",
		"",
		"FORCES",
		"RELAX",
		"0.01 99 T T T",
		"TIMING",
		"",
		"FILES",
		"2",
		"1.xsf",
		"2.xsf",
	}
	if len(lines) != len(want) {
		Te.Fatalf("Expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i] != w {
			Te.Errorf("predict.in line %d: got %q, want %q", i, lines[i], w)
		}
	}
	_, err = PredictInput(A, []string{})
	var emptyerr *aenet.EmptyReferenceSetError
	if !errors.As(err, &emptyerr) {
		Te.Errorf("Expected an EmptyReferenceSetError for an empty reference set, got %v", err)
	}
}

func predictOutput(blocks int) string {
	lines := []string{
		" predict.x preamble",
		" Reading input file predict.in",
		"",
		" Energy evaluation",
		"",
	}
	for i := 0; i < blocks; i++ {
		lines = append(lines,
			fmt.Sprintf(" Structure number  : %d", i+1),
			fmt.Sprintf(" Number of atoms   :       %d", 24+i),
			"",
			" Lattice parameters etc",
			fmt.Sprintf(" Total energy               :   %.8f eV", -4676.39367848-float64(i)),
			"",
		)
	}
	lines = append(lines, " Atomic Energy Network done.")
	return strings.Join(lines, "\n") + "\n"
}

func TestReadPredictions(Te *testing.T) {
	path := writeTestOutput(Te, "predict.out", predictOutput(3))
	ids := []string{"run-a", "run-b", "run-c"}
	res, err := ReadPredictions(path, ids)
	if err != nil {
		Te.Fatal(err)
	}
	if len(res) != 3 {
		Te.Fatalf("Expected 3 predictions, got %d", len(res))
	}
	m := res.Map()
	if m["run-a"].NAtoms != 24 || m["run-c"].NAtoms != 26 {
		Te.Errorf("Wrong atom counts: %+v", res)
	}
	if m["run-b"].Energy != -4677.39367848 {
		Te.Errorf("Wrong energy for run-b: %v", m["run-b"].Energy)
	}
	for i, id := range ids {
		if res[i].ID != id {
			Te.Errorf("Result %d out of order: got %s, want %s", i, res[i].ID, id)
		}
	}
	fmt.Println(res.Energies())
}

//Three structures submitted but only two energies in the output must be
//reported, not silently truncated.
func TestPredictionCountMismatch(Te *testing.T) {
	text := predictOutput(3)
	cut := strings.Replace(text, " Total energy               :   -4678.39367848 eV\n", "", 1)
	if cut == text {
		Te.Fatal("Fixture surgery failed, the energy line to remove was not found")
	}
	path := writeTestOutput(Te, "predict.out", cut)
	_, err := ReadPredictions(path, []string{"a", "b", "c"})
	var mismatch *aenet.ResultCountMismatchError
	if !errors.As(err, &mismatch) {
		Te.Fatalf("Expected a ResultCountMismatchError, got %v", err)
	}
	if mismatch.Want != 3 || mismatch.Got != 2 {
		Te.Errorf("Wrong counts in the error: %+v", mismatch)
	}
	fmt.Println(err)
}

func TestPredictionsNoEvaluation(Te *testing.T) {
	path := writeTestOutput(Te, "predict.out", " just a greeting\n and nothing else\n")
	_, err := ReadPredictions(path, []string{"a"})
	var malformed *aenet.MalformedOutputError
	if !errors.As(err, &malformed) {
		Te.Fatalf("Expected a MalformedOutputError, got %v", err)
	}
}
