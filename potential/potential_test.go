package potential

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	aenet "github.com/rmera/goaenet"
)

func testFiles() map[string][]byte {
	return map[string][]byte{
		"Ni.nn": []byte("fake nickel network payload"),
		"P.nn":  []byte("fake phosphorus network payload"),
	}
}

func TestNew(Te *testing.T) {
	P, err := New("", []string{"Ni", "P"}, testFiles(), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if P.ID == "" {
		Te.Error("New did not assign an id")
	}
	if len(P.Sums) != 2 || P.Sums["Ni.nn"] == "" {
		Te.Errorf("Checksums not computed: %v", P.Sums)
	}
	if err := P.Verify(); err != nil {
		Te.Error(err)
	}
	P.Files["Ni.nn"] = []byte("tampered")
	if err := P.Verify(); err == nil {
		Te.Error("Verify accepted a tampered payload")
	}
	if _, err := New("", []string{"Ni", "P", "O"}, testFiles(), nil); err == nil {
		Te.Error("Expected an error for a missing network file")
	}
}

func TestPairLines(Te *testing.T) {
	P, err := New("", []string{"Ni", "P"}, testFiles(), nil)
	if err != nil {
		Te.Fatal(err)
	}
	lines := P.PairLines(nil)
	fmt.Println(strings.Join(lines, "\n"))
	if lines[0] != "pair_style      aenet" {
		Te.Errorf("pair_style line: %q", lines[0])
	}
	if lines[1] != "pair_coeff      * * v-1 Ni P nn Ni P" {
		Te.Errorf("pair_coeff line: %q", lines[1])
	}
}

func TestArchiveRoundTrip(Te *testing.T) {
	curve := &aenet.TrainingCurve{
		Converged: true,
		Epochs: []aenet.Epoch{
			{N: 0, TrainMAE: 0.4, TrainRMSE: 0.6, TestMAE: 0.5, TestRMSE: 0.7},
			{N: 1, TrainMAE: 0.2, TrainRMSE: 0.3, TestMAE: math.NaN(), TestRMSE: math.NaN()},
		},
	}
	P, err := New("pot-1", []string{"Ni", "P"}, testFiles(), curve)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "nip.pot")
	if err := P.Save(name); err != nil {
		Te.Fatal(err)
	}
	Q, err := Load(name)
	if err != nil {
		Te.Fatal(err)
	}
	if Q.ID != "pot-1" {
		Te.Errorf("id changed in the round trip: %q", Q.ID)
	}
	if string(Q.Files["P.nn"]) != "fake phosphorus network payload" {
		Te.Error("payload changed in the round trip")
	}
	if Q.Curve == nil || !Q.Curve.Converged || Q.Curve.Len() != 2 {
		Te.Fatalf("curve lost in the round trip: %+v", Q.Curve)
	}
	if !math.IsNaN(Q.Curve.Epochs[1].TestRMSE) {
		Te.Error("NaN metric did not survive the manifest")
	}
	if err := Q.Verify(); err != nil {
		Te.Error(err)
	}
}

func TestWriteFilesAndFromDir(Te *testing.T) {
	dir := Te.TempDir()
	P, err := New("", []string{"Ni", "P"}, testFiles(), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := P.WriteFiles(dir); err != nil {
		Te.Fatal(err)
	}
	Q, err := FromDir(dir, []string{"Ni", "P"}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	for name, sum := range P.Sums {
		if Q.Sums[name] != sum {
			Te.Errorf("Checksum of %s changed through the directory: %s vs %s", name, Q.Sums[name], sum)
		}
	}
	if _, err := FromDir(dir, []string{"Ni", "P", "O"}, nil); err == nil {
		Te.Error("Expected an error for a missing network file in the directory")
	}
}
