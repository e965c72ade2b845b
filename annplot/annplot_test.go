package annplot

import (
	"math"
	"os"
	"testing"

	aenet "github.com/rmera/goaenet"
)

func TestCurve(Te *testing.T) {
	c := &aenet.TrainingCurve{Epochs: []aenet.Epoch{
		{N: 0, TrainMAE: 0.5, TrainRMSE: 0.7, TestMAE: 0.6, TestRMSE: 0.8},
		{N: 1, TrainMAE: 0.3, TrainRMSE: 0.4, TestMAE: 0.35, TestRMSE: 0.5},
		{N: 2, TrainMAE: 0.1, TrainRMSE: 0.2, TestMAE: math.NaN(), TestRMSE: math.NaN()},
		{N: 3, TrainMAE: 0.05, TrainRMSE: 0.1, TestMAE: 0.1, TestRMSE: 0.15},
	}}
	name := Te.TempDir() + "/curve"
	if err := Curve(c, "test fit", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Errorf("Curve did not produce %s.png: %v", name, err)
	}
	if err := Curve(&aenet.TrainingCurve{}, "empty", name); err == nil {
		Te.Error("Expected an error for an empty curve")
	}
}

func TestParity(Te *testing.T) {
	res := aenet.Results{
		{ID: "a", NAtoms: 2, Energy: -10.1},
		{ID: "b", NAtoms: 2, Energy: -9.8},
		{ID: "c", NAtoms: 2, Energy: -10.6},
	}
	refs := []float64{-10.0, -9.9, -10.5}
	name := Te.TempDir() + "/parity"
	if err := Parity(res, refs, "validation", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Errorf("Parity did not produce %s.png: %v", name, err)
	}
	if err := Parity(res, refs[:2], "bad", name); err == nil {
		Te.Error("Expected an error for mismatched lengths")
	}
}
