package aenet

import (
	"fmt"
	"strings"
	"testing"
)

func testElements() []*Element {
	net := []Layer{{Nodes: 2, Activation: "tanh"}, {Nodes: 2, Activation: "tanh"}}
	return []*Element{
		{Symbol: "Ni", Energy: -4676.3936784796315, Network: net},
		{Symbol: "P", Energy: -194.14828627169916, Network: net},
	}
}

func TestNewAlgorithmDefaults(Te *testing.T) {
	A, err := NewAlgorithm(testElements(), &Chebyshev{}, &BFGS{})
	if err != nil {
		Te.Fatal(err)
	}
	if !A.Debug || !A.Timing || !A.SaveEnergies {
		Te.Error("The logging flags should default to on")
	}
	if A.TestPercent != 10 || A.Epochs != 10 || A.MaxEnergy != 0.0 || A.RMin != 0.75 {
		Te.Errorf("Wrong defaults: %d%% test, %d epochs, maxE %v, rmin %v",
			A.TestPercent, A.Epochs, A.MaxEnergy, A.RMin)
	}
	if A.PredictForces || A.PredictRelax != "" {
		Te.Error("The prediction flags should default to off")
	}
	symbols := A.Symbols()
	if len(symbols) != 2 || symbols[0] != "Ni" || symbols[1] != "P" {
		Te.Errorf("Symbols came back as %v", symbols)
	}
	if A.Element("P") == nil || A.Element("Au") != nil {
		Te.Error("Element lookup is wrong")
	}
	fmt.Println(A.String())
}

func TestNewAlgorithmRejects(Te *testing.T) {
	els := testElements()
	if _, err := NewAlgorithm(nil, &Chebyshev{}, &BFGS{}); err == nil {
		Te.Error("An empty element list should be rejected")
	}
	if _, err := NewAlgorithm(els, nil, &BFGS{}); err == nil {
		Te.Error("A nil descriptor should be rejected")
	}
	twice := append(els, &Element{Symbol: "Ni"})
	if _, err := NewAlgorithm(twice, &Chebyshev{}, &BFGS{}); err == nil {
		Te.Error("A repeated element should be rejected")
	}
}

func TestCheckStructure(Te *testing.T) {
	A, err := NewAlgorithm(testElements(), &Chebyshev{}, &BFGS{})
	if err != nil {
		Te.Fatal(err)
	}
	S := testStructure("known")
	if err := A.CheckStructure(S); err != nil {
		Te.Error(err)
	}
	S.Atoms[0].Symbol = "Au"
	err = A.CheckStructure(S)
	if err == nil {
		Te.Fatal("A structure with an unparameterized element should be rejected")
	}
	if !strings.Contains(err.Error(), "Au") {
		Te.Errorf("The error does not name the element: %v", err)
	}
}

func TestTrainingMethodLines(Te *testing.T) {
	if lines := (&BFGS{}).MethodLines(); len(lines) != 1 || lines[0] != "bfgs" {
		Te.Errorf("BFGS method lines: %v", lines)
	}
	lm := (&LM{}).MethodLines()
	wantlm := "lm batchsize=5000 learn_rate=0.1 rate_adjust=5 optimize_iterations=3 converge_threshold=0.001"
	if len(lm) != 1 || lm[0] != wantlm {
		Te.Errorf("LM defaults rendered as %v", lm)
	}
	gd := (&GD{MomentumRate: 0.1}).MethodLines()
	wantgd := "gd learn_rate=0.003 momentum_rate=0.1"
	if len(gd) != 1 || gd[0] != wantgd {
		Te.Errorf("GD method lines: %v", gd)
	}
}

func TestNetworkTokens(Te *testing.T) {
	E := testElements()[0]
	tokens := E.NetworkTokens()
	if len(tokens) != 2 || tokens[0] != "2:tanh" || tokens[1] != "2:tanh" {
		Te.Errorf("Network tokens: %v", tokens)
	}
	if E.NetworkFile() != "Ni.nn" {
		Te.Errorf("Network file name: %s", E.NetworkFile())
	}
}
