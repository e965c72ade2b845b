package lammps

import (
	"fmt"
	"math"
	"strings"
	"testing"

	aenet "github.com/rmera/goaenet"
	"gonum.org/v1/gonum/mat"
)

func testStructure(Te *testing.T) *aenet.Structure {
	atoms := []*aenet.Atom{{Symbol: "Ni", Id: 1}, {Symbol: "P", Id: 2}}
	cell := mat.NewDense(3, 3, []float64{5, 0, 0, 0, 5, 0, 0, 0, 5})
	coords := mat.NewDense(2, 3, []float64{0, 0, 0, 2.5, 2.5, 2.5})
	forces := mat.NewDense(2, 3, []float64{0.01, 0, 0, -0.01, 0, 0})
	S, err := aenet.NewStructure("NiP-test", -1541.42, atoms, cell, coords, forces)
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

func TestNewBox(Te *testing.T) {
	//an fcc primitive cell, which is triclinic in the LAMMPS sense
	a := 3.52
	cell := mat.NewDense(3, 3, []float64{
		0, a / 2, a / 2,
		a / 2, 0, a / 2,
		a / 2, a / 2, 0,
	})
	box, err := NewBox(cell)
	if err != nil {
		Te.Fatal(err)
	}
	if box.Orthogonal() {
		Te.Error("An fcc primitive cell reported as orthogonal")
	}
	//the rotation must preserve the cell volume
	vol := box.Lx * box.Ly * box.Lz
	want := mat.Det(cell)
	if math.Abs(vol-math.Abs(want)) > 1e-9 {
		Te.Errorf("Rotated cell volume %v, want %v", vol, want)
	}
	fmt.Println("box:", box)
	bad := mat.NewDense(3, 3, []float64{1, 0, 0, 2, 0, 0, 0, 0, 1})
	if _, err := NewBox(bad); err == nil {
		Te.Error("Expected an error for collinear lattice vectors")
	}
}

func TestDataFile(Te *testing.T) {
	S := testStructure(Te)
	var b strings.Builder
	if err := DataFile(&b, S); err != nil {
		Te.Fatal(err)
	}
	text := b.String()
	fmt.Println(text)
	want := []string{
		"# NiP-test",
		"2 atoms",
		"2 atom types",
		"0.0 5.000000 xlo xhi",
		"0.0 5.000000 ylo yhi",
		"0.0 5.000000 zlo zhi",
		"Masses",
		"1 58.693  # Ni",
		"2 30.974  # P",
		"Atoms  # atomic",
		"1 1 0.000000 0.000000 0.000000",
		"2 2 2.500000 2.500000 2.500000",
	}
	for _, w := range want {
		if !strings.Contains(text, w) {
			Te.Errorf("Data file lacks the line %q", w)
		}
	}
	if strings.Contains(text, "xy xz yz") {
		Te.Error("An orthogonal cell got a tilt line")
	}
	S.Atoms[1].Symbol = "Xx"
	if err := DataFile(&strings.Builder{}, S); err == nil {
		Te.Error("Expected an error for an element with no tabulated mass")
	}
}

func TestInputScript(Te *testing.T) {
	pair := &EmpiricalPair{Style: "eam/alloy", Coeffs: []string{"* * NiP.eam.alloy Ni P"}}
	in := &Input{DataFile: "data.nip", Pair: pair, Kinds: []string{"Ni", "P"}}
	lines, err := in.Script()
	if err != nil {
		Te.Fatal(err)
	}
	text := strings.Join(lines, "\n")
	fmt.Println(text)
	want := []string{
		"units           metal",
		"atom_style      atomic",
		"read_data       data.nip",
		"pair_style      eam/alloy",
		"pair_coeff      * * NiP.eam.alloy Ni P",
		"run             1000",
	}
	for _, w := range want {
		if !strings.Contains(text, w) {
			Te.Errorf("Script lacks the line %q", w)
		}
	}
	if _, err := (&Input{}).Script(); err == nil {
		Te.Error("Expected an error for an input with no data file")
	}
}
