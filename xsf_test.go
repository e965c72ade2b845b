/*
 * xsf_test.go
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package aenet

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//testStructure returns a small NiP cell with forces and a reference energy.
func testStructure(label string) *Structure {
	atoms := []*Atom{
		{Symbol: "Ni", Id: 1},
		{Symbol: "Ni", Id: 2},
		{Symbol: "P", Id: 3},
	}
	cell := mat.NewDense(3, 3, []float64{
		3.52, 0.0, 0.0,
		0.0, 3.52, 0.0,
		0.0, 0.0, 3.52,
	})
	coords := mat.NewDense(3, 3, []float64{
		0.0, 0.0, 0.0,
		1.76, 1.76, 0.0,
		1.76, 0.0, 1.76,
	})
	forces := mat.NewDense(3, 3, []float64{
		0.01, -0.02, 0.0,
		-0.01, 0.02, 0.0,
		0.0, 0.0, -0.003,
	})
	S, err := NewStructure(label, -4676.3936784796315, atoms, cell, coords, forces)
	if err != nil {
		panic(err.Error())
	}
	return S
}

func TestXSFWrite(Te *testing.T) {
	S := testStructure("nip_test")
	var b strings.Builder
	err := XSFWrite(&b, S)
	if err != nil {
		Te.Fatal(err)
	}
	text := b.String()
	fmt.Println(text)
	for _, keyword := range []string{"CRYSTAL", "PRIMVEC", "PRIMCOORD"} {
		if !strings.Contains(text, keyword+"\n") {
			Te.Errorf("XSF text lacks the %s keyword", keyword)
		}
	}
	if !strings.Contains(text, "# total energy = -4676.3936784796315 eV") {
		Te.Error("XSF text lacks the energy comment")
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	//the coordinate lines are everything after "N 1"
	start := 0
	for i, v := range lines {
		if v == fmt.Sprintf("%d 1", S.Len()) {
			start = i + 1
			break
		}
	}
	if start == 0 {
		Te.Fatal("XSF text lacks the atom count line")
	}
	coordlines := lines[start:]
	if len(coordlines) != S.Len() {
		Te.Fatalf("Got %d coordinate lines for %d atoms", len(coordlines), S.Len())
	}
	for _, v := range coordlines {
		fields := strings.Fields(v)
		if len(fields) != 7 {
			Te.Fatalf("Coordinate line %q has %d fields, want symbol plus 6", v, len(fields))
		}
		for _, f := range fields[1:] {
			point := strings.Index(f, ".")
			if point < 0 || len(f)-point-1 != 12 {
				Te.Errorf("Field %q does not have 12 decimals", f)
			}
		}
	}
}

func TestXSFMissingForces(Te *testing.T) {
	S := testStructure("forceless")
	S.Forces = nil
	var b strings.Builder
	err := XSFWrite(&b, S)
	if err == nil {
		Te.Fatal("Expected an error when writing a structure without forces")
	}
	var missing *MissingForceDataError
	if !errors.As(err, &missing) {
		Te.Fatalf("Expected a *MissingForceDataError, got %T: %v", err, err)
	}
	if missing.Structure != "forceless" {
		Te.Errorf("The error names structure %q", missing.Structure)
	}
}

func TestXSFRoundTrip(Te *testing.T) {
	S := testStructure("roundtrip")
	var b strings.Builder
	err := XSFWrite(&b, S)
	if err != nil {
		Te.Fatal(err)
	}
	S2, err := XSFRead(strings.NewReader(b.String()))
	if err != nil {
		Te.Fatal(err)
	}
	if S2.Label != S.Label {
		Te.Errorf("Label %q read back as %q", S.Label, S2.Label)
	}
	if S2.Len() != S.Len() {
		Te.Fatalf("%d atoms read back as %d", S.Len(), S2.Len())
	}
	if S2.Energy != S.Energy {
		Te.Errorf("Energy %v read back as %v", S.Energy, S2.Energy)
	}
	if !mat.EqualApprox(S.Coords, S2.Coords, 1e-10) {
		Te.Error("Coordinates changed in the round trip")
	}
	if S2.Forces == nil || !mat.EqualApprox(S.Forces, S2.Forces, 1e-10) {
		Te.Error("Forces changed in the round trip")
	}
	for i, v := range S2.Atoms {
		if v.Symbol != S.Atoms[i].Symbol {
			Te.Errorf("Atom %d symbol %q read back as %q", i, S.Atoms[i].Symbol, v.Symbol)
		}
	}
}

func TestXSFFileNames(Te *testing.T) {
	names := XSFFileNames(12)
	if names[0] != "01.xsf" || names[11] != "12.xsf" {
		Te.Errorf("12 structures named %s ... %s", names[0], names[11])
	}
	if XSFFileName(3, 5) != "3.xsf" {
		Te.Errorf("Name for 3 of 5: %s", XSFFileName(3, 5))
	}
	if XSFFileName(7, 100) != "007.xsf" {
		Te.Errorf("Name for 7 of 100: %s", XSFFileName(7, 100))
	}
}
