/*
 * lammps.go, part of goaenet.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package lammps writes LAMMPS data files and input scripts for molecular
//dynamics with a fitted potential. Only the atomic atom style and metal
//units are supported, which is what the aenet pair style expects.
package lammps

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	aenet "github.com/rmera/goaenet"
	"gonum.org/v1/gonum/mat"
)

//Box is a cell in the restricted triclinic form LAMMPS requires: the
//first lattice vector along x, the second in the xy plane.
type Box struct {
	Lx, Ly, Lz float64
	Xy, Xz, Yz float64
}

func dot(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

//NewBox rotates a general 3x3 cell (rows are lattice vectors) into the
//LAMMPS form. The cell must span a positive volume.
func NewBox(cell *mat.Dense) (*Box, error) {
	errid := "lammps.NewBox"
	a := cell.RawRowView(0)
	b := cell.RawRowView(1)
	c := cell.RawRowView(2)
	lx := math.Sqrt(dot(a, a))
	if lx == 0 {
		return nil, fmt.Errorf("%s: The first lattice vector is zero", errid)
	}
	xy := dot(a, b) / lx
	ly2 := dot(b, b) - xy*xy
	if ly2 <= 0 {
		return nil, fmt.Errorf("%s: The first two lattice vectors are collinear", errid)
	}
	ly := math.Sqrt(ly2)
	xz := dot(a, c) / lx
	yz := (dot(b, c) - xy*xz) / ly
	lz2 := dot(c, c) - xz*xz - yz*yz
	if lz2 <= 0 {
		return nil, fmt.Errorf("%s: The cell spans no volume", errid)
	}
	return &Box{Lx: lx, Ly: ly, Lz: math.Sqrt(lz2), Xy: xy, Xz: xz, Yz: yz}, nil
}

//Matrix returns the rotated cell as a 3x3 matrix, rows as lattice
//vectors.
func (B *Box) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		B.Lx, 0, 0,
		B.Xy, B.Ly, 0,
		B.Xz, B.Yz, B.Lz,
	})
}

//Orthogonal reports whether all three tilt factors are negligible, in
//which case the tilt line is left out of the data file.
func (B *Box) Orthogonal() bool {
	eps := 1e-10 * (B.Lx + B.Ly + B.Lz)
	return math.Abs(B.Xy) < eps && math.Abs(B.Xz) < eps && math.Abs(B.Yz) < eps
}

//Kinds returns the atom kinds of a structure in LAMMPS type order, which
//is the order of first appearance. The same order must be given to the
//pair source so that pair_coeff and the data file agree.
func Kinds(S *aenet.Structure) []string {
	return S.Symbols()
}

//DataFile writes S to w as a LAMMPS data file for the atomic atom style.
//The cell is rotated to the restricted triclinic form LAMMPS requires,
//and the coordinates with it. Every element in S needs a mass in the
//internal table.
func DataFile(w io.Writer, S *aenet.Structure) error {
	errid := "lammps.DataFile"
	if err := S.Corrupted(); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	box, err := NewBox(S.Cell)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	kinds := Kinds(S)
	kindIndex := make(map[string]int, len(kinds))
	for i, v := range kinds {
		kindIndex[v] = i + 1
	}
	//rotated coordinates: fractional in the old cell, Cartesian in the new
	var inv mat.Dense
	if err := inv.Inverse(S.Cell); err != nil {
		return fmt.Errorf("%s: Singular cell: %w", errid, err)
	}
	var frac, rot mat.Dense
	frac.Mul(S.Coords, &inv)
	rot.Mul(&frac, box.Matrix())
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", S.Label)
	fmt.Fprintf(&b, "%d atoms\n", S.Len())
	fmt.Fprintf(&b, "%d atom types\n\n", len(kinds))
	fmt.Fprintf(&b, "0.0 %.6f xlo xhi\n", box.Lx)
	fmt.Fprintf(&b, "0.0 %.6f ylo yhi\n", box.Ly)
	fmt.Fprintf(&b, "0.0 %.6f zlo zhi\n", box.Lz)
	if !box.Orthogonal() {
		fmt.Fprintf(&b, "%.6f %.6f %.6f xy xz yz\n", box.Xy, box.Xz, box.Yz)
	}
	b.WriteString("\nMasses\n\n")
	for i, v := range kinds {
		m, err := aenet.Mass(v)
		if err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
		fmt.Fprintf(&b, "%d %v  # %s\n", i+1, m, v)
	}
	b.WriteString("\nAtoms  # atomic\n\n")
	for i, at := range S.Atoms {
		fmt.Fprintf(&b, "%d %d %.6f %.6f %.6f\n", i+1, kindIndex[at.Symbol], rot.At(i, 0), rot.At(i, 1), rot.At(i, 2))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

//DataFileWrite writes S as a LAMMPS data file with the given name.
func DataFileWrite(name string, S *aenet.Structure) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("lammps.DataFileWrite: %w", err)
	}
	defer f.Close()
	err = DataFile(f, S)
	if err != nil {
		return fmt.Errorf("lammps.DataFileWrite: %w", err)
	}
	return nil
}
