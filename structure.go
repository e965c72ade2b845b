/*
 * structure.go, part of goaenet.
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

package aenet

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Atom contains the information for one atom of a structure, except for its
//coordinates and forces, which are kept in matrices in the Structure.
type Atom struct {
	Symbol string //chemical symbol, e.g. "Ni"
	Id     int    //1-based index, the order in which aenet numbers atoms
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	Newat.Symbol = A.Symbol
	Newat.Id = A.Id
	return Newat
}

//Structure represents one periodic reference structure: a crystal cell with
//atoms, their Cartesian coordinates and, when available, the forces on them,
//plus the total energy of the configuration. It is the unit of reference
//data consumed by generate.x and predict.x.
type Structure struct {
	Label  string
	Energy float64    //reference total energy, in eV
	Atoms  []*Atom    //one entry per atom, in file order
	Cell   *mat.Dense //3x3 matrix, each row a lattice vector, in A
	Coords *mat.Dense //Nx3 Cartesian coordinates, in A
	Forces *mat.Dense //Nx3 forces in eV/A, or nil when not known
}

//NewStructure builds a Structure from its parts after checking that their
//shapes agree: cell must be 3x3, coords Nx3 with N the number of atoms, and
//forces either nil or shaped like coords.
func NewStructure(label string, energy float64, atoms []*Atom, cell, coords, forces *mat.Dense) (*Structure, error) {
	const errid = "NewStructure"
	if atoms == nil || cell == nil || coords == nil {
		return nil, fmt.Errorf("%s: Supplied a nil atom list, cell or coordinates", errid)
	}
	cr, cc := cell.Dims()
	if cr != 3 || cc != 3 {
		return nil, fmt.Errorf("%s: the cell of %s is %dx%d, must be 3x3", errid, label, cr, cc)
	}
	r, c := coords.Dims()
	if c != 3 {
		return nil, fmt.Errorf("%s: coordinates of %s have %d columns, must have 3", errid, label, c)
	}
	if r != len(atoms) {
		return nil, fmt.Errorf("%s: %s has %d atoms but %d coordinate rows", errid, label, len(atoms), r)
	}
	if forces != nil {
		fr, fc := forces.Dims()
		if fr != r || fc != 3 {
			return nil, fmt.Errorf("%s: forces of %s are %dx%d, must be %dx3", errid, label, fr, fc, r)
		}
	}
	S := new(Structure)
	S.Label = label
	S.Energy = energy
	S.Atoms = atoms
	S.Cell = cell
	S.Coords = coords
	S.Forces = forces
	return S, nil
}

//Structure methods

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

//Symbols returns the distinct element symbols present in the structure, in
//order of first appearance.
func (S *Structure) Symbols() []string {
	seen := make(map[string]bool, 4)
	ret := make([]string, 0, 4)
	for _, v := range S.Atoms {
		if !seen[v.Symbol] {
			seen[v.Symbol] = true
			ret = append(ret, v.Symbol)
		}
	}
	return ret
}

//Corrupted checks the internal consistency of the structure and returns an
//error describing the first problem found, or nil.
func (S *Structure) Corrupted() error {
	if S == nil {
		return fmt.Errorf("Attempted to use a nil Structure")
	}
	if S.Cell == nil || S.Coords == nil || S.Atoms == nil {
		return fmt.Errorf("Structure %s is missing its cell, coordinates or atoms", S.Label)
	}
	cr, cc := S.Cell.Dims()
	if cr != 3 || cc != 3 {
		return fmt.Errorf("Structure %s has a %dx%d cell", S.Label, cr, cc)
	}
	r, c := S.Coords.Dims()
	if c != 3 || r != len(S.Atoms) {
		return fmt.Errorf("Structure %s has %d atoms but %dx%d coordinates", S.Label, len(S.Atoms), r, c)
	}
	if S.Forces != nil {
		fr, fc := S.Forces.Dims()
		if fr != r || fc != 3 {
			return fmt.Errorf("Structure %s has %dx%d forces for %d atoms", S.Label, fr, fc, r)
		}
	}
	return nil
}
