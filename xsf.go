/*
 * xsf.go, part of goaenet.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//ftoa renders a float the shortest way that still reads back to the same
//value. The Fortran list-directed readers of aenet accept this form.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

//XSFWrite writes S to w in the periodic XSF flavor read by generate.x and
//predict.x: the label and total energy as comments, the CRYSTAL/PRIMVEC
//cell block and a PRIMCOORD block with one line per atom holding the symbol,
//coordinates and forces. Forces are a mandatory part of a training set, so
//a *MissingForceDataError is returned if S carries none.
func XSFWrite(w io.Writer, S *Structure) error {
	const errid = "XSFWrite"
	if err := S.Corrupted(); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if S.Forces == nil {
		return &MissingForceDataError{Structure: S.Label}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", S.Label)
	fmt.Fprintf(&b, "# total energy = %s eV\n\n", ftoa(S.Energy))
	b.WriteString("CRYSTAL\nPRIMVEC\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "%s %s %s\n", ftoa(S.Cell.At(i, 0)), ftoa(S.Cell.At(i, 1)), ftoa(S.Cell.At(i, 2)))
	}
	b.WriteString("PRIMCOORD\n")
	fmt.Fprintf(&b, "%d 1\n", S.Len())
	for i, at := range S.Atoms {
		fmt.Fprintf(&b, "%-3s % 18.12f % 18.12f % 18.12f % 18.12f % 18.12f % 18.12f\n",
			at.Symbol, S.Coords.At(i, 0), S.Coords.At(i, 1), S.Coords.At(i, 2),
			S.Forces.At(i, 0), S.Forces.At(i, 1), S.Forces.At(i, 2))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

//XSFFileWrite writes S in XSF format to a file with the given name, which
//is created, or truncated if it exists.
func XSFFileWrite(name string, S *Structure) error {
	out, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("XSFFileWrite: %w", err)
	}
	defer out.Close()
	err = XSFWrite(out, S)
	if err != nil {
		return errDecorate(err, "XSFFileWrite")
	}
	return nil
}

//XSFRead reads one periodic structure in XSF format from r. The energy
//comment is optional (structures produced by other codes may lack it) and
//forces are taken when the coordinate lines carry six numeric fields,
//left nil otherwise.
func XSFRead(r io.Reader) (*Structure, error) {
	const errid = "XSFRead"
	br := bufio.NewReader(r)
	lines := make([]string, 0, 100)
	var line string
	var err error
	for line, err = br.ReadString('\n'); err == nil; line, err = br.ReadString('\n') {
		lines = append(lines, strings.TrimRight(line, "\n"))
	}
	if err != io.EOF {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if line != "" {
		lines = append(lines, line)
	}
	label := ""
	energy := 0.0
	primvec := -1
	primcoord := -1
	for i, v := range lines {
		trim := strings.TrimSpace(v)
		switch {
		case strings.HasPrefix(trim, "# total energy"):
			fields := strings.Fields(trim)
			//comment reads "# total energy = E eV"
			if len(fields) >= 5 {
				energy, err = strconv.ParseFloat(fields[4], 64)
				if err != nil {
					return nil, fmt.Errorf("%s: bad energy comment %q: %w", errid, trim, err)
				}
			}
		case strings.HasPrefix(trim, "#") && label == "":
			label = strings.TrimSpace(strings.TrimPrefix(trim, "#"))
		case trim == "PRIMVEC":
			primvec = i
		case trim == "PRIMCOORD":
			primcoord = i
		}
	}
	if primvec < 0 || primvec+3 >= len(lines) {
		return nil, fmt.Errorf("%s: no PRIMVEC section found", errid)
	}
	if primcoord < 0 || primcoord+1 >= len(lines) {
		return nil, fmt.Errorf("%s: no PRIMCOORD section found", errid)
	}
	cell := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		fields := strings.Fields(lines[primvec+1+i])
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s: cell vector line %q has fewer than 3 fields", errid, lines[primvec+1+i])
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad cell vector line %q: %w", errid, lines[primvec+1+i], err)
			}
			cell.Set(i, j, v)
		}
	}
	fields := strings.Fields(lines[primcoord+1])
	if len(fields) < 1 {
		return nil, fmt.Errorf("%s: bad atom count line %q", errid, lines[primcoord+1])
	}
	natoms, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%s: bad atom count line %q: %w", errid, lines[primcoord+1], err)
	}
	if primcoord+1+natoms >= len(lines) {
		return nil, fmt.Errorf("%s: file ends before its %d atom lines", errid, natoms)
	}
	atoms := make([]*Atom, natoms)
	coords := mat.NewDense(natoms, 3, nil)
	var forces *mat.Dense
	for i := 0; i < natoms; i++ {
		fields = strings.Fields(lines[primcoord+2+i])
		if len(fields) < 4 {
			return nil, fmt.Errorf("%s: atom line %d has fewer than 4 fields", errid, i+1)
		}
		atoms[i] = &Atom{Symbol: fields[0], Id: i + 1}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[1+j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad coordinate in atom line %d: %w", errid, i+1, err)
			}
			coords.Set(i, j, v)
		}
		if len(fields) >= 7 {
			if forces == nil {
				forces = mat.NewDense(natoms, 3, nil)
			}
			for j := 0; j < 3; j++ {
				v, err := strconv.ParseFloat(fields[4+j], 64)
				if err != nil {
					return nil, fmt.Errorf("%s: bad force in atom line %d: %w", errid, i+1, err)
				}
				forces.Set(i, j, v)
			}
		}
	}
	return NewStructure(label, energy, atoms, cell, coords, forces)
}

//XSFFileRead reads one XSF structure from the file name. If the structure
//has no label comment, the file name, without directory or extension,
//is used as label.
func XSFFileRead(name string) (*Structure, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("XSFFileRead: %w", err)
	}
	defer f.Close()
	S, err := XSFRead(f)
	if err != nil {
		return nil, fmt.Errorf("XSFFileRead: file %s: %w", name, err)
	}
	if S.Label == "" {
		S.Label = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return S, nil
}

//XSFFileName returns the name under which the ith structure (1-based) of a
//reference set of n is written: the index zero-padded to the width of n,
//plus the .xsf extension. For n=12, i=1 the name is "01.xsf".
func XSFFileName(i, n int) string {
	padding := len(strconv.Itoa(n))
	return fmt.Sprintf("%0*d.xsf", padding, i)
}

//XSFFileNames returns the file names for a reference set of n structures,
//in order.
func XSFFileNames(n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = XSFFileName(i+1, n)
	}
	return ret
}

//ExportXSFs writes every structure to dir under its generated reference-set
//name and returns the names, in the order of the structures. The names, not
//full paths, are what the control files reference.
func ExportXSFs(dir string, structures []*Structure) ([]string, error) {
	names := XSFFileNames(len(structures))
	for i, S := range structures {
		err := XSFFileWrite(filepath.Join(dir, names[i]), S)
		if err != nil {
			return nil, errDecorate(err, "ExportXSFs")
		}
	}
	return names, nil
}
