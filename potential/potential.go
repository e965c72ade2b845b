/*
 * potential.go, part of goaenet.
 *
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

//Package potential keeps fitted potentials together: the binary network
//file for each element, their checksums, and the training curve that
//produced them. Potentials can be written back to a directory for
//predict.x or an MD engine, and archived to a single compressed file.
package potential

import (
	"crypto/md5"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	aenet "github.com/rmera/goaenet"
)

const (
	//aenet ships a single potential format version.
	version = "v-1"
	//Each network file is named after its element, symbol plus suffix.
	suffix = "nn"
)

//Potential is a fitted network potential, one file per element.
type Potential struct {
	ID       string
	Elements []string
	Files    map[string][]byte
	Sums     map[string]string
	Curve    *aenet.TrainingCurve
}

//New builds a Potential from the per-element file payloads. Every
//element must come with its network file, named symbol.nn. If id is
//empty a fresh one is assigned. Checksums are computed here.
func New(id string, elements []string, files map[string][]byte, curve *aenet.TrainingCurve) (*Potential, error) {
	errid := "potential.New"
	if len(elements) == 0 {
		return nil, fmt.Errorf("%s: No elements given", errid)
	}
	if id == "" {
		id = uuid.New().String()
	}
	P := &Potential{ID: id, Elements: elements, Files: make(map[string][]byte, len(elements)), Sums: make(map[string]string, len(elements)), Curve: curve}
	for _, el := range elements {
		name := NetworkFileName(el)
		data, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("%s: Missing network file %s for element %s", errid, name, el)
		}
		P.Files[name] = data
		P.Sums[name] = fmt.Sprintf("%x", md5.Sum(data))
	}
	return P, nil
}

//FromDir collects the network files for the given elements from a
//directory, normally the work directory of a finished training run.
func FromDir(dir string, elements []string, curve *aenet.TrainingCurve) (*Potential, error) {
	errid := "potential.FromDir"
	files := make(map[string][]byte, len(elements))
	for _, el := range elements {
		name := NetworkFileName(el)
		data, err := os.ReadFile(dir + "/" + name)
		if err != nil {
			return nil, fmt.Errorf("%s: Couldn't read the network file for element %s: %w", errid, el, err)
		}
		files[name] = data
	}
	P, err := New("", elements, files, curve)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return P, nil
}

//NetworkFileName returns the conventional file name of the fitted
//network for an element.
func NetworkFileName(symbol string) string {
	return symbol + "." + suffix
}

//WriteFiles writes every network file into dir, which must exist.
func (P *Potential) WriteFiles(dir string) error {
	errid := "potential.Potential.WriteFiles"
	for _, el := range P.Elements {
		name := NetworkFileName(el)
		err := os.WriteFile(dir+"/"+name, P.Files[name], 0644)
		if err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
	}
	return nil
}

//Verify recomputes the checksum of every file payload and compares it
//against the recorded one.
func (P *Potential) Verify() error {
	errid := "potential.Potential.Verify"
	for _, el := range P.Elements {
		name := NetworkFileName(el)
		data, ok := P.Files[name]
		if !ok {
			return fmt.Errorf("%s: Missing payload for %s", errid, name)
		}
		sum := fmt.Sprintf("%x", md5.Sum(data))
		if sum != P.Sums[name] {
			return fmt.Errorf("%s: Checksum mismatch for %s: %s vs the recorded %s", errid, name, sum, P.Sums[name])
		}
	}
	return nil
}

//PairLines returns the pair_style and pair_coeff lines that couple the
//potential to a LAMMPS simulation. kinds is the ordered list of atom
//kinds in the simulation; if nil, the potential's own element order is
//used.
func (P *Potential) PairLines(kinds []string) []string {
	if kinds == nil {
		kinds = P.Elements
	}
	k := strings.Join(kinds, " ")
	return []string{
		"pair_style      aenet",
		fmt.Sprintf("pair_coeff      * * %s %s %s %s", version, k, suffix, k),
	}
}
