/*
 * algorithm.go, part of goaenet.
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
	"strings"
)

//Layer describes one hidden layer of a per-element network: how many nodes
//it has and which activation function they use (e.g. "tanh", "linear").
type Layer struct {
	Nodes      int
	Activation string
}

//Element holds the fitting data for one chemical element: its isolated-atom
//reference energy, in eV, and the hidden layers of the network that will
//learn its atomic energy contributions.
type Element struct {
	Symbol  string
	Energy  float64
	Network []Layer
}

//NetworkTokens returns one nodes:activation token per hidden layer, the
//compact form used in the NETWORKS section of train.in.
func (E *Element) NetworkTokens() []string {
	ret := make([]string, len(E.Network))
	for i, v := range E.Network {
		ret[i] = fmt.Sprintf("%d:%s", v.Nodes, v.Activation)
	}
	return ret
}

//NetworkFile returns the name of the file where train.x saves the trained
//network for this element.
func (E *Element) NetworkFile() string {
	return E.Symbol + ".nn"
}

//Algorithm gathers everything that defines one potential fit: the
//parameterized elements, the descriptor used to encode atomic environments,
//the training method, and the scalar run settings of the three aenet
//programs. Fields not set by the user keep the defaults put in place by
//NewAlgorithm.
type Algorithm struct {
	Elements   []*Element
	Descriptor Descriptor
	Training   Training
	//run settings
	Debug        bool
	Timing       bool
	SaveEnergies bool
	TestPercent  int     //percentage of the reference set held out for testing
	Epochs       int     //training iterations
	MaxEnergy    float64 //structures above this energy are left out of the fit
	RMin         float64 //smallest interatomic distance considered, in A
	//predict-phase settings
	PredictForces bool
	PredictRelax  string //when not empty, written under the RELAX keyword
}

//NewAlgorithm puts together an Algorithm with the default run settings:
//debug, timing and energy saving on, a 10 percent test split, 10 epochs, no
//maximum-energy filter and a minimum radius of 0.75 A. The settings can be
//changed on the returned object before any input is built. Element symbols
//must be unique.
func NewAlgorithm(elements []*Element, descriptor Descriptor, training Training) (*Algorithm, error) {
	const errid = "NewAlgorithm"
	if len(elements) == 0 {
		return nil, fmt.Errorf("%s: no elements given", errid)
	}
	if descriptor == nil || training == nil {
		return nil, fmt.Errorf("%s: nil descriptor or training method", errid)
	}
	seen := make(map[string]bool, len(elements))
	for _, v := range elements {
		if v == nil || v.Symbol == "" {
			return nil, fmt.Errorf("%s: nil or unnamed element in the list", errid)
		}
		if seen[v.Symbol] {
			return nil, fmt.Errorf("%s: element %s given twice", errid, v.Symbol)
		}
		seen[v.Symbol] = true
	}
	A := new(Algorithm)
	A.Elements = elements
	A.Descriptor = descriptor
	A.Training = training
	A.Debug = true
	A.Timing = true
	A.SaveEnergies = true
	A.TestPercent = 10
	A.Epochs = 10
	A.MaxEnergy = 0.0
	A.RMin = 0.75
	return A, nil
}

//Algorithm methods

//Symbols returns the symbols of the parameterized elements, in the order in
//which they were given. Every section of the input files that lists
//elements follows this order.
func (A *Algorithm) Symbols() []string {
	ret := make([]string, len(A.Elements))
	for i, v := range A.Elements {
		ret[i] = v.Symbol
	}
	return ret
}

//Element returns the parameterization for the given symbol, or nil if the
//algorithm carries none.
func (A *Algorithm) Element(symbol string) *Element {
	for _, v := range A.Elements {
		if v.Symbol == symbol {
			return v
		}
	}
	return nil
}

//Known reports whether the algorithm parameterizes the element with the
//given symbol.
func (A *Algorithm) Known(symbol string) bool {
	return A.Element(symbol) != nil
}

//CheckStructure verifies that every element appearing in S is
//parameterized, returning an *UnknownElementError for the first one that
//is not.
func (A *Algorithm) CheckStructure(S *Structure) error {
	for _, symbol := range S.Symbols() {
		if A.Element(symbol) == nil {
			return &UnknownElementError{Symbol: symbol, Structure: S.Label}
		}
	}
	return nil
}

//String returns a short description of the fit, for logs.
func (A *Algorithm) String() string {
	return fmt.Sprintf("%s fit for %s", A.Training.Name(), strings.Join(A.Symbols(), "-"))
}
