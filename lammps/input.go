/*
 * input.go, part of goaenet.
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

package lammps

import (
	"fmt"
	"os"
	"strings"
)

//PairSource provides the pair_style and pair_coeff lines of an input
//script, given the atom kinds of the simulation in type order. A fitted
//potential.Potential is a PairSource, and so is an EmpiricalPair.
type PairSource interface {
	PairLines(kinds []string) []string
}

//EmpiricalPair couples a conventional LAMMPS pair style to a simulation,
//for comparison runs against the fitted potential.
type EmpiricalPair struct {
	Style  string   //e.g. "eam/alloy" or "lj/cut 10.0"
	Coeffs []string //the body of one pair_coeff line per entry
}

//PairLines returns the pair_style line and one pair_coeff line per
//coefficient entry. kinds is ignored; empirical coefficient lines name
//their own types.
func (E *EmpiricalPair) PairLines(kinds []string) []string {
	lines := []string{"pair_style      " + E.Style}
	for _, v := range E.Coeffs {
		lines = append(lines, "pair_coeff      "+v)
	}
	return lines
}

//Input gathers the settings of a molecular-dynamics input script. Zero
//fields take the usual values for a short NVT run with an aenet
//potential: metal units, atomic style, 300 K, a 1 fs timestep and 1000
//steps.
type Input struct {
	DataFile  string
	Pair      PairSource
	Kinds     []string //atom kinds in type order, see Kinds
	Units     string
	AtomStyle string
	TempK     float64
	Timestep  float64 //in ps, as metal units dictate
	Steps     int
	Thermo    int
	DumpEvery int    //0 disables the trajectory dump
	DumpFile  string //default dump.lammpstrj
	Seed      int
}

//Script returns the lines of the input script.
func (I *Input) Script() ([]string, error) {
	errid := "lammps.Input.Script"
	if I.DataFile == "" || I.Pair == nil || len(I.Kinds) == 0 {
		return nil, fmt.Errorf("%s: A data file, a pair source and the atom kinds are all needed", errid)
	}
	units := I.Units
	if units == "" {
		units = "metal"
	}
	style := I.AtomStyle
	if style == "" {
		style = "atomic"
	}
	temp := I.TempK
	if temp == 0 {
		temp = 300.0
	}
	dt := I.Timestep
	if dt == 0 {
		dt = 0.001
	}
	steps := I.Steps
	if steps == 0 {
		steps = 1000
	}
	thermo := I.Thermo
	if thermo == 0 {
		thermo = 100
	}
	seed := I.Seed
	if seed == 0 {
		seed = 4357
	}
	lines := []string{
		"units           " + units,
		"boundary        p p p",
		"atom_style      " + style,
		"",
		"read_data       " + I.DataFile,
		"",
	}
	lines = append(lines, I.Pair.PairLines(I.Kinds)...)
	lines = append(lines, "",
		fmt.Sprintf("velocity        all create %v %d", temp, seed),
		fmt.Sprintf("fix             1 all nvt temp %v %v 0.1", temp, temp),
		fmt.Sprintf("timestep        %v", dt),
		fmt.Sprintf("thermo          %d", thermo),
	)
	if I.DumpEvery > 0 {
		dump := I.DumpFile
		if dump == "" {
			dump = "dump.lammpstrj"
		}
		lines = append(lines, fmt.Sprintf("dump            1 all atom %d %s", I.DumpEvery, dump))
	}
	lines = append(lines, fmt.Sprintf("run             %d", steps))
	return lines, nil
}

//Write writes the input script to a file with the given name.
func (I *Input) Write(name string) error {
	lines, err := I.Script()
	if err != nil {
		return fmt.Errorf("lammps.Input.Write: %w", err)
	}
	err = os.WriteFile(name, []byte(strings.Join(lines, "\n")+"\n"), 0644)
	if err != nil {
		return fmt.Errorf("lammps.Input.Write: %w", err)
	}
	return nil
}
