/*
 * predict.go, part of goaenet.
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

package calc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	aenet "github.com/rmera/goaenet"
)

//Sentinels for the predict.x output.
var totalEnergyMark = fmt.Sprintf(" Total energy %s :", strings.Repeat(" ", 13))

const (
	evaluationMark = "Energy evaluation"
	natomsMark     = " Number of atoms   :"
	doneMark       = "Atomic Energy Network done."
)

var numberRe = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)

//PredictHandle drives predict.x, the program that evaluates a fitted
//potential on new structures.
type PredictHandle struct {
	command   string
	inputname string
	wrkdir    string
}

//NewPredictHandle initializes and returns a handle for predict.x with
//the default settings.
func NewPredictHandle() *PredictHandle {
	run := new(PredictHandle)
	run.SetDefaults()
	return run
}

//SetName sets the base name for the input and output files of the run
//(name.in and name.out).
func (O *PredictHandle) SetName(name string) {
	O.inputname = name
}

//SetCommand sets the name (including the path, if needed) of the
//predict.x executable.
func (O *PredictHandle) SetCommand(name string) {
	O.command = name
}

//SetWorkDir sets the directory where the input files are written and
//the program is run. The .nn files for every element must be there
//before Run.
func (O *PredictHandle) SetWorkDir(d string) {
	O.wrkdir = d
}

//SetDefaults sets the command to predict.x and the file base name to
//"predict".
func (O *PredictHandle) SetDefaults() {
	O.command = os.ExpandEnv("predict.x")
	O.inputname = "predict"
}

//BuildInput writes the control file for predict.x and one XSF file per
//structure to evaluate. The structures go through the same export as
//the reference set, so they need forces and a reference energy too.
func (O *PredictHandle) BuildInput(structures []*aenet.Structure, A *aenet.Algorithm) error {
	errid := "calc.PredictHandle.BuildInput"
	if O.wrkdir != "" && !strings.HasSuffix(O.wrkdir, "/") {
		O.wrkdir += "/"
	}
	if len(structures) == 0 {
		return errDecorate(&aenet.EmptyReferenceSetError{Phase: "predict"}, errid)
	}
	for _, S := range structures {
		if err := A.CheckStructure(S); err != nil {
			return errDecorate(err, errid)
		}
	}
	dir := O.wrkdir
	if dir == "" {
		dir = "."
	}
	names, err := aenet.ExportXSFs(dir, structures)
	if err != nil {
		return errDecorate(err, errid)
	}
	lines, err := PredictInput(A, names)
	if err != nil {
		return errDecorate(err, errid)
	}
	err = writeLines(O.wrkdir+O.inputname+".in", lines)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

//Run runs predict.x. If wait is true it blocks until the program is
//done, otherwise it lets it run in the background and returns.
func (O *PredictHandle) Run(wait bool) (err error) {
	com := fmt.Sprintf(" %s.in > %s.out  2>&1", O.inputname, O.inputname)
	if wait == true {
		command := exec.Command("sh", "-c", O.command+com)
		command.Dir = O.wrkdir
		err = command.Run()
	} else {
		command := exec.Command("sh", "-c", "nohup "+O.command+com)
		command.Dir = O.wrkdir
		err = command.Start()
	}
	if err != nil {
		err = fmt.Errorf("calc.PredictHandle.Run: %w", err)
	}
	return err
}

//Normal reports whether predict.x announced a complete evaluation at
//the end of its output.
func (O *PredictHandle) Normal() bool {
	return searchBackwards(doneMark, O.outName()) != ""
}

//Energies parses the predicted total energies from the run's captured
//output and pairs them, in order, with the given structure ids.
func (O *PredictHandle) Energies(ids []string) (aenet.Results, error) {
	res, err := ReadPredictions(O.outName(), ids)
	if err != nil {
		return nil, errDecorate(err, "calc.PredictHandle.Energies")
	}
	return res, nil
}

func (O *PredictHandle) outName() string {
	return O.wrkdir + O.inputname + ".out"
}

//ReadPredictions parses the output of predict.x from the file name
//given. Parsing starts at the energy evaluation section and ends at
//the final completion message, collecting the atom count and the total
//energy of each evaluated structure. The records are paired, in order,
//with ids, and the count of energies found must match the count of
//ids.
func ReadPredictions(name string, ids []string) (aenet.Results, error) {
	errid := "calc.ReadPredictions"
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	res, err := parsePredictions(f, ids)
	if err != nil {
		switch err2 := err.(type) {
		case *aenet.MalformedOutputError:
			err2.File = name
		case *aenet.ResultCountMismatchError:
			err2.File = name
		}
		return nil, errDecorate(err, errid)
	}
	return res, nil
}

func parsePredictions(r io.Reader, ids []string) (aenet.Results, error) {
	natoms := make([]int, 0, len(ids))
	energies := make([]float64, 0, len(ids))
	evaluating := false
	br := bufio.NewReader(r)
	for {
		line, rerr := br.ReadString('\n')
		line = strings.TrimRight(line, "\n")
		if !evaluating && strings.Contains(line, evaluationMark) {
			evaluating = true
		}
		if evaluating {
			if strings.Contains(line, "Number of atoms") {
				n, err := strconv.Atoi(strings.TrimSpace(strings.Replace(line, natomsMark, "", 1)))
				if err != nil {
					return nil, fmt.Errorf("Bad atom count line %q: %w", line, err)
				}
				natoms = append(natoms, n)
			}
			if strings.Contains(line, totalEnergyMark) {
				m := numberRe.FindString(line)
				if m == "" {
					return nil, fmt.Errorf("Bad total energy line %q", line)
				}
				v, err := strconv.ParseFloat(m, 64)
				if err != nil {
					return nil, fmt.Errorf("Bad total energy line %q: %w", line, err)
				}
				energies = append(energies, v)
			}
			if strings.Contains(line, doneMark) {
				break
			}
		}
		if rerr != nil {
			break
		}
	}
	if !evaluating {
		return nil, &aenet.MalformedOutputError{Sentinel: evaluationMark}
	}
	if len(energies) != len(ids) {
		return nil, &aenet.ResultCountMismatchError{Want: len(ids), Got: len(energies)}
	}
	if len(natoms) != len(energies) {
		return nil, &aenet.MalformedOutputError{Sentinel: strings.TrimSpace(natomsMark)}
	}
	res := make(aenet.Results, 0, len(ids))
	for i, id := range ids {
		res = append(res, aenet.Prediction{ID: id, NAtoms: natoms[i], Energy: energies[i]})
	}
	return res, nil
}

//PredictInput returns the lines of the control file for predict.x,
//referencing the given XSF file names, in order. Rebuilding from the
//same algorithm and names gives identical lines.
func PredictInput(A *aenet.Algorithm, xsfs []string) ([]string, error) {
	if len(xsfs) == 0 {
		return nil, &aenet.EmptyReferenceSetError{Phase: "predict"}
	}
	lines := []string{"TYPES", strconv.Itoa(len(A.Elements))}
	lines = append(lines, A.Symbols()...)
	lines = append(lines, "", "NETWORKS")
	for _, el := range A.Elements {
		lines = append(lines, fmt.Sprintf("%-3s  %s", el.Symbol, el.NetworkFile()))
	}
	lines = append(lines, "")
	if A.PredictForces {
		lines = append(lines, "FORCES")
	}
	if A.PredictRelax != "" {
		lines = append(lines, "RELAX", A.PredictRelax)
	}
	if A.Timing {
		lines = append(lines, "TIMING")
	}
	lines = append(lines, "", "FILES", strconv.Itoa(len(xsfs)))
	lines = append(lines, xsfs...)
	return lines, nil
}
