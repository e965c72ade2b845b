/*
 * generate.go, part of goaenet.
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
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	aenet "github.com/rmera/goaenet"
)

//GenerateHandle drives generate.x, the program that turns reference
//structures plus the per-element setups into a binary training set.
type GenerateHandle struct {
	command   string
	inputname string
	wrkdir    string
}

//NewGenerateHandle initializes and returns a handle for generate.x
//with the default settings.
func NewGenerateHandle() *GenerateHandle {
	run := new(GenerateHandle)
	run.SetDefaults()
	return run
}

//SetName sets the base name for the input and output files of the run
//(name.in and name.out).
func (O *GenerateHandle) SetName(name string) {
	O.inputname = name
}

//SetCommand sets the name (including the path, if needed) of the
//generate.x executable.
func (O *GenerateHandle) SetCommand(name string) {
	O.command = name
}

//SetWorkDir sets the directory where the input files are written and
//the program is run.
func (O *GenerateHandle) SetWorkDir(d string) {
	O.wrkdir = d
}

//SetDefaults sets the command to generate.x and the file base name to
//"generate". The work directory stays empty, meaning the current one.
func (O *GenerateHandle) SetDefaults() {
	O.command = os.ExpandEnv("generate.x")
	O.inputname = "generate"
}

//BuildInput writes everything generate.x needs into the work directory:
//one XSF file per reference structure, one setup file per parameterized
//element, and the control file. The structures must only contain
//elements parameterized in A, and every one of them needs forces.
func (O *GenerateHandle) BuildInput(structures []*aenet.Structure, A *aenet.Algorithm) error {
	errid := "calc.GenerateHandle.BuildInput"
	if O.wrkdir != "" && !strings.HasSuffix(O.wrkdir, "/") {
		O.wrkdir += "/"
	}
	if len(structures) == 0 {
		return errDecorate(&aenet.EmptyReferenceSetError{Phase: "generate"}, errid)
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
	setups := Setups(A)
	for _, el := range A.Elements {
		err = os.WriteFile(O.wrkdir+SetupFileName(el.Symbol), []byte(setups[el.Symbol]), 0644)
		if err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
	}
	lines, err := GenerateInput(A, names)
	if err != nil {
		return errDecorate(err, errid)
	}
	err = writeLines(O.wrkdir+O.inputname+".in", lines)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

//Run runs generate.x. If wait is true it blocks until the program is
//done, otherwise it lets it run in the background and returns.
func (O *GenerateHandle) Run(wait bool) (err error) {
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
		err = fmt.Errorf("calc.GenerateHandle.Run: %w", err)
	}
	return err
}

//Normal reports whether the run produced its training set.
func (O *GenerateHandle) Normal() bool {
	_, err := os.Stat(O.TrainingSetFile())
	return err == nil
}

//TrainingSetFile returns the path to the training set produced by the
//run.
func (O *GenerateHandle) TrainingSetFile() string {
	return O.wrkdir + TrainingSet
}

//GenerateInput returns the lines of the control file for generate.x,
//referencing the given XSF file names, in order. Rebuilding from the
//same algorithm and names gives identical lines.
func GenerateInput(A *aenet.Algorithm, xsfs []string) ([]string, error) {
	if len(xsfs) == 0 {
		return nil, &aenet.EmptyReferenceSetError{Phase: "generate"}
	}
	lines := []string{"OUTPUT " + TrainingSet, ""}
	if A.Debug {
		lines = append(lines, "DEBUG")
	}
	if A.Timing {
		lines = append(lines, "TIMING")
	}
	lines = append(lines, "TYPES", strconv.Itoa(len(A.Elements)))
	for _, el := range A.Elements {
		lines = append(lines, fmt.Sprintf("%-3s %s  ! eV", el.Symbol, ftoa(el.Energy)))
	}
	lines = append(lines, "", "SETUPS")
	for _, el := range A.Elements {
		lines = append(lines, fmt.Sprintf("%-3s %s", el.Symbol, SetupFileName(el.Symbol)))
	}
	lines = append(lines, "", "FILES", strconv.Itoa(len(xsfs)))
	lines = append(lines, xsfs...)
	return lines, nil
}
