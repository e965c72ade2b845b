/*
 * train.go, part of goaenet.
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
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	aenet "github.com/rmera/goaenet"
)

//Sentinels for the train.x output. The error table header carries a fixed
//amount of internal padding, so it is assembled rather than spelled out.
var epochHeader = fmt.Sprintf(" epoch %s MAE %s <RMSE>", strings.Repeat(" ", 11), strings.Repeat(" ", 8))

const convergedLine = " The optimization has converged. Training stopped."

//TrainHandle drives train.x, the program that fits the networks to a
//training set produced by generate.x.
type TrainHandle struct {
	command   string
	inputname string
	wrkdir    string
}

//NewTrainHandle initializes and returns a handle for train.x with the
//default settings.
func NewTrainHandle() *TrainHandle {
	run := new(TrainHandle)
	run.SetDefaults()
	return run
}

//SetName sets the base name for the input and output files of the run
//(name.in and name.out).
func (O *TrainHandle) SetName(name string) {
	O.inputname = name
}

//SetCommand sets the name (including the path, if needed) of the
//train.x executable.
func (O *TrainHandle) SetCommand(name string) {
	O.command = name
}

//SetWorkDir sets the directory where the input file is written and the
//program is run. It must already hold train.dat and will receive the
//fitted .nn files.
func (O *TrainHandle) SetWorkDir(d string) {
	O.wrkdir = d
}

//SetDefaults sets the command to train.x and the file base name to
//"train".
func (O *TrainHandle) SetDefaults() {
	O.command = os.ExpandEnv("train.x")
	O.inputname = "train"
}

//BuildInput writes the control file for train.x. Every element in A
//needs at least one hidden layer defined.
func (O *TrainHandle) BuildInput(A *aenet.Algorithm) error {
	errid := "calc.TrainHandle.BuildInput"
	if O.wrkdir != "" && !strings.HasSuffix(O.wrkdir, "/") {
		O.wrkdir += "/"
	}
	for _, el := range A.Elements {
		if len(el.Network) == 0 {
			return fmt.Errorf("%s: No network architecture given for element %s", errid, el.Symbol)
		}
	}
	err := writeLines(O.wrkdir+O.inputname+".in", TrainInput(A))
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

//Run runs train.x. If wait is true it blocks until the program is done,
//otherwise it lets it run in the background and returns.
func (O *TrainHandle) Run(wait bool) (err error) {
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
		err = fmt.Errorf("calc.TrainHandle.Run: %w", err)
	}
	return err
}

//Normal reports whether the captured output contains the error table,
//i.e. whether training got at least past its first epoch.
func (O *TrainHandle) Normal() bool {
	return searchBackwards(epochHeader, O.outName()) != ""
}

//Curve parses the error table from the run's captured output. epochs is
//the number of epochs the run was asked for, normally Algorithm.Epochs.
func (O *TrainHandle) Curve(epochs int) (*aenet.TrainingCurve, error) {
	curve, err := ReadTrainingCurve(O.outName(), epochs)
	if err != nil {
		return nil, errDecorate(err, "calc.TrainHandle.Curve")
	}
	return curve, nil
}

func (O *TrainHandle) outName() string {
	return O.wrkdir + O.inputname + ".out"
}

//ReadTrainingCurve parses the error table that train.x prints, one row
//per epoch, from the file name given. It takes at most epochs+1 rows
//after the table header (the zeroth epoch reports the untrained error)
//and stops early at the convergence message, recording that it was
//seen. Rows whose first field is not an integer are skipped, and
//metrics that fail to parse decode as NaN.
func ReadTrainingCurve(name string, epochs int) (*aenet.TrainingCurve, error) {
	errid := "calc.ReadTrainingCurve"
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	curve, err := parseTrainingCurve(f, epochs)
	if err != nil {
		if err2, ok := err.(*aenet.MalformedOutputError); ok {
			err2.File = name
		}
		return nil, errDecorate(err, errid)
	}
	return curve, nil
}

func parseTrainingCurve(r io.Reader, epochs int) (*aenet.TrainingCurve, error) {
	lines := make([]string, 0, 100)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		lines = append(lines, strings.TrimRight(line, "\n"))
		if err != nil {
			break
		}
	}
	head := -1
	for i, line := range lines {
		if strings.Contains(line, epochHeader) {
			head = i
			break
		}
	}
	if head < 0 {
		return nil, &aenet.MalformedOutputError{Sentinel: strings.TrimSpace(epochHeader)}
	}
	last := head + epochs + 2
	if last > len(lines) {
		last = len(lines)
	}
	curve := new(aenet.TrainingCurve)
	for _, line := range lines[head+1 : last] {
		if line == convergedLine {
			curve.Converged = true
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		ep := aenet.Epoch{N: n}
		metrics := []*float64{&ep.TrainMAE, &ep.TrainRMSE, &ep.TestMAE, &ep.TestRMSE}
		for j, m := range metrics {
			*m = math.NaN()
			if j+1 < len(fields) {
				if v, err := strconv.ParseFloat(fields[j+1], 64); err == nil {
					*m = v
				}
			}
		}
		curve.Epochs = append(curve.Epochs, ep)
	}
	return curve, nil
}

//TrainInput returns the lines of the control file for train.x.
//Rebuilding from the same algorithm gives identical lines.
func TrainInput(A *aenet.Algorithm) []string {
	lines := []string{
		"TRAININGSET " + TrainingSet,
		"TESTPERCENT " + strconv.Itoa(A.TestPercent),
		"ITERATIONS " + strconv.Itoa(A.Epochs),
		"",
		"MAXENERGY " + ftoa(A.MaxEnergy),
		"",
	}
	if A.SaveEnergies {
		lines = append(lines, "SAVE_ENERGIES", "")
	}
	if A.Timing {
		lines = append(lines, "TIMING")
	}
	if A.Debug {
		lines = append(lines, "DEBUG")
	}
	lines = append(lines, "", "METHOD")
	lines = append(lines, A.Training.MethodLines()...)
	lines = append(lines, "")
	lines = append(lines,
		"NETWORKS",
		"! atom   network         hidden",
		"! types  file-name       layers  nodes:activation",
	)
	for _, el := range A.Elements {
		lines = append(lines, fmt.Sprintf("%-8s %-15s %-7d %s",
			el.Symbol, el.NetworkFile(), len(el.Network), strings.Join(el.NetworkTokens(), " ")))
	}
	return lines
}
