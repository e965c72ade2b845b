/*
 * workflow.go, part of goaenet.
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

//Package workflow chains the three aenet programs into a complete fit:
//reference structures in, fitted potential out. Each stage hands its
//products explicitly to the next, so a fit can also be assembled by
//hand from the calc handles when something unusual is needed.
package workflow

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	aenet "github.com/rmera/goaenet"
	"github.com/rmera/goaenet/calc"
	"github.com/rmera/goaenet/lammps"
	"github.com/rmera/goaenet/potential"
)

//Report is what a finished (or dry) fit hands back. On a dry run, where
//no commands are configured, only the run id, the algorithm and the
//reference set are filled in; the input files are left in the work
//directory.
type Report struct {
	RunID      string
	Label      string
	Algorithm  *aenet.Algorithm
	References []*aenet.Structure
	Curve      *aenet.TrainingCurve
	Potential  *potential.Potential
	Validation aenet.Results
}

//loadSet reads every XSF file matching the glob, in the sorted order
//filepath.Glob returns, so a set always loads the same way.
func loadSet(glob string) ([]*aenet.Structure, error) {
	names, err := filepath.Glob(glob)
	if err != nil {
		return nil, err
	}
	ret := make([]*aenet.Structure, 0, len(names))
	for _, v := range names {
		S, err := aenet.XSFFileRead(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, S)
	}
	return ret, nil
}

//MakePotential runs the whole fit described by cfg: it loads the
//reference set, builds the inputs for the three programs in the work
//directory, runs generate.x and train.x, parses the training curve,
//collects the fitted potential, and, when a validation set and the
//predict command are configured, evaluates the potential on it. With no
//commands configured it stops after building the generate and train
//inputs, which is useful to inspect them or to run the programs
//elsewhere.
func MakePotential(cfg *Config) (*Report, error) {
	errid := "workflow.MakePotential"
	A, err := cfg.Algorithm()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	structures, err := loadSet(cfg.Run.References)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	wd := cfg.Run.WorkDir
	if wd == "" {
		wd = "."
	}
	if err := os.MkdirAll(wd, 0755); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	rep := &Report{RunID: uuid.New().String(), Label: cfg.Label, Algorithm: A, References: structures}
	G := calc.NewGenerateHandle()
	G.SetWorkDir(wd)
	if err := G.BuildInput(structures, A); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	T := calc.NewTrainHandle()
	T.SetWorkDir(wd)
	if err := T.BuildInput(A); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if cfg.Run.Generate == "" || cfg.Run.Train == "" {
		log.Printf("workflow: no generate/train commands configured, inputs built in %s without running", wd)
		return rep, nil
	}
	G.SetCommand(cfg.Run.Generate)
	if err := G.Run(true); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if !G.Normal() {
		return nil, fmt.Errorf("%s: generate.x finished without producing %s", errid, G.TrainingSetFile())
	}
	T.SetCommand(cfg.Run.Train)
	if err := T.Run(true); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	curve, err := T.Curve(A.Epochs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	rep.Curve = curve
	pot, err := potential.FromDir(wd, A.Symbols(), curve)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	rep.Potential = pot
	if cfg.Run.Validation == "" || cfg.Run.Predict == "" {
		return rep, nil
	}
	res, err := validate(cfg, A, pot, wd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	rep.Validation = res
	return rep, nil
}

//validate evaluates the fitted potential on the validation set, in its
//own subdirectory of the work directory.
func validate(cfg *Config, A *aenet.Algorithm, pot *potential.Potential, wd string) (aenet.Results, error) {
	structures, err := loadSet(cfg.Run.Validation)
	if err != nil {
		return nil, err
	}
	if len(structures) == 0 {
		return nil, fmt.Errorf("The validation glob %q matched nothing", cfg.Run.Validation)
	}
	vd := filepath.Join(wd, "validate")
	if err := os.MkdirAll(vd, 0755); err != nil {
		return nil, err
	}
	if err := pot.WriteFiles(vd); err != nil {
		return nil, err
	}
	P := calc.NewPredictHandle()
	P.SetWorkDir(vd)
	P.SetCommand(cfg.Run.Predict)
	if err := P.BuildInput(structures, A); err != nil {
		return nil, err
	}
	if err := P.Run(true); err != nil {
		return nil, err
	}
	ids := make([]string, len(structures))
	for i, S := range structures {
		ids[i] = S.Label
	}
	return P.Energies(ids)
}

//CompareInputs writes paired LAMMPS inputs for S under dir: the same
//data file driven once by the fitted potential and once by a
//conventional pair style, so the two dynamics can be run side by side.
//The potential's network files are written along.
func CompareInputs(dir string, S *aenet.Structure, pot *potential.Potential, empirical *lammps.EmpiricalPair) error {
	errid := "workflow.CompareInputs"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	data := "data." + S.Label
	if err := lammps.DataFileWrite(filepath.Join(dir, data), S); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := pot.WriteFiles(dir); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	kinds := lammps.Kinds(S)
	ann := &lammps.Input{DataFile: data, Pair: pot, Kinds: kinds}
	if err := ann.Write(filepath.Join(dir, "in.ann")); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	emp := &lammps.Input{DataFile: data, Pair: empirical, Kinds: kinds}
	if err := emp.Write(filepath.Join(dir, "in.empirical")); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}
