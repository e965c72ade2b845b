/*
 * main.go, part of goaenet.
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

//goaenet fits neural-network potentials with the aenet programs from a
//TOML description of the fit, and keeps the results in a SQLite
//database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rmera/goaenet/annplot"
	"github.com/rmera/goaenet/potential"
	"github.com/rmera/goaenet/store"
	"github.com/rmera/goaenet/workflow"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}
	switch args[0] {
	case "make":
		return runMake(ctx, args[1:])
	case "plot":
		return runPlot(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return errors.New(msg + "\nusage: goaenet <make|plot|runs> [flags]")
}

func openStore(ctx context.Context, path string) (*store.SQLiteStore, error) {
	s := store.NewSQLiteStore(path)
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

//make runs the whole fit and, when asked, stores and archives the
//results.
func runMake(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("make", flag.ContinueOnError)
	config := fs.String("c", "fit.toml", "TOML configuration file for the fit")
	db := fs.String("db", "", "SQLite database to store the results in, none if empty")
	archive := fs.String("archive", "", "file name for a compressed potential archive, none if empty")
	plotname := fs.String("plot", "", "base name for a training-curve PNG, none if empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := workflow.ReadConfig(*config)
	if err != nil {
		return err
	}
	rep, err := workflow.MakePotential(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("run %s: %d reference structures\n", rep.RunID, len(rep.References))
	if rep.Curve == nil {
		fmt.Println("dry run: inputs built, nothing executed")
		return nil
	}
	if final, ok := rep.Curve.Final(); ok {
		fmt.Printf("final test RMSE: %v eV/atom after %d epochs (converged: %v)\n", final.TestRMSE, final.N, rep.Curve.Converged)
	}
	for _, v := range rep.Validation {
		fmt.Printf("%s: %d atoms, %v eV\n", v.ID, v.NAtoms, v.Energy)
	}
	if *db != "" {
		s, err := openStore(ctx, *db)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.SaveRun(ctx, store.Run{ID: rep.RunID, Label: rep.Label}); err != nil {
			return err
		}
		if err := s.SaveCurve(ctx, rep.RunID, rep.Curve); err != nil {
			return err
		}
		if rep.Potential != nil {
			if err := s.SavePotential(ctx, rep.RunID, rep.Potential); err != nil {
				return err
			}
		}
		if len(rep.Validation) > 0 {
			if err := s.SavePredictions(ctx, rep.RunID, rep.Validation); err != nil {
				return err
			}
		}
	}
	if *archive != "" && rep.Potential != nil {
		if err := rep.Potential.Save(*archive); err != nil {
			return err
		}
	}
	if *plotname != "" {
		if err := annplot.Curve(rep.Curve, rep.Label, *plotname); err != nil {
			return err
		}
	}
	return nil
}

//plot renders the training curve of a stored run or of a potential
//archive.
func runPlot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plot", flag.ContinueOnError)
	db := fs.String("db", "", "SQLite database holding the run")
	runID := fs.String("run", "", "id of the run to plot")
	archive := fs.String("archive", "", "potential archive to plot instead of a stored run")
	title := fs.String("title", "", "plot title, the run or archive name if empty")
	out := fs.String("o", "curve", "base name for the output PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch {
	case *archive != "":
		p, err := potential.Load(*archive)
		if err != nil {
			return err
		}
		if p.Curve == nil {
			return fmt.Errorf("the archive %s carries no training curve", *archive)
		}
		t := *title
		if t == "" {
			t = *archive
		}
		return annplot.Curve(p.Curve, t, *out)
	case *db != "" && *runID != "":
		s, err := openStore(ctx, *db)
		if err != nil {
			return err
		}
		defer s.Close()
		c, ok, err := s.Curve(ctx, *runID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no curve stored for run %s", *runID)
		}
		t := *title
		if t == "" {
			t = *runID
		}
		return annplot.Curve(c, t, *out)
	}
	return usageError("plot needs either -archive or both -db and -run")
}

//runs lists the stored runs.
func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	db := fs.String("db", "runs.db", "SQLite database to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := openStore(ctx, *db)
	if err != nil {
		return err
	}
	defer s.Close()
	runs, err := s.Runs(ctx)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %s\n", r.ID, r.Created.Format("2006-01-02 15:04"), r.Label)
	}
	return nil
}
