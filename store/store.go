/*
 * store.go, part of goaenet.
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

//Package store keeps finished fits on disk: the run records, their
//training curves and validation energies, and the fitted potentials
//themselves, in a SQLite database.
package store

import (
	"context"
	"time"

	aenet "github.com/rmera/goaenet"
	"github.com/rmera/goaenet/potential"
)

//Run identifies one potential fit.
type Run struct {
	ID      string
	Label   string
	Created time.Time
}

//Store is what the pipeline needs from persistent storage. The second
//return of the getters reports whether the run had the record at all.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	Runs(ctx context.Context) ([]Run, error)
	SaveCurve(ctx context.Context, runID string, c *aenet.TrainingCurve) error
	Curve(ctx context.Context, runID string) (*aenet.TrainingCurve, bool, error)
	SavePredictions(ctx context.Context, runID string, res aenet.Results) error
	Predictions(ctx context.Context, runID string) (aenet.Results, bool, error)
	SavePotential(ctx context.Context, runID string, p *potential.Potential) error
	Potential(ctx context.Context, runID string) (*potential.Potential, bool, error)
	Close() error
}
