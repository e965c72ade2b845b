/*
 * sqlite.go, part of goaenet.
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

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	aenet "github.com/rmera/goaenet"
	"github.com/rmera/goaenet/potential"

	_ "modernc.org/sqlite"
)

//SQLiteStore keeps everything in a single SQLite file. It is safe for
//concurrent use.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

//NewSQLiteStore returns a store backed by the SQLite file at path. Init
//must be called before any other method.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

//Init opens the database and creates the tables if they are not there.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return errors.New("store: a sqlite path is required")
	}
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	return nil
}

//Close closes the database. The store cannot be used afterwards.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("store: not initialized, call Init first")
	}
	return s.db, nil
}

//SaveRun inserts or updates a run record.
func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if run.ID == "" {
		return errors.New("store: a run needs an id")
	}
	created := run.Created
	if created.IsZero() {
		created = time.Now()
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, label, created)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			created = excluded.created
	`, run.ID, run.Label, created.Unix())
	return err
}

//Runs lists every stored run, newest first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT id, label, created FROM runs ORDER BY created DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Label, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

//NaN has no SQL representation, so missing metrics travel as NULL.
func nullable(f float64) sql.NullFloat64 {
	if math.IsNaN(f) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func denull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

//SaveCurve stores the training curve of a run, replacing any earlier
//one for the same run.
func (s *SQLiteStore) SaveCurve(ctx context.Context, runID string, c *aenet.TrainingCurve) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM curves WHERE run_id = ?`, runID); err != nil {
		return err
	}
	converged := 0
	if c.Converged {
		converged = 1
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO curve_info (run_id, converged) VALUES (?, ?)
		ON CONFLICT(run_id) DO UPDATE SET converged = excluded.converged
	`, runID, converged); err != nil {
		return err
	}
	for _, ep := range c.Epochs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO curves (run_id, epoch, train_mae, train_rmse, test_mae, test_rmse)
			VALUES (?, ?, ?, ?, ?, ?)
		`, runID, ep.N, nullable(ep.TrainMAE), nullable(ep.TrainRMSE), nullable(ep.TestMAE), nullable(ep.TestRMSE))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

//Curve recovers the training curve of a run.
func (s *SQLiteStore) Curve(ctx context.Context, runID string) (*aenet.TrainingCurve, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}
	var converged int
	err = db.QueryRowContext(ctx, `SELECT converged FROM curve_info WHERE run_id = ?`, runID).Scan(&converged)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT epoch, train_mae, train_rmse, test_mae, test_rmse
		FROM curves WHERE run_id = ? ORDER BY epoch
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	c := &aenet.TrainingCurve{Converged: converged != 0}
	for rows.Next() {
		var ep aenet.Epoch
		var tm, tr, sm, sr sql.NullFloat64
		if err := rows.Scan(&ep.N, &tm, &tr, &sm, &sr); err != nil {
			return nil, false, err
		}
		ep.TrainMAE, ep.TrainRMSE, ep.TestMAE, ep.TestRMSE = denull(tm), denull(tr), denull(sm), denull(sr)
		c.Epochs = append(c.Epochs, ep)
	}
	return c, true, rows.Err()
}

//SavePredictions stores the validation energies of a run, replacing any
//earlier ones.
func (s *SQLiteStore) SavePredictions(ctx context.Context, runID string, res aenet.Results) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM predictions WHERE run_id = ?`, runID); err != nil {
		return err
	}
	for i, p := range res {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO predictions (run_id, ord, structure, natoms, energy)
			VALUES (?, ?, ?, ?, ?)
		`, runID, i, p.ID, p.NAtoms, p.Energy)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

//Predictions recovers the validation energies of a run, in submission
//order.
func (s *SQLiteStore) Predictions(ctx context.Context, runID string) (aenet.Results, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT structure, natoms, energy FROM predictions
		WHERE run_id = ? ORDER BY ord
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	var res aenet.Results
	for rows.Next() {
		var p aenet.Prediction
		if err := rows.Scan(&p.ID, &p.NAtoms, &p.Energy); err != nil {
			return nil, false, err
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return res, len(res) > 0, nil
}

//SavePotential stores the fitted potential of a run: its element list
//and the raw network files with their checksums.
func (s *SQLiteStore) SavePotential(ctx context.Context, runID string, p *potential.Potential) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO potentials (run_id, id, elements)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			id = excluded.id,
			elements = excluded.elements
	`, runID, p.ID, strings.Join(p.Elements, " "))
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM potential_files WHERE run_id = ?`, runID); err != nil {
		return err
	}
	for _, el := range p.Elements {
		name := potential.NetworkFileName(el)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO potential_files (run_id, name, sum, payload)
			VALUES (?, ?, ?, ?)
		`, runID, name, p.Sums[name], p.Files[name])
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

//Potential recovers the fitted potential of a run, with its training
//curve when one is stored. The payload checksums are verified against
//the stored ones.
func (s *SQLiteStore) Potential(ctx context.Context, runID string) (*potential.Potential, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}
	var id, elements string
	err = db.QueryRowContext(ctx, `SELECT id, elements FROM potentials WHERE run_id = ?`, runID).Scan(&id, &elements)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rows, err := db.QueryContext(ctx, `SELECT name, sum, payload FROM potential_files WHERE run_id = ?`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	files := make(map[string][]byte)
	sums := make(map[string]string)
	for rows.Next() {
		var name, sum string
		var payload []byte
		if err := rows.Scan(&name, &sum, &payload); err != nil {
			return nil, false, err
		}
		files[name] = payload
		sums[name] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	curve, _, err := s.Curve(ctx, runID)
	if err != nil {
		return nil, false, err
	}
	p, err := potential.New(id, strings.Fields(elements), files, curve)
	if err != nil {
		return nil, false, fmt.Errorf("store: rebuild potential for run %s: %w", runID, err)
	}
	for name, sum := range sums {
		if p.Sums[name] != sum {
			return nil, false, fmt.Errorf("store: checksum mismatch for %s of run %s", name, runID)
		}
	}
	return p, true, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			created INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS curve_info (
			run_id TEXT PRIMARY KEY,
			converged INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS curves (
			run_id TEXT NOT NULL,
			epoch INTEGER NOT NULL,
			train_mae REAL,
			train_rmse REAL,
			test_mae REAL,
			test_rmse REAL,
			PRIMARY KEY (run_id, epoch)
		);
		CREATE TABLE IF NOT EXISTS predictions (
			run_id TEXT NOT NULL,
			ord INTEGER NOT NULL,
			structure TEXT NOT NULL,
			natoms INTEGER NOT NULL,
			energy REAL NOT NULL,
			PRIMARY KEY (run_id, ord)
		);
		CREATE TABLE IF NOT EXISTS potentials (
			run_id TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			elements TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS potential_files (
			run_id TEXT NOT NULL,
			name TEXT NOT NULL,
			sum TEXT NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (run_id, name)
		);
	`)
	return err
}
