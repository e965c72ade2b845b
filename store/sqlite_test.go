package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	aenet "github.com/rmera/goaenet"
	"github.com/rmera/goaenet/potential"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	run := Run{ID: "run-1", Label: "NiP bfgs", Created: time.Unix(1700000000, 0)}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.SaveRun(ctx, Run{ID: "run-2", Label: "NiP lm", Created: time.Unix(1700000100, 0)}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-2" {
		t.Errorf("runs not ordered newest first: %v", runs)
	}
	if runs[1].Label != "NiP bfgs" {
		t.Errorf("label lost: %q", runs[1].Label)
	}
	if err := s.SaveRun(ctx, Run{}); err == nil {
		t.Error("expected an error for a run with no id")
	}
}

func TestCurveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := &aenet.TrainingCurve{
		Converged: true,
		Epochs: []aenet.Epoch{
			{N: 0, TrainMAE: 0.5, TrainRMSE: 0.7, TestMAE: 0.6, TestRMSE: 0.8},
			{N: 1, TrainMAE: 0.3, TrainRMSE: 0.4, TestMAE: math.NaN(), TestRMSE: math.NaN()},
			{N: 2, TrainMAE: 0.1, TrainRMSE: 0.2, TestMAE: 0.15, TestRMSE: 0.25},
		},
	}
	if err := s.SaveCurve(ctx, "run-1", c); err != nil {
		t.Fatalf("SaveCurve: %v", err)
	}
	got, ok, err := s.Curve(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("Curve: ok=%v err=%v", ok, err)
	}
	if !got.Converged {
		t.Error("converged flag lost")
	}
	if got.Len() != 3 {
		t.Fatalf("got %d epochs, want 3", got.Len())
	}
	if got.Epochs[0] != c.Epochs[0] {
		t.Errorf("epoch 0 changed: %+v vs %+v", got.Epochs[0], c.Epochs[0])
	}
	if !math.IsNaN(got.Epochs[1].TestMAE) || !math.IsNaN(got.Epochs[1].TestRMSE) {
		t.Errorf("NaN metrics did not survive the round trip: %+v", got.Epochs[1])
	}
	if _, ok, err := s.Curve(ctx, "no-such-run"); err != nil || ok {
		t.Errorf("Curve for an unknown run: ok=%v err=%v", ok, err)
	}
}

func TestPredictionsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	res := aenet.Results{
		{ID: "01.xsf", NAtoms: 4, Energy: -3082.8},
		{ID: "02.xsf", NAtoms: 4, Energy: -3082.1},
		{ID: "03.xsf", NAtoms: 8, Energy: -6165.5},
	}
	if err := s.SavePredictions(ctx, "run-1", res); err != nil {
		t.Fatalf("SavePredictions: %v", err)
	}
	got, ok, err := s.Predictions(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("Predictions: ok=%v err=%v", ok, err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d predictions, want 3", len(got))
	}
	for i := range res {
		if got[i] != res[i] {
			t.Errorf("prediction %d changed: %+v vs %+v", i, got[i], res[i])
		}
	}
}

func TestPotentialRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	files := map[string][]byte{
		"Ni.nn": []byte("fake nickel network"),
		"P.nn":  []byte("fake phosphorus network"),
	}
	p, err := potential.New("pot-1", []string{"Ni", "P"}, files, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SavePotential(ctx, "run-1", p); err != nil {
		t.Fatalf("SavePotential: %v", err)
	}
	got, ok, err := s.Potential(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("Potential: ok=%v err=%v", ok, err)
	}
	if got.ID != "pot-1" {
		t.Errorf("potential id changed: %q", got.ID)
	}
	if string(got.Files["Ni.nn"]) != "fake nickel network" {
		t.Error("payload changed in the round trip")
	}
	if err := got.Verify(); err != nil {
		t.Errorf("Verify after round trip: %v", err)
	}
	if _, ok, err := s.Potential(ctx, "no-such-run"); err != nil || ok {
		t.Errorf("Potential for an unknown run: ok=%v err=%v", ok, err)
	}
}
