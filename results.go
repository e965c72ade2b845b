/*
 * results.go, part of goaenet.
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

package aenet

import (
	"encoding/json"
	"math"
)

//Epoch is one row of the error table printed by train.x: the errors over
//the training and testing splits after one pass of the optimizer. Fields
//the program could not evaluate are NaN.
type Epoch struct {
	N         int
	TrainMAE  float64
	TrainRMSE float64
	TestMAE   float64
	TestRMSE  float64
}

//epochJSON is the wire form of an Epoch. JSON has no NaN, so metrics the
//program could not evaluate travel as null.
type epochJSON struct {
	N         int      `json:"n"`
	TrainMAE  *float64 `json:"train_mae"`
	TrainRMSE *float64 `json:"train_rmse"`
	TestMAE   *float64 `json:"test_mae"`
	TestRMSE  *float64 `json:"test_rmse"`
}

func noNaN(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func orNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

//MarshalJSON encodes the epoch with NaN metrics as null.
func (E Epoch) MarshalJSON() ([]byte, error) {
	return json.Marshal(epochJSON{N: E.N, TrainMAE: noNaN(E.TrainMAE), TrainRMSE: noNaN(E.TrainRMSE), TestMAE: noNaN(E.TestMAE), TestRMSE: noNaN(E.TestRMSE)})
}

//UnmarshalJSON decodes null metrics back to NaN.
func (E *Epoch) UnmarshalJSON(b []byte) error {
	var ej epochJSON
	if err := json.Unmarshal(b, &ej); err != nil {
		return err
	}
	E.N = ej.N
	E.TrainMAE = orNaN(ej.TrainMAE)
	E.TrainRMSE = orNaN(ej.TrainRMSE)
	E.TestMAE = orNaN(ej.TestMAE)
	E.TestRMSE = orNaN(ej.TestRMSE)
	return nil
}

//TrainingCurve is the full error history of one training run, plus whether
//the run stopped because the optimization converged.
type TrainingCurve struct {
	Epochs    []Epoch
	Converged bool
}

//Len returns the number of epoch records in the curve.
func (C *TrainingCurve) Len() int {
	return len(C.Epochs)
}

//Final returns the last epoch record. The second return is false for an
//empty curve.
func (C *TrainingCurve) Final() (Epoch, bool) {
	if len(C.Epochs) == 0 {
		return Epoch{}, false
	}
	return C.Epochs[len(C.Epochs)-1], true
}

//Best returns the epoch with the smallest test RMSE, skipping NaN entries.
//The second return is false if no epoch has a numeric test RMSE.
func (C *TrainingCurve) Best() (Epoch, bool) {
	best := Epoch{TestRMSE: math.Inf(1)}
	found := false
	for _, v := range C.Epochs {
		if math.IsNaN(v.TestRMSE) {
			continue
		}
		if v.TestRMSE < best.TestRMSE {
			best = v
			found = true
		}
	}
	return best, found
}

//Ns returns the epoch indexes as floats, for plotting against the error
//series.
func (C *TrainingCurve) Ns() []float64 {
	ret := make([]float64, len(C.Epochs))
	for i, v := range C.Epochs {
		ret[i] = float64(v.N)
	}
	return ret
}

//TrainMAEs returns the training-split MAE series.
func (C *TrainingCurve) TrainMAEs() []float64 {
	ret := make([]float64, len(C.Epochs))
	for i, v := range C.Epochs {
		ret[i] = v.TrainMAE
	}
	return ret
}

//TrainRMSEs returns the training-split RMSE series.
func (C *TrainingCurve) TrainRMSEs() []float64 {
	ret := make([]float64, len(C.Epochs))
	for i, v := range C.Epochs {
		ret[i] = v.TrainRMSE
	}
	return ret
}

//TestMAEs returns the testing-split MAE series.
func (C *TrainingCurve) TestMAEs() []float64 {
	ret := make([]float64, len(C.Epochs))
	for i, v := range C.Epochs {
		ret[i] = v.TestMAE
	}
	return ret
}

//TestRMSEs returns the testing-split RMSE series.
func (C *TrainingCurve) TestRMSEs() []float64 {
	ret := make([]float64, len(C.Epochs))
	for i, v := range C.Epochs {
		ret[i] = v.TestRMSE
	}
	return ret
}

//Prediction is the result of evaluating the fitted potential on one
//structure: how many atoms predict.x saw in it and the total energy it
//reports, in eV.
type Prediction struct {
	ID     string
	NAtoms int
	Energy float64
}

//Results holds the predictions for a set of structures, in the order in
//which the structures were submitted.
type Results []Prediction

//Map returns the predictions keyed by structure identifier.
func (R Results) Map() map[string]Prediction {
	ret := make(map[string]Prediction, len(R))
	for _, v := range R {
		ret[v.ID] = v
	}
	return ret
}

//Energies returns just the predicted total energies, in submission order.
func (R Results) Energies() []float64 {
	ret := make([]float64, len(R))
	for i, v := range R {
		ret[i] = v.Energy
	}
	return ret
}
