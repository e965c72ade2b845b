/*
 * training.go, part of goaenet.
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
	"strconv"
	"strings"
)

//Training is one of the optimization methods train.x implements. The set
//is closed: BFGS, Levenberg-Marquardt and gradient descent.
type Training interface {
	//Name returns the method name as the METHOD section expects it.
	Name() string
	//MethodLines returns the body of the METHOD section of train.in.
	MethodLines() []string
	isTraining()
}

//BFGS is the limited-memory BFGS optimizer. It takes no hyperparameters.
type BFGS struct{}

func (t *BFGS) isTraining() {}

//Name returns "bfgs".
func (t *BFGS) Name() string { return "bfgs" }

//MethodLines returns the METHOD body for BFGS, which is just its name.
func (t *BFGS) MethodLines() []string { return []string{"bfgs"} }

//LM is the Levenberg-Marquardt optimizer. Fields left at zero take the
//usual values: batches of 5000, learning rate 0.1, rate adjustment 5.0,
//3 optimization iterations and a convergence threshold of 0.001.
type LM struct {
	BatchSize          int
	LearnRate          float64
	RateAdjust         float64
	OptimizeIterations int
	ConvergeThreshold  float64
}

func (t *LM) isTraining() {}

//Name returns "lm".
func (t *LM) Name() string { return "lm" }

//MethodLines returns the METHOD body for Levenberg-Marquardt: the name
//followed by its hyperparameters as key=value tokens.
func (t *LM) MethodLines() []string {
	bs := t.BatchSize
	if bs == 0 {
		bs = 5000
	}
	lr := t.LearnRate
	if lr == 0 {
		lr = 0.1
	}
	ra := t.RateAdjust
	if ra == 0 {
		ra = 5.0
	}
	oi := t.OptimizeIterations
	if oi == 0 {
		oi = 3
	}
	ct := t.ConvergeThreshold
	if ct == 0 {
		ct = 0.001
	}
	return []string{strings.Join([]string{
		"lm",
		"batchsize=" + strconv.Itoa(bs),
		"learn_rate=" + ftoa(lr),
		"rate_adjust=" + ftoa(ra),
		"optimize_iterations=" + strconv.Itoa(oi),
		"converge_threshold=" + ftoa(ct),
	}, " ")}
}

//GD is the online gradient-descent optimizer. Fields left at zero take the
//usual values: learning rate 0.003 and momentum 0.05.
type GD struct {
	LearnRate    float64
	MomentumRate float64
}

func (t *GD) isTraining() {}

//Name returns "gd".
func (t *GD) Name() string { return "gd" }

//MethodLines returns the METHOD body for gradient descent: the name
//followed by its hyperparameters as key=value tokens.
func (t *GD) MethodLines() []string {
	lr := t.LearnRate
	if lr == 0 {
		lr = 0.003
	}
	mr := t.MomentumRate
	if mr == 0 {
		mr = 0.05
	}
	return []string{strings.Join([]string{
		"gd",
		"learn_rate=" + ftoa(lr),
		"momentum_rate=" + ftoa(mr),
	}, " ")}
}
