/*
 * config.go, part of goaenet.
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

package workflow

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"
	aenet "github.com/rmera/goaenet"
)

//Config is the TOML description of a whole fit: the elements and their
//networks, the descriptor, the training method, and where and how to
//run.
type Config struct {
	Label      string           `toml:"label"`
	Run        RunConfig        `toml:"run"`
	Descriptor DescriptorConfig `toml:"descriptor"`
	Training   TrainingConfig   `toml:"training"`
	Elements   []ElementConfig  `toml:"elements"`
}

//RunConfig holds the run settings: paths, commands and the scalar
//parameters of the fit. Empty commands mean a dry run where the input
//files are built but nothing is executed. The boolean flags are
//pointers so that leaving them out keeps the library defaults.
type RunConfig struct {
	WorkDir      string  `toml:"workdir"`
	Generate     string  `toml:"generate"`
	Train        string  `toml:"train"`
	Predict      string  `toml:"predict"`
	References   string  `toml:"references"` //glob of reference XSF files
	Validation   string  `toml:"validation"` //glob, optional
	TestPercent  int     `toml:"test_percent"`
	Epochs       int     `toml:"epochs"`
	MaxEnergy    float64 `toml:"max_energy"`
	RMin         float64 `toml:"r_min"`
	Debug        *bool   `toml:"debug"`
	Timing       *bool   `toml:"timing"`
	SaveEnergies *bool   `toml:"save_energies"`
}

//DescriptorConfig selects and parameterizes the descriptor. kind is
//"behler" or "chebyshev"; only the fields of the selected kind are
//read.
type DescriptorConfig struct {
	Kind           string    `toml:"kind"`
	Cutoff         float64   `toml:"cutoff"`
	RadialEtas     []float64 `toml:"radial_etas"`
	AngularEtas    []float64 `toml:"angular_etas"`
	AngularLambdas []float64 `toml:"angular_lambdas"`
	AngularZetas   []float64 `toml:"angular_zetas"`
	RadialCutoff   float64   `toml:"radial_cutoff"`
	RadialN        int       `toml:"radial_n"`
	AngularCutoff  float64   `toml:"angular_cutoff"`
	AngularN       int       `toml:"angular_n"`
}

//TrainingConfig selects and parameterizes the training method. method
//is "bfgs", "lm" or "gd". Hyperparameters left at zero keep the
//defaults of the method.
type TrainingConfig struct {
	Method             string  `toml:"method"`
	BatchSize          int     `toml:"batchsize"`
	LearnRate          float64 `toml:"learn_rate"`
	RateAdjust         float64 `toml:"rate_adjust"`
	OptimizeIterations int     `toml:"optimize_iterations"`
	ConvergeThreshold  float64 `toml:"converge_threshold"`
	MomentumRate       float64 `toml:"momentum_rate"`
}

//ElementConfig describes one element: its reference atomic energy and
//the hidden layers of its network, as nodes:activation tokens.
type ElementConfig struct {
	Symbol  string   `toml:"symbol"`
	Energy  float64  `toml:"energy"`
	Network []string `toml:"network"`
}

//ReadConfig reads and decodes a TOML configuration file.
func ReadConfig(path string) (*Config, error) {
	errid := "workflow.ReadConfig"
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	var cfg Config
	dec := toml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return &cfg, nil
}

//parseLayers turns nodes:activation tokens into layers.
func parseLayers(tokens []string) ([]aenet.Layer, error) {
	ret := make([]aenet.Layer, 0, len(tokens))
	for _, v := range tokens {
		parts := strings.SplitN(v, ":", 2)
		if len(parts) != 2 || parts[1] == "" {
			return nil, fmt.Errorf("Bad layer token %q, want nodes:activation", v)
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("Bad node count in layer token %q", v)
		}
		ret = append(ret, aenet.Layer{Nodes: n, Activation: parts[1]})
	}
	return ret, nil
}

func (c *DescriptorConfig) descriptor() (aenet.Descriptor, error) {
	switch strings.ToLower(c.Kind) {
	case "behler":
		if c.Cutoff <= 0 {
			return nil, fmt.Errorf("The behler descriptor needs a positive cutoff")
		}
		return &aenet.Behler{
			Cutoff:    c.Cutoff,
			G2Etas:    c.RadialEtas,
			G4Etas:    c.AngularEtas,
			G4Lambdas: c.AngularLambdas,
			G4Zetas:   c.AngularZetas,
		}, nil
	case "chebyshev":
		return &aenet.Chebyshev{
			RadialCutoff:  c.RadialCutoff,
			RadialN:       c.RadialN,
			AngularCutoff: c.AngularCutoff,
			AngularN:      c.AngularN,
		}, nil
	}
	return nil, fmt.Errorf("Unknown descriptor kind %q, want behler or chebyshev", c.Kind)
}

func (c *TrainingConfig) training() (aenet.Training, error) {
	switch strings.ToLower(c.Method) {
	case "bfgs", "":
		return &aenet.BFGS{}, nil
	case "lm":
		return &aenet.LM{
			BatchSize:          c.BatchSize,
			LearnRate:          c.LearnRate,
			RateAdjust:         c.RateAdjust,
			OptimizeIterations: c.OptimizeIterations,
			ConvergeThreshold:  c.ConvergeThreshold,
		}, nil
	case "gd":
		return &aenet.GD{LearnRate: c.LearnRate, MomentumRate: c.MomentumRate}, nil
	}
	return nil, fmt.Errorf("Unknown training method %q, want bfgs, lm or gd", c.Method)
}

//Algorithm translates the configuration into a validated Algorithm.
//Scalar run settings left out of the file keep the library defaults.
func (C *Config) Algorithm() (*aenet.Algorithm, error) {
	errid := "workflow.Config.Algorithm"
	d, err := C.Descriptor.descriptor()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	t, err := C.Training.training()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	elements := make([]*aenet.Element, 0, len(C.Elements))
	for _, v := range C.Elements {
		layers, err := parseLayers(v.Network)
		if err != nil {
			return nil, fmt.Errorf("%s: element %s: %w", errid, v.Symbol, err)
		}
		elements = append(elements, &aenet.Element{Symbol: v.Symbol, Energy: v.Energy, Network: layers})
	}
	A, err := aenet.NewAlgorithm(elements, d, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if C.Run.TestPercent > 0 {
		A.TestPercent = C.Run.TestPercent
	}
	if C.Run.Epochs > 0 {
		A.Epochs = C.Run.Epochs
	}
	if C.Run.MaxEnergy != 0 {
		A.MaxEnergy = C.Run.MaxEnergy
	}
	if C.Run.RMin > 0 {
		A.RMin = C.Run.RMin
	}
	if C.Run.Debug != nil {
		A.Debug = *C.Run.Debug
	}
	if C.Run.Timing != nil {
		A.Timing = *C.Run.Timing
	}
	if C.Run.SaveEnergies != nil {
		A.SaveEnergies = *C.Run.SaveEnergies
	}
	return A, nil
}
