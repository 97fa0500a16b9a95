/*
 *  params.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"fmt"
	"runtime"
)

// Params holds the knobs of the ant colony. The mapstructure tags match the
// command line flags so a parameter file and the flags share one namespace.
type Params struct {
	// maximum number of cycles
	Cycles int `mapstructure:"cycles"`
	// walks per cycle
	Ants int `mapstructure:"ants"`
	// best walks per cycle that lay pheromone
	EliteAnts int `mapstructure:"elite"`
	// pheromone exponent
	Alpha float64 `mapstructure:"alpha"`
	// overlap length exponent
	Beta float64 `mapstructure:"beta"`
	// exponent in (0, 1) applied to the desirability of an already visited vertex
	Repetition float64 `mapstructure:"repetition"`
	// fraction of pheromone lost per cycle
	Evaporation float64 `mapstructure:"evaporation"`
	// pheromone laid per arc is quality * Deposit
	Deposit float64 `mapstructure:"deposit"`
	// consecutive non-improving cycles tolerated before stopping
	Stagnation int `mapstructure:"stagnation"`
	// random seed, every run with the same seed is reproducible
	Seed int64 `mapstructure:"seed"`
	// size of the walker pool
	Workers int `mapstructure:"workers"`
}

// DefaultParams returns the stock settings
func DefaultParams() Params {
	return Params{
		Cycles:      100,
		Ants:        30,
		EliteAnts:   10,
		Alpha:       1,
		Beta:        1,
		Repetition:  0.2,
		Evaporation: 0.5,
		Deposit:     2,
		Stagnation:  5,
		Seed:        42,
		Workers:     runtime.NumCPU(),
	}
}

// Validate checks the ranges and clamps EliteAnts to Ants
func (r *Params) Validate() error {
	switch {
	case r.Cycles < 1:
		return fmt.Errorf("%w: cycles must be >= 1, got %d", ErrConfiguration, r.Cycles)
	case r.Ants < 1:
		return fmt.Errorf("%w: ants must be >= 1, got %d", ErrConfiguration, r.Ants)
	case r.EliteAnts < 0:
		return fmt.Errorf("%w: elite ants must be >= 0, got %d", ErrConfiguration, r.EliteAnts)
	case r.Alpha < 0 || r.Beta < 0:
		return fmt.Errorf("%w: alpha and beta must be >= 0, got %g and %g", ErrConfiguration, r.Alpha, r.Beta)
	case r.Repetition <= 0 || r.Repetition >= 1:
		return fmt.Errorf("%w: repetition must be in (0, 1), got %g", ErrConfiguration, r.Repetition)
	case r.Evaporation < 0 || r.Evaporation > 1:
		return fmt.Errorf("%w: evaporation must be in [0, 1], got %g", ErrConfiguration, r.Evaporation)
	case r.Deposit < 0:
		return fmt.Errorf("%w: deposit must be >= 0, got %g", ErrConfiguration, r.Deposit)
	case r.Stagnation < 0:
		return fmt.Errorf("%w: stagnation must be >= 0, got %d", ErrConfiguration, r.Stagnation)
	case r.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrConfiguration, r.Workers)
	}
	if r.EliteAnts > r.Ants {
		log.Warningf("Elite ants (%d) exceed ants (%d), using %d", r.EliteAnts, r.Ants, r.Ants)
		r.EliteAnts = r.Ants
	}
	return nil
}

// String outputs the string representation of Params
func (r Params) String() string {
	return fmt.Sprintf("cycles: %d, ants: %d, elite: %d, alpha: %g, beta: %g, "+
		"repetition: %g, evaporation: %g, deposit: %g, stagnation: %d, seed: %d, workers: %d",
		r.Cycles, r.Ants, r.EliteAnts, r.Alpha, r.Beta,
		r.Repetition, r.Evaporation, r.Deposit, r.Stagnation, r.Seed, r.Workers)
}
