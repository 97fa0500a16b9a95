/*
 *  params_test.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanghaibao/acosbh"
)

func TestDefaultParamsAreValid(t *testing.T) {
	p := acosbh.DefaultParams()
	require.NoError(t, p.Validate())
	assert.Equal(t, 100, p.Cycles)
	assert.Equal(t, 30, p.Ants)
	assert.Equal(t, 10, p.EliteAnts)
	assert.Equal(t, 0.2, p.Repetition)
	assert.Equal(t, 0.5, p.Evaporation)
	assert.Equal(t, 2.0, p.Deposit)
	assert.Equal(t, 5, p.Stagnation)
	assert.GreaterOrEqual(t, p.Workers, 1)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *acosbh.Params)
	}{
		{"no cycles", func(p *acosbh.Params) { p.Cycles = 0 }},
		{"no ants", func(p *acosbh.Params) { p.Ants = 0 }},
		{"negative elite", func(p *acosbh.Params) { p.EliteAnts = -1 }},
		{"negative alpha", func(p *acosbh.Params) { p.Alpha = -1 }},
		{"negative beta", func(p *acosbh.Params) { p.Beta = -0.5 }},
		{"zero repetition", func(p *acosbh.Params) { p.Repetition = 0 }},
		{"repetition of one", func(p *acosbh.Params) { p.Repetition = 1 }},
		{"repetition above one", func(p *acosbh.Params) { p.Repetition = 1.2 }},
		{"evaporation above one", func(p *acosbh.Params) { p.Evaporation = 1.1 }},
		{"negative deposit", func(p *acosbh.Params) { p.Deposit = -2 }},
		{"negative stagnation", func(p *acosbh.Params) { p.Stagnation = -1 }},
		{"no workers", func(p *acosbh.Params) { p.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := acosbh.DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, acosbh.ErrConfiguration))
		})
	}
}

func TestParamsClampElite(t *testing.T) {
	p := acosbh.DefaultParams()
	p.Ants = 4
	require.NoError(t, p.Validate())
	assert.Equal(t, 4, p.EliteAnts)
}
