// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excalibur-exs/tetrad/configuration"
)

type minerSection struct {
	Lanes  int    `gluamapper:"lanes"`
	Rounds int    `gluamapper:"rounds"`
	Order  string `gluamapper:"order"`
}

type testConfiguration struct {
	Target string       `gluamapper:"target"`
	Miner  minerSection `gluamapper:"miner"`
}

const luaScript = `
local M = {}

M.target = "legend"

M.miner = {
    lanes = 4,
    rounds = 128,
    order = "scored",
}

return M
`

func writeScript(t *testing.T, text string) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "luareader")
	require.NoError(t, err)

	name := filepath.Join(dir, "tetrad.conf")
	require.NoError(t, ioutil.WriteFile(name, []byte(text), 0600))
	return name, func() { _ = os.RemoveAll(dir) }
}

func TestParseConfigurationFile(t *testing.T) {

	name, cleanup := writeScript(t, luaScript)
	defer cleanup()

	config := &testConfiguration{}
	err := configuration.ParseConfigurationFile(name, config)
	require.NoError(t, err)

	assert.Equal(t, "legend", config.Target)
	assert.Equal(t, 4, config.Miner.Lanes)
	assert.Equal(t, 128, config.Miner.Rounds)
	assert.Equal(t, "scored", config.Miner.Order)
}

// defaults already in the structure survive when the script omits them
func TestParseConfigurationFileDefaults(t *testing.T) {

	name, cleanup := writeScript(t, `return { target = "legend" }`)
	defer cleanup()

	config := &testConfiguration{
		Miner: minerSection{Lanes: 1, Rounds: 64, Order: "sequential"},
	}
	err := configuration.ParseConfigurationFile(name, config)
	require.NoError(t, err)

	assert.Equal(t, "legend", config.Target)
	assert.Equal(t, 1, config.Miner.Lanes)
	assert.Equal(t, 64, config.Miner.Rounds)
}

func TestParseConfigurationFileErrors(t *testing.T) {

	config := &testConfiguration{}

	err := configuration.ParseConfigurationFile("no-such-file.conf", config)
	assert.Error(t, err, "missing file accepted")

	name, cleanup := writeScript(t, `this is not lua`)
	defer cleanup()
	err = configuration.ParseConfigurationFile(name, config)
	assert.Error(t, err, "broken script accepted")
}

// a script returning a non-table is a configuration error, not a panic
func TestParseConfigurationFileNonTable(t *testing.T) {

	config := &testConfiguration{}

	name, cleanup := writeScript(t, `return 42`)
	defer cleanup()
	err := configuration.ParseConfigurationFile(name, config)
	assert.Error(t, err, "non-table return accepted")
}
