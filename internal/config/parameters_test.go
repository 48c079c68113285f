package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arolim/hcp-mcmc/internal/config"
)

func writeParamsFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "params.properties")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesAllFields(t *testing.T) {
	dir := t.TempDir()
	path := writeParamsFile(t, dir, `
gml_path: network.gml
max_itr: 5000
seed: 42
max_num_groups: 16
initial_num_groups: 4
initial_group_config: 1 3 5 7
saved_data_name: run1
save_directory: out
`)

	p, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "network.gml", p.GMLPath)
	assert.Equal(t, uint64(5000), p.MaxIterations)
	require.NotNil(t, p.Seed)
	assert.Equal(t, uint64(42), *p.Seed)
	assert.Equal(t, 16, p.MaxNumGroups)
	assert.Equal(t, 4, p.InitialNumGroups)
	assert.Equal(t, []uint64{1, 3, 5, 7}, p.InitialGroupConfig)
	assert.Equal(t, "run1", p.SavedDataName)
	assert.Equal(t, "out", p.SaveDirectory)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeParamsFile(t, dir, "gml_path: network.gml\n")

	p, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(1_000_000_000), p.MaxIterations)
	assert.Equal(t, 64, p.MaxNumGroups)
	assert.Equal(t, 2, p.InitialNumGroups)
	assert.Nil(t, p.InitialGroupConfig)
	assert.Equal(t, "data", p.SavedDataName)
	assert.Nil(t, p.Seed)
}

func TestLoadRequiresGMLPath(t *testing.T) {
	dir := t.TempDir()
	path := writeParamsFile(t, dir, "max_itr: 10\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestResolvePathsJoinsRelativePaths(t *testing.T) {
	p := &config.Parameters{GMLPath: "network.gml", SaveDirectory: "out"}
	resolved := p.ResolvePaths("/base/dir")
	assert.Equal(t, "/base/dir/network.gml", resolved.GMLPath)
	assert.Equal(t, "/base/dir/out", resolved.SaveDirectory)
}

func TestResolvePathsLeavesAbsolutePaths(t *testing.T) {
	p := &config.Parameters{GMLPath: "/abs/network.gml", SaveDirectory: "/abs/out"}
	resolved := p.ResolvePaths("/base/dir")
	assert.Equal(t, "/abs/network.gml", resolved.GMLPath)
	assert.Equal(t, "/abs/out", resolved.SaveDirectory)
}

func TestResolveSeedKeepsExistingSeed(t *testing.T) {
	seed := uint64(7)
	p := &config.Parameters{Seed: &seed}
	resolved, got := p.ResolveSeed()
	assert.Equal(t, uint64(7), got)
	require.NotNil(t, resolved.Seed)
	assert.Equal(t, uint64(7), *resolved.Seed)
}

func TestResolveSeedFixesAbsentSeed(t *testing.T) {
	p := &config.Parameters{}
	resolved, got := p.ResolveSeed()
	assert.Greater(t, got, uint64(0))
	require.NotNil(t, resolved.Seed)
	assert.Equal(t, got, *resolved.Seed)
}
