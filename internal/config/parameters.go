// Package config loads the sampler's run-configuration file and the ambient
// environment overrides layered on top of it.
//
// Grounded on original_source/src/parameters.rs for the parameter set and
// the resolve_paths/fix_seed helpers, and on the teacher's pkg/config for
// splitting file-backed domain configuration from environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/magiconair/properties"

	apperrors "github.com/arolim/hcp-mcmc/pkg/errors"
)

// Parameters mirrors the spec'd run-configuration file: one `key: value` (or
// `key = value`) pair per line, case-insensitive keys.
type Parameters struct {
	GMLPath            string
	MaxIterations      uint64
	Seed               *uint64
	MaxNumGroups       int
	InitialNumGroups   int
	InitialGroupConfig []uint64 // nil if not supplied; sampler draws a random assignment
	SavedDataName      string
	SaveDirectory      string
}

// Load parses a parameter file from path using the Java-properties-style
// `key: value` grammar.
func Load(path string) (*Parameters, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("reading parameters file %s", path), err)
	}
	lower := properties.NewProperties()
	lower.DisableExpansion = true
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		lower.Set(strings.ToLower(k), v)
	}
	return fromProperties(lower)
}

func fromProperties(p *properties.Properties) (*Parameters, error) {
	gmlPath, ok := p.Get("gml_path")
	if !ok || gmlPath == "" {
		return nil, apperrors.New(apperrors.CodeConfigError, "missing required parameter 'gml_path'")
	}

	maxItr, err := getUint64(p, "max_itr", 1_000_000_000)
	if err != nil {
		return nil, err
	}
	maxNumGroups, err := getInt(p, "max_num_groups", 64)
	if err != nil {
		return nil, err
	}
	initialNumGroups, err := getInt(p, "initial_num_groups", 2)
	if err != nil {
		return nil, err
	}
	initialGroupConfig, err := getUint64List(p, "initial_group_config")
	if err != nil {
		return nil, err
	}

	var seed *uint64
	if s, ok := p.Get("seed"); ok && s != "" {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("seed is not an integer: %s", s))
		}
		seed = &v
	}

	savedDataName := p.GetString("saved_data_name", "data")

	saveDirectory, ok := p.Get("save_directory")
	if !ok || saveDirectory == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfigError, "save_directory missing and current working directory is unavailable", err)
		}
		saveDirectory = wd
	}

	return &Parameters{
		GMLPath:            gmlPath,
		MaxIterations:      maxItr,
		Seed:               seed,
		MaxNumGroups:       maxNumGroups,
		InitialNumGroups:   initialNumGroups,
		InitialGroupConfig: initialGroupConfig,
		SavedDataName:      savedDataName,
		SaveDirectory:      saveDirectory,
	}, nil
}

// ResolvePaths joins GMLPath and SaveDirectory against base when they are
// relative, mirroring the original's Parameters::resolve_paths.
func (p *Parameters) ResolvePaths(base string) *Parameters {
	resolve := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(base, path)
	}
	out := *p
	out.GMLPath = resolve(p.GMLPath)
	out.SaveDirectory = resolve(p.SaveDirectory)
	return &out
}

// ResolveSeed fixes an absent seed from the wall clock and returns the
// resolved value so the driver can log and persist it, mirroring the
// original's Parameters::fix_seed.
func (p *Parameters) ResolveSeed() (*Parameters, uint64) {
	if p.Seed != nil {
		out := *p
		return &out, *p.Seed
	}
	resolved := uint64(time.Now().Unix())
	out := *p
	out.Seed = &resolved
	return &out, resolved
}

func getUint64(p *properties.Properties, key string, def uint64) (uint64, error) {
	s, ok := p.Get(key)
	if !ok || s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("%s is not an integer: %s", key, s))
	}
	return v, nil
}

func getInt(p *properties.Properties, key string, def int) (int, error) {
	s, ok := p.Get(key)
	if !ok || s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("%s is not an integer: %s", key, s))
	}
	return v, nil
}

func getUint64List(p *properties.Properties, key string) ([]uint64, error) {
	s, ok := p.Get(key)
	if !ok || strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Fields(s)
	out := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("%s contains a non-integer entry: %s", key, f))
		}
		out = append(out, v)
	}
	return out, nil
}
