// internal/config/config.go
//
// Package config loads realignment parameters from YAML. Every field is
// optional; absent fields keep their configured defaults, so a file can tune
// a single threshold without restating the rest.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"realign-core/realign"
)

// File mirrors realign.Options with optional fields.
type File struct {
	Window struct {
		MinSupportingReads *int `yaml:"min_supporting_reads"`
		MaxSupportingReads *int `yaml:"max_supporting_reads"`
		MinMapQ            *int `yaml:"min_mapq"`
		MinBaseQual        *int `yaml:"min_base_quality"`
		MinWindowDistance  *int `yaml:"min_window_distance"`
		MaxWindowSize      *int `yaml:"max_window_size"`
	} `yaml:"window"`
	Graph struct {
		MinK          *int `yaml:"min_k"`
		MaxK          *int `yaml:"max_k"`
		StepK         *int `yaml:"step_k"`
		MinMapQ       *int `yaml:"min_mapq"`
		MinBaseQual   *int `yaml:"min_base_quality"`
		MinEdgeWeight *int `yaml:"min_edge_weight"`
		MaxNumPaths   *int `yaml:"max_num_paths"`
	} `yaml:"graph"`
	Align struct {
		Match     *int     `yaml:"match"`
		Mismatch  *int     `yaml:"mismatch"`
		GapOpen   *int     `yaml:"gap_open"`
		GapExtend *int     `yaml:"gap_extend"`
		K         *int     `yaml:"k"`
		ErrorRate *float64 `yaml:"error_rate"`
	} `yaml:"align"`
	MinScoreGain *int `yaml:"min_score_gain"`
	Pad          *int `yaml:"pad"`
}

// Load parses path strictly: unknown keys are rejected so typos fail loudly.
func Load(path string) (File, error) {
	var f File
	raw, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Apply overlays the file's set fields on opt and returns the result.
func (f File) Apply(opt realign.Options) realign.Options {
	setInt(&opt.Window.MinSupportingReads, f.Window.MinSupportingReads)
	setInt(&opt.Window.MaxSupportingReads, f.Window.MaxSupportingReads)
	setInt(&opt.Window.MinMapQ, f.Window.MinMapQ)
	setInt(&opt.Window.MinBaseQual, f.Window.MinBaseQual)
	setInt(&opt.Window.MinWindowDistance, f.Window.MinWindowDistance)
	setInt(&opt.Window.MaxWindowSize, f.Window.MaxWindowSize)

	setInt(&opt.Graph.MinK, f.Graph.MinK)
	setInt(&opt.Graph.MaxK, f.Graph.MaxK)
	setInt(&opt.Graph.StepK, f.Graph.StepK)
	setInt(&opt.Graph.MinMapQ, f.Graph.MinMapQ)
	setInt(&opt.Graph.MinBaseQual, f.Graph.MinBaseQual)
	setInt(&opt.Graph.MinEdgeWeight, f.Graph.MinEdgeWeight)
	setInt(&opt.Graph.MaxNumPaths, f.Graph.MaxNumPaths)

	setInt(&opt.Align.Match, f.Align.Match)
	setInt(&opt.Align.Mismatch, f.Align.Mismatch)
	setInt(&opt.Align.GapOpen, f.Align.GapOpen)
	setInt(&opt.Align.GapExtend, f.Align.GapExtend)
	setInt(&opt.Align.K, f.Align.K)
	if f.Align.ErrorRate != nil {
		opt.Align.ErrorRate = *f.Align.ErrorRate
	}

	setInt(&opt.MinScoreGain, f.MinScoreGain)
	setInt(&opt.Pad, f.Pad)
	return opt
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
