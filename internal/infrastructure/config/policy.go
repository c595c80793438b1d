package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/pagelens/backend/internal/audit/report"
	"github.com/pagelens/backend/internal/audit/rules"
	"github.com/pagelens/backend/internal/audit/score"
)

// Policy externalizes scoring weights and rule limits so scoring behavior
// can be tuned without touching rule logic. Zero fields keep their defaults.
type Policy struct {
	Weights struct {
		Critical int `yaml:"critical" toml:"critical"`
		Warning  int `yaml:"warning" toml:"warning"`
		Info     int `yaml:"info" toml:"info"`
	} `yaml:"weights" toml:"weights"`
	Limits struct {
		MaxNestingDepth int `yaml:"max_nesting_depth" toml:"max_nesting_depth"`
		InlineStyleCap  int `yaml:"inline_style_cap" toml:"inline_style_cap"`
		DivSoupCap      int `yaml:"div_soup_cap" toml:"div_soup_cap"`
	} `yaml:"limits" toml:"limits"`
}

// LoadPolicy reads a policy from a YAML or TOML file, chosen by extension.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var policy Policy
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &policy); err != nil {
			return nil, fmt.Errorf("parse yaml policy: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &policy); err != nil {
			return nil, fmt.Errorf("parse toml policy: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported policy format %q (want .yaml, .yml, or .toml)", filepath.Ext(path))
	}
	return &policy, nil
}

// ScoreWeights converts the policy into a scorer weight table, falling back
// to defaults for unset severities. Info stays advisory unless the policy
// explicitly assigns it a penalty.
func (p *Policy) ScoreWeights() score.Weights {
	weights := score.DefaultWeights()
	if p.Weights.Critical > 0 {
		weights[report.SeverityCritical] = p.Weights.Critical
	}
	if p.Weights.Warning > 0 {
		weights[report.SeverityWarning] = p.Weights.Warning
	}
	if p.Weights.Info > 0 {
		weights[report.SeverityInfo] = p.Weights.Info
	}
	return weights
}

// RuleLimits converts the policy into rule limits, zero fields defaulting.
func (p *Policy) RuleLimits() rules.Limits {
	limits := rules.DefaultLimits()
	if p.Limits.MaxNestingDepth > 0 {
		limits.MaxNestingDepth = p.Limits.MaxNestingDepth
	}
	if p.Limits.InlineStyleCap > 0 {
		limits.InlineStyleCap = p.Limits.InlineStyleCap
	}
	if p.Limits.DivSoupCap > 0 {
		limits.DivSoupCap = p.Limits.DivSoupCap
	}
	return limits
}
