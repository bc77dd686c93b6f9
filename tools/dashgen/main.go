// Package main generates the Grafana dashboard and Prometheus rule
// artifacts for the marketweb frontend into the deploy directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/junseo/marketctl/tools/dashgen/dashboards"
	"github.com/junseo/marketctl/tools/dashgen/rules"
	"github.com/junseo/marketctl/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	var dashJSON []byte
	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return fmt.Errorf("building overview dashboard: %w", err)
		}
		if err := report(validate.Dashboard(dash, KnownMetrics), "marketweb-overview.json"); err != nil {
			return err
		}
		dashJSON, err = json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling overview dashboard: %w", err)
		}
		dashJSON = append(dashJSON, '\n')
	}

	ruleArtifacts := []struct {
		name string
		cr   rules.PrometheusRule
	}{
		{name: "marketweb-recording-rules.yaml", cr: rules.RecordingRules()},
		{name: "marketweb-alerts.yaml", cr: rules.AlertRules()},
	}
	if cfg.RulesEnabled {
		for _, artifact := range ruleArtifacts {
			if err := report(validate.Rules(artifact.cr, KnownMetrics), artifact.name); err != nil {
				return err
			}
		}
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		dir := filepath.Join(cfg.OutputDir, "grafana", "data")
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		path := filepath.Join(dir, "marketweb-overview.json")
		if err := os.WriteFile(path, dashJSON, 0o600); err != nil {
			return fmt.Errorf("writing dashboard: %w", err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	if cfg.RulesEnabled {
		dir := filepath.Join(cfg.OutputDir, "prometheus")
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		for _, artifact := range ruleArtifacts {
			data, err := yaml.Marshal(artifact.cr)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", artifact.name, err)
			}
			path := filepath.Join(dir, artifact.name)
			if err := os.WriteFile(path, append([]byte(generatedHeader), data...), 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", artifact.name, err)
			}
			fmt.Printf("wrote %s\n", path)
		}
	}
	return nil
}

func report(res validate.Result, name string) error {
	for _, warning := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", name, warning)
	}
	if !res.Ok() {
		return fmt.Errorf("%s failed validation: %v", name, res.Errors)
	}
	return nil
}
