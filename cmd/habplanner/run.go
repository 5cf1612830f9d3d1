package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/heliosworks/habplanner/pkg/constraints"
	"github.com/heliosworks/habplanner/pkg/generator"
	"github.com/heliosworks/habplanner/pkg/habitat"
	"github.com/heliosworks/habplanner/pkg/optimizer"
	"github.com/heliosworks/habplanner/pkg/scoring"
)

func loadSettingsOrDefault(path string) (habitat.ConstraintSettings, error) {
	if path == "" {
		return habitat.DefaultSettings(), nil
	}
	return habitat.LoadSettings(path)
}

func loadWeightsOrDefault(path string) (habitat.ScoreWeights, error) {
	if path == "" {
		return habitat.DefaultWeights(), nil
	}
	return habitat.LoadWeights(path)
}

func runInit(out string) error {
	cfg := generator.DefaultConfig()
	weights := habitat.DefaultWeights()
	cfg.Weights = &weights

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	var data []byte
	var err error
	switch filepath.Ext(out) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Wrote seed configuration to %s\n", out)
	return nil
}

func runGenerate(configPath, out, settingsPath string) error {
	cfg, err := generator.LoadConfig(configPath)
	if err != nil {
		return err
	}
	settings, err := loadSettingsOrDefault(settingsPath)
	if err != nil {
		return err
	}

	layout, err := generator.Generate(cfg, settings)
	if err != nil {
		return err
	}
	if err := habitat.SaveLayout(layout, out); err != nil {
		return err
	}

	fmt.Printf("Generated layout saved to %s\n", out)
	return nil
}

func runValidate(in, settingsPath string) error {
	layout, err := habitat.LoadLayout(in)
	if err != nil {
		return err
	}
	settings, err := loadSettingsOrDefault(settingsPath)
	if err != nil {
		return err
	}

	result := constraints.Validate(layout, settings)
	printValidationResult(result)
	if !result.Passed {
		os.Exit(1)
	}
	return nil
}

func runScore(in, weightsPath, settingsPath string) error {
	layout, err := habitat.LoadLayout(in)
	if err != nil {
		return err
	}
	settings, err := loadSettingsOrDefault(settingsPath)
	if err != nil {
		return err
	}
	weights, err := loadWeightsOrDefault(weightsPath)
	if err != nil {
		return err
	}

	metrics, score, err := scoring.Evaluate(layout, settings, weights)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"metrics": metrics, "score": score}); err != nil {
		return err
	}
	if !metrics.Feasibility {
		os.Exit(1)
	}
	return nil
}

func runOptimize(in, out string, iters int, seed int64, weightsPath, settingsPath string) error {
	layout, err := habitat.LoadLayout(in)
	if err != nil {
		return err
	}
	settings, err := loadSettingsOrDefault(settingsPath)
	if err != nil {
		return err
	}
	weights, err := loadWeightsOrDefault(weightsPath)
	if err != nil {
		return err
	}

	result, err := optimizer.Optimize(layout, iters, settings, weights, seed)
	if err != nil {
		return err
	}
	if err := habitat.SaveLayout(result.Layout, out); err != nil {
		return err
	}

	fmt.Printf("Optimized layout saved to %s; score=%.3f\n", out, result.Score)
	return nil
}

func runExport(in, format, out, weightsPath, settingsPath string) error {
	layout, err := habitat.LoadLayout(in)
	if err != nil {
		return err
	}
	settings, err := loadSettingsOrDefault(settingsPath)
	if err != nil {
		return err
	}
	weights, err := loadWeightsOrDefault(weightsPath)
	if err != nil {
		return err
	}

	metrics, score, err := scoring.Evaluate(layout, settings, weights)
	if err != nil {
		return err
	}
	result := constraints.Validate(layout, settings)

	var payload []byte
	switch format {
	case "md":
		payload = []byte(exportMarkdown(layout, metrics, result.Messages))
	case "json":
		payload, err = json.MarshalIndent(map[string]any{
			"layout":     layout,
			"metrics":    metrics,
			"score":      score,
			"validation": result.Messages,
		}, "", "  ")
		if err != nil {
			return err
		}
	case "csv":
		payload, err = exportCSV(metrics)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}

	if out == "" {
		_, err = os.Stdout.Write(payload)
		return err
	}
	return os.WriteFile(out, payload, 0o644)
}
