package habitat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the layout's declarative field invariants. It is
// the boundary check for deserialized layouts; core functions assume
// a structurally valid Layout.
func (l *Layout) Validate() error {
	if err := structValidator.Struct(l); err != nil {
		return fmt.Errorf("layout structurally invalid: %w", err)
	}
	return nil
}

// LoadLayout reads and validates a layout from a JSON file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}

	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parsing layout JSON: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// SaveLayout writes a layout to a JSON file.
func SaveLayout(l *Layout, path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing layout file: %w", err)
	}
	return nil
}

// LoadWeights reads score weights from a YAML or JSON file, chosen by
// extension.
func LoadWeights(path string) (ScoreWeights, error) {
	var w ScoreWeights
	if err := loadByExt(path, &w); err != nil {
		return ScoreWeights{}, fmt.Errorf("loading weights: %w", err)
	}
	if _, err := w.Normalized(); err != nil {
		return ScoreWeights{}, err
	}
	return w, nil
}

// LoadSettings reads constraint settings from a YAML or JSON file,
// chosen by extension.
func LoadSettings(path string) (ConstraintSettings, error) {
	var s ConstraintSettings
	if err := loadByExt(path, &s); err != nil {
		return ConstraintSettings{}, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

func loadByExt(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}
