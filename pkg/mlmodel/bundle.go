package mlmodel

import (
	"fmt"
)

// Bundle is the fitted artifact produced by the offline training step.
type Bundle struct {
	Version  string    `yaml:"version"`
	Model    *Stack    `yaml:"model"`
	Scaler   *Scaler   `yaml:"scaler"`
	Selector *Selector `yaml:"selector"`

	// FeatureNames is the training column order, when the exporter kept it.
	FeatureNames []string `yaml:"selected_features"`

	// Background holds reference rows in the selected feature space.
	Background [][]float64 `yaml:"background"`

	// Digest is the hex sha256 of the source document, set by the loader.
	Digest string `yaml:"-"`
}

// Namespace identifies the fitted artifact for keyed storage: the declared
// version, else a digest prefix of the document it was loaded from.
func (b *Bundle) Namespace() string {
	if b.Version != "" {
		return b.Version
	}
	if len(b.Digest) >= 16 {
		return "sha256-" + b.Digest[:16]
	}
	return b.Digest
}

// Validate checks that the components fit together: scaler and selector over
// rawDim columns, model over selectedDim columns.
func (b *Bundle) Validate(rawDim, selectedDim int) error {
	if err := b.Scaler.Validate(rawDim); err != nil {
		return fmt.Errorf("scaler: %w", err)
	}
	if err := checkDim("selector feature_importances", len(b.Selector.FeatureImportances), rawDim); err != nil {
		return fmt.Errorf("selector: %w", err)
	}
	if err := b.Model.Validate(selectedDim); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if len(b.FeatureNames) != 0 {
		if err := checkDim("selected_features", len(b.FeatureNames), rawDim); err != nil {
			return err
		}
	}
	return nil
}
