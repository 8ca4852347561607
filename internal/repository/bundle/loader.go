package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"liverRisk/domain"
	"liverRisk/pkg/mlmodel"

	"gopkg.in/yaml.v3"
)

// ErrMissingComponent marks a bundle without one of model, scaler or selector.
var ErrMissingComponent = errors.New("model bundle missing required component")

// LoadFile reads a bundle from a YAML or JSON file.
func LoadFile(path string) (*mlmodel.Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model bundle: %w", err)
	}
	return decode(raw)
}

// Decode parses and validates a bundle. JSON input works as well since the
// decoder accepts any YAML 1.2 document.
func Decode(r io.Reader) (*mlmodel.Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read model bundle: %w", err)
	}
	return decode(raw)
}

func decode(raw []byte) (*mlmodel.Bundle, error) {
	if err := checkSchema(raw); err != nil {
		return nil, err
	}

	var b mlmodel.Bundle
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode model bundle: %w", err)
	}

	var missing []string
	if b.Model == nil {
		missing = append(missing, "model")
	}
	if b.Scaler == nil {
		missing = append(missing, "scaler")
	}
	if b.Selector == nil {
		missing = append(missing, "selector")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingComponent, missing)
	}

	if err := b.Validate(domain.FeatureCount, domain.SelectedFeatureCount); err != nil {
		return nil, fmt.Errorf("invalid model bundle: %w", err)
	}

	if len(b.FeatureNames) > 0 {
		for i, col := range domain.FeatureColumns() {
			if b.FeatureNames[i] != col {
				return nil, fmt.Errorf("invalid model bundle: column %d is %q, want %q", i, b.FeatureNames[i], col)
			}
		}
	}

	sum := sha256.Sum256(raw)
	b.Digest = hex.EncodeToString(sum[:])

	return &b, nil
}
