package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/cyclesense/internal/services"
	"gopkg.in/yaml.v3"
)

// LoadAnalysisThresholds overlays the YAML document at path on the default
// thresholds. An empty path yields the defaults unchanged.
func LoadAnalysisThresholds(path string) (services.AnalysisThresholds, error) {
	thresholds := services.DefaultAnalysisThresholds()
	if path == "" {
		return thresholds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return services.AnalysisThresholds{}, fmt.Errorf("read thresholds file: %w", err)
	}
	return ParseAnalysisThresholds(data)
}

func ParseAnalysisThresholds(data []byte) (services.AnalysisThresholds, error) {
	thresholds := services.DefaultAnalysisThresholds()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&thresholds); err != nil && !errors.Is(err, io.EOF) {
		return services.AnalysisThresholds{}, fmt.Errorf("parse thresholds: %w", err)
	}
	if err := thresholds.Validate(); err != nil {
		return services.AnalysisThresholds{}, err
	}
	return thresholds, nil
}

func MarshalAnalysisThresholds(thresholds services.AnalysisThresholds) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(thresholds); err != nil {
		return nil, fmt.Errorf("encode thresholds: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode thresholds: %w", err)
	}
	return buffer.Bytes(), nil
}
