// Package seed provides the demo snapshot the command center starts with.
package seed

import (
	_ "embed"
	"fmt"

	"commandcenter-backend/models"
	"commandcenter-backend/repository"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the bundled demo snapshot
func Demo() (models.Snapshot, error) {
	return Parse(demoYAML)
}

// Parse decodes and validates a snapshot from YAML
func Parse(data []byte) (models.Snapshot, error) {
	var snap models.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if err := repository.ValidateSnapshot(snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("invalid seed data: %w", err)
	}
	return snap, nil
}
