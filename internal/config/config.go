// Package config loads object and scene configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roboticsfoundry/physics-control-plane/model"
)

// SceneConfig is the startup world description: lists of per-object config
// files grouped by kind, plus an optional inline sensor block.
type SceneConfig struct {
	VisualObjects    []string `yaml:"visual_objects"`
	CollisionObjects []string `yaml:"collision_objects"`
	DynamicObjects   []string `yaml:"dynamic_objects"`
	Robots           []string `yaml:"robots"`
	SoftObjects      []string `yaml:"soft_objects"`
	URDFs            []string `yaml:"urdfs"`

	RGBDSensor *model.ObjectConfig `yaml:"rgbd_sensor"`
}

// LoadScene reads a scene config from a YAML file.
func LoadScene(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene config: %w", err)
	}
	var scene SceneConfig
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parse scene config %q: %w", path, err)
	}
	return &scene, nil
}

// LoadObject reads a single object config from a YAML file.
func LoadObject(path string) (*model.ObjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read object config: %w", err)
	}
	cfg, err := ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("object config %q: %w", path, err)
	}
	return cfg, nil
}

// ParseObject parses an object config from raw YAML, as carried inline in
// AddObject requests. The name field is required.
func ParseObject(data []byte) (*model.ObjectConfig, error) {
	var cfg model.ObjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse object config: %w", err)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("object config missing name")
	}
	return &cfg, nil
}
