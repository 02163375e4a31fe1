package services

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData is the first-run content: demo accounts plus the artists and formats a fresh
// calendar starts with.
type SeedData struct {
	Users   []SeedUser   `yaml:"users"`
	Artists []SeedArtist `yaml:"artists"`
	Formats []SeedFormat `yaml:"formats"`
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type SeedArtist struct {
	Name     string   `yaml:"name"`
	RoleTags []string `yaml:"role_tags"`
	Contact  string   `yaml:"contact"`
}

type SeedFormat struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// LoadSeed reads seed data from path, or the built-in seed when path is empty.
func LoadSeed(path string) (*SeedData, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	return ParseSeed(raw)
}

// ParseSeed decodes YAML seed data. Unknown keys are rejected so typos do not silently drop rows.
func ParseSeed(raw []byte) (*SeedData, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var seed SeedData
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}
