// Package yaml_adapter loads chain declarations written in YAML. The
// document layout mirrors the HCL one:
//
//	components:
//	  - id: auth:1.2
//	    class: generic
//	    provides: [security]
//	    before: [render]
//	    config:
//	      retries: 3
//	chains:
//	  - id: default
//	    components: ["auth:1", render]
//	    inherits: [base]
//	    excludes: [legacy]
//	    phases:
//	      - name: setup
//	        before: [auth]
//	    inner:
//	      - id: local
//	        after: [auth]
package yaml_adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/chainforge/internal/config"
	"github.com/vk/chainforge/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Components []*component `yaml:"components"`
	Chains     []*chain     `yaml:"chains"`
}

type component struct {
	ID       string               `yaml:"id"`
	Class    string               `yaml:"class"`
	Provides []string             `yaml:"provides"`
	Before   []string             `yaml:"before"`
	After    []string             `yaml:"after"`
	Config   map[string]yaml.Node `yaml:"config"`
}

type phase struct {
	Name   string   `yaml:"name"`
	Before []string `yaml:"before"`
	After  []string `yaml:"after"`
}

type chain struct {
	ID         string       `yaml:"id"`
	Components []string     `yaml:"components"`
	Inherits   []string     `yaml:"inherits"`
	Excludes   []string     `yaml:"excludes"`
	Phases     []*phase     `yaml:"phases"`
	Inner      []*component `yaml:"inner"`
}

// Loader is the YAML-specific implementation of config.FileLoader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions handled by the loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// LoadFile decodes one YAML file. Unknown keys are rejected.
func (l *Loader) LoadFile(ctx context.Context, path string) (*config.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	model := &config.Model{Files: []string{path}}
	for _, c := range root.Components {
		comp, err := translateComponent(c, path)
		if err != nil {
			return nil, err
		}
		model.Components = append(model.Components, comp)
	}
	for _, c := range root.Chains {
		ch := &config.Chain{
			ID:         c.ID,
			Components: c.Components,
			Inherits:   c.Inherits,
			Excludes:   c.Excludes,
			File:       path,
		}
		for _, p := range c.Phases {
			ch.Phases = append(ch.Phases, &config.Phase{Name: p.Name, Before: p.Before, After: p.After})
		}
		for _, inner := range c.Inner {
			comp, err := translateComponent(inner, path)
			if err != nil {
				return nil, fmt.Errorf("in chain '%s': %w", c.ID, err)
			}
			ch.Inner = append(ch.Inner, comp)
		}
		model.Chains = append(model.Chains, ch)
	}

	ctxlog.FromContext(ctx).Debug("YAML file loaded.", "file", path, "components", len(model.Components), "chains", len(model.Chains))
	return model, nil
}

func translateComponent(c *component, file string) (*config.Component, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("%s: component without id", file)
	}

	var values map[string]string
	if len(c.Config) > 0 {
		values = make(map[string]string, len(c.Config))
		for k, node := range c.Config {
			s, err := nodeToString(&node)
			if err != nil {
				return nil, fmt.Errorf("%s: component '%s': config key '%s': %w", file, c.ID, k, err)
			}
			if s != nil {
				values[k] = *s
			}
		}
	}

	return &config.Component{
		ID:       c.ID,
		Class:    c.Class,
		Provides: c.Provides,
		Before:   c.Before,
		After:    c.After,
		Config:   values,
		File:     file,
	}, nil
}

// nodeToString renders scalars as written and encodes sequences and
// mappings as JSON. Null yields nil.
func nodeToString(node *yaml.Node) (*string, error) {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			return nil, nil
		}
		s := node.Value
		return &s, nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}
