package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Components []*Component `hcl:"component,block"`
	Chains     []*Chain     `hcl:"chain,block"`
	Remain     hcl.Body     `hcl:",remain"`
}

// Component represents a `component` block, either at the top level or
// nested inside a chain.
type Component struct {
	ID       string         `hcl:"id,label"`
	Class    string         `hcl:"class,optional"`
	Provides []string       `hcl:"provides,optional"`
	Before   []string       `hcl:"before,optional"`
	After    []string       `hcl:"after,optional"`
	Config   hcl.Expression `hcl:"config,optional"`
}

// Phase represents a `phase` block inside a chain.
type Phase struct {
	Name   string   `hcl:"name,label"`
	Before []string `hcl:"before,optional"`
	After  []string `hcl:"after,optional"`
}

// Chain represents a `chain` block.
type Chain struct {
	ID         string       `hcl:"id,label"`
	Components []string     `hcl:"components,optional"`
	Inherits   []string     `hcl:"inherits,optional"`
	Excludes   []string     `hcl:"excludes,optional"`
	Phases     []*Phase     `hcl:"phase,block"`
	Inner      []*Component `hcl:"component,block"`
}
