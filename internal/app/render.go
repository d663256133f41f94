package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/generation"
)

// ComponentView is the rendered form of a component within a chain.
type ComponentView struct {
	ID       string            `json:"id"`
	Class    string            `json:"class"`
	Provides []string          `json:"provides,omitempty"`
	Before   []string          `json:"before,omitempty"`
	After    []string          `json:"after,omitempty"`
	Config   map[string]string `json:"config,omitempty"`
}

// ChainView is the rendered form of an assembled chain.
type ChainView struct {
	ID         string          `json:"id"`
	Components []ComponentView `json:"components"`
	Phases     []string        `json:"phases,omitempty"`
}

// GenerationView is the rendered form of a published generation.
type GenerationView struct {
	Generation string      `json:"generation"`
	BuiltAt    time.Time   `json:"built_at"`
	Sources    []string    `json:"sources"`
	Chains     []ChainView `json:"chains"`
}

// NewGenerationView renders gen. Chains are in id order.
func NewGenerationView(gen *generation.Generation[*catalog.Instance]) GenerationView {
	v := GenerationView{
		Generation: gen.ID.String(),
		BuiltAt:    gen.BuiltAt,
		Sources:    gen.Source,
		Chains:     make([]ChainView, 0, gen.Chains.Len()),
	}
	for _, c := range gen.Chains.All() {
		cv := ChainView{ID: c.ID().String(), Phases: c.Phases(), Components: []ComponentView{}}
		for _, inst := range c.Components() {
			deps := inst.Dependencies()
			cv.Components = append(cv.Components, ComponentView{
				ID:       inst.ID().String(),
				Class:    inst.Class,
				Provides: deps.Provides,
				Before:   deps.Before,
				After:    deps.After,
				Config:   inst.Config,
			})
		}
		v.Chains = append(v.Chains, cv)
	}
	return v
}

// WriteJSON writes the view as indented JSON.
func (v GenerationView) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteText writes a human-readable listing of every chain.
func (v GenerationView) WriteText(w io.Writer) error {
	var sb strings.Builder
	for i, c := range v.Chains {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "chain %s\n", c.ID)
		if len(c.Phases) > 0 {
			fmt.Fprintf(&sb, "  phases: %s\n", strings.Join(c.Phases, ", "))
		}
		if len(c.Components) == 0 {
			sb.WriteString("  (no components)\n")
		}
		for j, comp := range c.Components {
			fmt.Fprintf(&sb, "  %d. %s (%s)\n", j+1, comp.ID, comp.Class)
			keys := make([]string, 0, len(comp.Config))
			for k := range comp.Config {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&sb, "       %s = %q\n", k, comp.Config[k])
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Write renders v in the given format, "text" or "json".
func (v GenerationView) Write(w io.Writer, format string) error {
	if format == "json" {
		return v.WriteJSON(w)
	}
	return v.WriteText(w)
}
