package componentid

import (
	"strings"
)

// ID is the fully qualified, immutable identifier of a component or chain.
// Namespace is nil for top-level ids; inner components carry the id of the
// chain that declares them.
type ID struct {
	Name      string
	Version   Version
	Namespace *ID
}

// NewID creates an unversioned, top-level id.
func NewID(name string) ID {
	return ID{Name: name}
}

// WithNamespace returns a copy of id nested under ns.
func (id ID) WithNamespace(ns ID) ID {
	id.Namespace = &ns
	return id
}

// String serializes the id into its canonical form.
func (id ID) String() string {
	var sb strings.Builder
	sb.WriteString(id.Name)
	if !id.Version.IsEmpty() {
		sb.WriteRune(':')
		sb.WriteString(id.Version.String())
	}
	if id.Namespace != nil {
		sb.WriteRune('@')
		sb.WriteString(id.Namespace.String())
	}
	return sb.String()
}

// Key is the canonical string used to index ids in maps.
func (id ID) Key() string {
	return id.String()
}

// Equal checks for deep equality between two ids.
func (id ID) Equal(other ID) bool {
	return id.Compare(other) == 0
}

// Compare gives a total order over ids: name, then version, then namespace
// (no namespace first).
func (id ID) Compare(other ID) int {
	if c := strings.Compare(id.Name, other.Name); c != 0 {
		return c
	}
	if c := id.Version.Compare(other.Version); c != 0 {
		return c
	}
	return compareNamespace(id.Namespace, other.Namespace)
}

// Spec returns the specification that pins every field the id sets. An
// empty version stays unconstrained.
func (id ID) Spec() Specification {
	spec := Specification{Name: id.Name, Namespace: id.Namespace}
	if !id.Version.IsEmpty() {
		v := id.Version
		spec.Version = &v
	}
	return spec
}

func compareNamespace(a, b *ID) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func namespaceEqual(a, b *ID) bool {
	return compareNamespace(a, b) == 0
}
