package componentid

import "strings"

// Specification is a partial identifier. A nil Version or Namespace leaves
// that field unconstrained.
type Specification struct {
	Name      string
	Version   *Version
	Namespace *ID
}

// NewSpecification creates a specification constraining only the name.
func NewSpecification(name string) Specification {
	return Specification{Name: name}
}

// Matches reports whether id satisfies the specification: same name, same
// namespace when one is given, and when a version is given the same major
// with id's version at least the specified one.
func (s Specification) Matches(id ID) bool {
	if s.Name != id.Name {
		return false
	}
	if s.Namespace != nil && !namespaceEqual(s.Namespace, id.Namespace) {
		return false
	}
	return s.Version == nil || versionCompatible(*s.Version, id.Version)
}

// Covers reports whether s, used as an exclusion, removes the reference
// other. Every field s constrains must be pinned by other and compatible
// with it.
func (s Specification) Covers(other Specification) bool {
	if s.Name != other.Name {
		return false
	}
	if s.Namespace != nil && (other.Namespace == nil || !namespaceEqual(s.Namespace, other.Namespace)) {
		return false
	}
	if s.Version == nil {
		return true
	}
	return other.Version != nil && versionCompatible(*s.Version, *other.Version)
}

// String serializes the specification using the id format.
func (s Specification) String() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	if s.Version != nil {
		sb.WriteRune(':')
		sb.WriteString(s.Version.String())
	}
	if s.Namespace != nil {
		sb.WriteRune('@')
		sb.WriteString(s.Namespace.String())
	}
	return sb.String()
}

func versionCompatible(required, actual Version) bool {
	return actual.Major == required.Major && actual.Compare(required) >= 0
}
