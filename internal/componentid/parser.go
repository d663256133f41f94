package componentid

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex accepts plain names as well as dotted class-like names.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.$/-]+$`)

// isValidName checks for undesirable but technically valid names.
func isValidName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return nameRegex.MatchString(name)
}

// ParseID creates an ID by parsing its canonical string representation.
func ParseID(raw string) (ID, error) {
	name, version, namespace, err := split(raw)
	if err != nil {
		return ID{}, err
	}

	id := ID{Name: name}
	if version != "" {
		if id.Version, err = ParseVersion(version); err != nil {
			return ID{}, fmt.Errorf("invalid id %q: %w", raw, err)
		}
	}
	if namespace != "" {
		ns, err := ParseID(namespace)
		if err != nil {
			return ID{}, fmt.Errorf("invalid namespace in id %q: %w", raw, err)
		}
		id.Namespace = &ns
	}
	return id, nil
}

// ParseSpecification parses the same format as ParseID, leaving absent
// fields unconstrained.
func ParseSpecification(raw string) (Specification, error) {
	name, version, namespace, err := split(raw)
	if err != nil {
		return Specification{}, err
	}

	spec := Specification{Name: name}
	if version != "" {
		v, err := ParseVersion(version)
		if err != nil {
			return Specification{}, fmt.Errorf("invalid specification %q: %w", raw, err)
		}
		spec.Version = &v
	}
	if namespace != "" {
		ns, err := ParseID(namespace)
		if err != nil {
			return Specification{}, fmt.Errorf("invalid namespace in specification %q: %w", raw, err)
		}
		spec.Namespace = &ns
	}
	return spec, nil
}

// MustParseID is ParseID for literals known to be valid.
func MustParseID(raw string) ID {
	id, err := ParseID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// MustParseSpecification is ParseSpecification for literals known to be valid.
func MustParseSpecification(raw string) Specification {
	spec, err := ParseSpecification(raw)
	if err != nil {
		panic(err)
	}
	return spec
}

// split breaks `name[:version][@namespace]` into its raw parts. The namespace
// is everything after the first '@' so that namespaces can nest.
func split(raw string) (name, version, namespace string, err error) {
	if raw == "" {
		return "", "", "", fmt.Errorf("identifier cannot be empty")
	}

	head := raw
	if at := strings.IndexByte(raw, '@'); at >= 0 {
		head, namespace = raw[:at], raw[at+1:]
		if namespace == "" {
			return "", "", "", fmt.Errorf("identifier %q has an empty namespace", raw)
		}
	}

	name = head
	if colon := strings.IndexByte(head, ':'); colon >= 0 {
		name, version = head[:colon], head[colon+1:]
		if version == "" {
			return "", "", "", fmt.Errorf("identifier %q has an empty version", raw)
		}
	}

	if !isValidName(name) {
		return "", "", "", fmt.Errorf("invalid name %q in identifier %q", name, raw)
	}
	return name, version, namespace, nil
}
