package componentid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// qualifierRegex limits qualifiers to a conservative character set.
var qualifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)

// Version is a (major, minor, micro, qualifier) tuple with a total order.
// The zero value is the empty version, which is what unversioned ids carry.
type Version struct {
	Major     int
	Minor     int
	Micro     int
	Qualifier string
}

// NewVersion creates a version without a qualifier.
func NewVersion(major, minor, micro int) Version {
	return Version{Major: major, Minor: minor, Micro: micro}
}

// ParseVersion parses `major[.minor[.micro[.qualifier]]]`. Missing fields are
// zero and the empty string yields the empty version.
func ParseVersion(raw string) (Version, error) {
	var v Version
	if raw == "" {
		return v, nil
	}

	parts := strings.SplitN(raw, ".", 4)
	nums := []*int{&v.Major, &v.Minor, &v.Micro}
	for i, part := range parts {
		if i == 3 {
			if part == "" || !qualifierRegex.MatchString(part) {
				return Version{}, fmt.Errorf("invalid version qualifier %q in %q", part, raw)
			}
			v.Qualifier = part
			break
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || part != strconv.Itoa(n) {
			return Version{}, fmt.Errorf("invalid version component %q in %q", part, raw)
		}
		*nums[i] = n
	}
	return v, nil
}

// IsEmpty reports whether v is the empty version.
func (v Version) IsEmpty() bool {
	return v == Version{}
}

// Compare returns -1, 0 or +1 comparing major, minor, micro and then the
// qualifier lexically. The empty qualifier sorts first.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpInt(v.Minor, other.Minor)
	case v.Micro != other.Micro:
		return cmpInt(v.Micro, other.Micro)
	}
	return strings.Compare(v.Qualifier, other.Qualifier)
}

// String renders the shortest form that parses back to the same version.
func (v Version) String() string {
	switch {
	case v.Qualifier != "":
		return fmt.Sprintf("%d.%d.%d.%s", v.Major, v.Minor, v.Micro, v.Qualifier)
	case v.Micro != 0:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
	case v.Minor != 0:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(v.Major)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	return 1
}
