// File: lixenwraith/logprops/boolean.go
package logprops

import "strings"

// BooleanProperty is the state of a boolean-valued property.
type BooleanProperty int

const (
	// Absent means the property is not set.
	Absent BooleanProperty = iota
	// Present means the property is set to an empty string.
	Present
	// False means the property is set to anything other than "true".
	False
	// True means the property is set to "true", in any case.
	True
)

// ParseBooleanProperty classifies value. found reports whether the
// property was set at all.
func ParseBooleanProperty(value string, found bool) BooleanProperty {
	switch {
	case !found:
		return Absent
	case value == "":
		return Present
	case strings.EqualFold(value, "true"):
		return True
	default:
		return False
	}
}

// Resolve maps the state to a bool using absentDefault for Absent and
// presentDefault for Present.
func (b BooleanProperty) Resolve(absentDefault, presentDefault bool) bool {
	switch b {
	case Absent:
		return absentDefault
	case Present:
		return presentDefault
	case True:
		return true
	default:
		return false
	}
}

// IsSet reports whether the property was defined, even if empty.
func (b BooleanProperty) IsSet() bool {
	return b != Absent
}

func (b BooleanProperty) String() string {
	switch b {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case False:
		return "false"
	case True:
		return "true"
	default:
		return "unknown"
	}
}
