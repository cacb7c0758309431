package glcheck

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier is the capability level of a context. It decides which facade
// Open returns.
type Tier uint8

const (
	// TierEmbedded is OpenGL ES 2.0 and later.
	TierEmbedded Tier = iota + 1
	// TierLegacy is desktop OpenGL 2.1.
	TierLegacy
	// TierModern is desktop OpenGL 3.0 and later.
	TierModern
)

func (t Tier) String() string {
	switch t {
	case TierEmbedded:
		return "Embedded"
	case TierLegacy:
		return "Legacy"
	case TierModern:
		return "Modern"
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// Version is a parsed context version string.
type Version struct {
	Tier  Tier
	Major int
	Minor int
	Raw   string
}

func (v Version) String() string {
	if v.Tier == TierEmbedded {
		return fmt.Sprintf("OpenGL ES %d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("OpenGL %d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is major.minor or later.
func (v Version) AtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

const esPrefix = "OpenGL ES "

const requiredVersion = "At least OpenGL 2.1 or OpenGL ES2 is required"

// ParseVersion parses the string returned for GL_VERSION.
//
// Strings starting with "OpenGL ES " are OpenGL ES contexts. Anything
// else is a desktop context, where 2.1 maps to TierLegacy and 3.0 or
// later to TierModern. Older or unparseable versions return an
// *UnsupportedError.
func ParseVersion(s string) (Version, error) {
	rest, es := strings.CutPrefix(s, esPrefix)

	majorText, minorText, ok := strings.Cut(rest, ".")
	if !ok {
		return Version{}, &UnsupportedError{Message: fmt.Sprintf("unparseable version %q: %s", s, requiredVersion)}
	}
	major, err := strconv.Atoi(majorText)
	if err != nil {
		return Version{}, &UnsupportedError{Message: fmt.Sprintf("unparseable version %q: %s", s, requiredVersion)}
	}
	end := strings.IndexFunc(minorText, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		minorText = minorText[:end]
	}
	minor, err := strconv.Atoi(minorText)
	if err != nil {
		return Version{}, &UnsupportedError{Message: fmt.Sprintf("unparseable version %q: %s", s, requiredVersion)}
	}

	v := Version{Major: major, Minor: minor, Raw: s}
	switch {
	case es && major >= 2:
		v.Tier = TierEmbedded
	case !es && major >= 3:
		v.Tier = TierModern
	case !es && major == 2 && minor == 1:
		v.Tier = TierLegacy
	default:
		return Version{}, &UnsupportedError{Message: requiredVersion}
	}
	return v, nil
}
