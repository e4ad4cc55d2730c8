package transit

import (
	"strconv"
	"strings"
)

// formatFloat renders a float64 the way the ~d scalar requires: the
// shortest decimal representation that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// hasTildeCode reports whether s begins with a Transit tilde-code marker
// this package recognizes, as opposed to a literal (possibly
// tilde-quoted) string.
func hasTildeCode(s string) bool {
	switch {
	case strings.HasPrefix(s, codeInt):
		return true
	case strings.HasPrefix(s, codeFloat):
		return true
	case s == codeTrue || s == codeFalse:
		return true
	case s == codeNull:
		return true
	case strings.HasPrefix(s, codeInstant):
		return true
	case strings.HasPrefix(s, codeTagPfx):
		return true
	default:
		return false
	}
}

func parseIntCode(s string) (int64, bool) {
	if !strings.HasPrefix(s, codeInt) {
		return 0, false
	}
	n, err := strconv.ParseInt(s[len(codeInt):], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloatCode(s string) (float64, bool) {
	if !strings.HasPrefix(s, codeFloat) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[len(codeFloat):], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseBoolCode(s string) (bool, bool) {
	switch s {
	case codeTrue:
		return true, true
	case codeFalse:
		return false, true
	default:
		return false, false
	}
}

// asIntValue narrows a value-position host-JSON number to int64. Both
// surfaces accept a native int64 (the shape Writer.Int builds in-memory)
// and a float64 (the shape any JSON number takes once it has round-tripped
// through encoding/json.Unmarshal into an any), rejecting floats with a
// fractional part.
func asIntValue(node any) (int64, bool) {
	switch v := node.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

// asFloatValue narrows a value-position host-JSON number to float64,
// accepting the same native-int64/float64 shapes asIntValue does.
func asFloatValue(node any) (float64, bool) {
	switch v := node.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
