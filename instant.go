package transit

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// parseInstantCode narrows a "~t<timestamp>" string to a time.Time, trying
// strict RFC3339 first and falling back to lenient parsing
// (github.com/araddon/dateparse) for documents produced by non-conformant
// encoders. This package only ever emits strict RFC3339Nano; the fallback
// is a defensive-read, strict-write posture and never changes what gets
// written.
func parseInstantCode(s string) (time.Time, bool) {
	if !strings.HasPrefix(s, codeInstant) {
		return time.Time{}, false
	}
	raw := s[len(codeInstant):]
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
