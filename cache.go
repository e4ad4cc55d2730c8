package transit

import "fmt"

// cacheCodeDigits is the size of the alphabet used to encode cache indices:
// one printable-ASCII symbol per digit, starting at cacheBaseChar.
const cacheCodeDigits = 44

// cacheBaseChar is the code point of the first cache-code digit ('0').
const cacheBaseChar = 48

// cacheOverflowAt is the first distinct-key count this cache refuses to
// admit: single-digit codes cover indices 0..43, two-digit codes cover
// 44*44 more (44..1979), so index 1980 would need a third digit and is
// rejected instead (spec §4.2).
const cacheOverflowAt = cacheCodeDigits + cacheCodeDigits*cacheCodeDigits

// KeyCache assigns short back-reference codes to strings seen in key
// position (map keys and tag names) on the cached JSON surface, in
// first-seen order. Strings of length 3 or less are never admitted: a
// code is itself 2 or 3 characters long, so caching them saves at most a
// character per occurrence.
type KeyCache struct {
	index      map[string]int
	order      []string
	overflowed bool
}

// NewKeyCache returns an empty cache ready for use in a single encode or
// decode session. A cache must not be shared between sessions.
func NewKeyCache() *KeyCache {
	return &KeyCache{index: make(map[string]int)}
}

// Admit records s as seen, if eligible, and returns the code to emit in its
// place. cached reports whether s had already been seen before this call
// (in which case code is the back-reference to use); when cached is false
// and ok is true, code is the code this occurrence should be tagged with
// so later occurrences can reference it. When ok is false, s is not
// cached (it is too short, or the code space is exhausted and Overflowed
// now reports true) and should be emitted literally.
func (c *KeyCache) Admit(s string) (code string, cached, ok bool) {
	if len(s) <= 3 {
		return "", false, false
	}
	if idx, seen := c.index[s]; seen {
		return encodeCacheIndex(idx), true, true
	}
	idx := len(c.order)
	if idx >= cacheOverflowAt {
		c.overflowed = true
		return "", false, false
	}
	c.index[s] = idx
	c.order = append(c.order, s)
	return encodeCacheIndex(idx), false, true
}

// Resolve returns the string previously admitted under code, for decode.
func (c *KeyCache) Resolve(code string) (string, error) {
	idx, err := decodeCacheIndex(code)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(c.order) {
		return "", fmt.Errorf("%w: cache code %q", ErrCacheMiss, code)
	}
	return c.order[idx], nil
}

// Observe records s as seen during decode without producing a code,
// mirroring the encode-side bookkeeping so later back-references resolve.
// It is a no-op for strings too short to have been cached on encode.
func (c *KeyCache) Observe(s string) {
	if len(s) <= 3 {
		return
	}
	if _, seen := c.index[s]; seen {
		return
	}
	idx := len(c.order)
	c.index[s] = idx
	c.order = append(c.order, s)
}

// Overflowed reports whether this cache has ever refused to admit a new
// key because its code space (1980 distinct keys) was exhausted.
func (c *KeyCache) Overflowed() bool {
	return c.overflowed
}

// IsCacheCode reports whether s has the shape of a cache back-reference
// (the leading "^" marker plus one or two alphabet digits), without
// consulting any particular cache's contents.
func IsCacheCode(s string) bool {
	if len(s) < 2 || len(s) > 3 || s[0] != '^' {
		return false
	}
	for _, r := range s[1:] {
		if r < cacheBaseChar || r >= cacheBaseChar+cacheCodeDigits {
			return false
		}
	}
	return true
}

func encodeCacheIndex(idx int) string {
	if idx < cacheCodeDigits {
		return "^" + string(rune(cacheBaseChar+idx))
	}
	idx -= cacheCodeDigits
	hi := idx / cacheCodeDigits
	lo := idx % cacheCodeDigits
	return "^" + string(rune(cacheBaseChar+hi)) + string(rune(cacheBaseChar+lo))
}

func decodeCacheIndex(code string) (int, error) {
	if !IsCacheCode(code) {
		return 0, fmt.Errorf("%w: malformed cache code %q", ErrCacheMiss, code)
	}
	digits := code[1:]
	if len(digits) == 1 {
		return int(digits[0]) - cacheBaseChar, nil
	}
	hi := int(digits[0]) - cacheBaseChar
	lo := int(digits[1]) - cacheBaseChar
	return cacheCodeDigits + hi*cacheCodeDigits + lo, nil
}
