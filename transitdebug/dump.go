// Package transitdebug renders a Transit host-JSON node as YAML for
// human-readable test failure output and manual inspection of cached
// surface back-reference placement. It never participates in encoding or
// decoding semantics.
package transitdebug

import (
	"gopkg.in/yaml.v3"
)

// Dump renders node (as produced by transit.EncodeVerbose/EncodeCached)
// as a YAML document. It exists because the cached surface collapses
// everything into nested arrays, which is terse for wire transport but
// hard to eyeball as JSON; YAML's block scalars restore some of that
// legibility without changing the underlying node at all.
func Dump(node any) (string, error) {
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// MustDump is Dump for call sites (mainly tests) that would just panic on
// a marshal failure anyway.
func MustDump(node any) string {
	s, err := Dump(node)
	if err != nil {
		panic(err)
	}
	return s
}
