package helpers

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SortedKeys returns the keys of a map in sorted order, so that anything derived
// from a map (injected environments, diagnostic listings) comes out deterministic.
func SortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// MergeEnviron overlays vars onto a base environment in "KEY=VALUE" form. Later
// values win over base values for the same key. The result is sorted by key.
func MergeEnviron(base []string, vars map[string]string) []string {
	merged := make(map[string]string, len(base)+len(vars))
	for _, kv := range base {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			merged[kv[:i]] = kv[i+1:]
		}
	}
	for k, v := range vars {
		merged[k] = v
	}
	ret := make([]string, 0, len(merged))
	for _, k := range SortedKeys(merged) {
		ret = append(ret, k+"="+merged[k])
	}
	return ret
}
