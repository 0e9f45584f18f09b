package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestMergeEnviron(t *testing.T) {
	base := []string{"PATH=/usr/bin", "HOME=/home/ci", "EMPTY="}

	merged := MergeEnviron(base, map[string]string{
		"HOME":      "/tmp/override",
		"NEW_THING": "value",
	})

	assert.Equal(t, []string{
		"EMPTY=",
		"HOME=/tmp/override",
		"NEW_THING=value",
		"PATH=/usr/bin",
	}, merged)
}

func TestMergeEnvironIgnoresMalformedBaseEntries(t *testing.T) {
	merged := MergeEnviron([]string{"notakeyvaluepair", "A=1"}, nil)
	assert.Equal(t, []string{"A=1"}, merged)
}
