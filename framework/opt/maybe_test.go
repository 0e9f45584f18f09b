package opt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMaybeBasics(t *testing.T) {
	none := None[int]()
	assert.False(t, none.IsDefined())
	assert.Equal(t, 0, none.Value())
	assert.Equal(t, 3, none.OrElse(3))
	assert.Equal(t, "[none]", none.String())

	some := Some(2)
	assert.True(t, some.IsDefined())
	assert.Equal(t, 2, some.Value())
	assert.Equal(t, 2, some.OrElse(3))
	assert.Equal(t, "2", some.String())
}

func TestMaybeJSON(t *testing.T) {
	bytes, err := json.Marshal(Some("x"))
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(bytes))

	bytes, err = json.Marshal(None[string]())
	require.NoError(t, err)
	assert.Equal(t, `null`, string(bytes))

	var m Maybe[string]
	require.NoError(t, json.Unmarshal([]byte(`"x"`), &m))
	assert.Equal(t, Some("x"), m)
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.False(t, m.IsDefined())
}

func TestMaybeYAML(t *testing.T) {
	type doc struct {
		Bucket Maybe[string] `yaml:"bucket"`
	}

	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("bucket: artifacts\n"), &d))
	assert.Equal(t, Some("artifacts"), d.Bucket)

	d = doc{}
	require.NoError(t, yaml.Unmarshal([]byte("bucket: null\n"), &d))
	assert.False(t, d.Bucket.IsDefined())

	d = doc{}
	require.NoError(t, yaml.Unmarshal([]byte("{}\n"), &d))
	assert.False(t, d.Bucket.IsDefined())

	out, err := yaml.Marshal(doc{Bucket: Some("artifacts")})
	require.NoError(t, err)
	assert.Equal(t, "bucket: artifacts\n", string(out))
}
