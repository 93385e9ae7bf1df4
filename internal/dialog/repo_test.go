package dialog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadGetters(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"recipe_id":"abc","qty":12}`), &p))

	s, ok := GetString(p, "recipe_id")
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	n, ok := GetInt(p, "qty")
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	_, ok = GetString(p, "qty")
	assert.False(t, ok)
	_, ok = GetInt(p, "missing")
	assert.False(t, ok)
	_, ok = GetInt(Payload{"qty": 5}, "qty")
	assert.True(t, ok)
}
