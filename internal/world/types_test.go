package world

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoadJSONKeepsBothEndpoints(t *testing.T) {
	r := &Road{ID: 5, A: 1, B: 2, Stages: []Stage{{Faction: 1}}}

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"a":1`)
	assert.Contains(t, string(b), `"b":2`)

	var got Road
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, LocationID(1), got.A)
	assert.Equal(t, LocationID(2), got.B)
	require.Len(t, got.Stages, 1)
}
