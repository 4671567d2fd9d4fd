package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersKeepDocumentOrder(t *testing.T) {
	t.Parallel()

	var c Counters
	require.NoError(t, json.Unmarshal([]byte(`{"b_x": 2, "a_y": 1, "c_z": 3.0}`), &c))
	require.Equal(t, Counters{{Key: "b_x", Value: 2}, {Key: "a_y", Value: 1}, {Key: "c_z", Value: 3}}, c)

	v, ok := c.Get("a_y")
	require.True(t, ok)
	require.Equal(t, int64(1), v)
	require.Equal(t, int64(6), c.Total())

	out, err := json.Marshal(c)
	require.NoError(t, err)
	require.Equal(t, `{"b_x":2,"a_y":1,"c_z":3}`, string(out))
}

func TestCountersRejectNonObjects(t *testing.T) {
	t.Parallel()

	var c Counters
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &c))

	var raw RawPlayerCounters
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","weaponKills":null}`), &raw))
	require.Nil(t, raw.WeaponKills)
}
