package directive

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowFind(t *testing.T) {
	row := NewRow().Add("a", "1").Add("b", 2)

	assert.Equal(t, 0, row.Find("a"))
	assert.Equal(t, 1, row.Find("b"))
	assert.Equal(t, -1, row.Find("missing"))
}

func TestRowAddOrSet(t *testing.T) {
	t.Run("appends a new column", func(t *testing.T) {
		row := NewRow().Add("a", "1")
		row.AddOrSet("b", "2")

		require.Equal(t, 2, row.Len())
		assert.Equal(t, "b", row.Column(1))
		assert.Equal(t, "2", row.Value(1))
	})

	t.Run("overwrites in place without reordering", func(t *testing.T) {
		row := NewRow().Add("a", "1").Add("b", "2").Add("c", "3")
		row.AddOrSet("b", "updated")

		require.Equal(t, 3, row.Len())
		assert.Equal(t, "b", row.Column(1))
		assert.Equal(t, "updated", row.Value(1))
		assert.Equal(t, "3", row.Value(2))
	})

	t.Run("is idempotent on column set", func(t *testing.T) {
		row := NewRow().Add("a", "1")
		row.AddOrSet("a_redacted", "x")
		row.AddOrSet("a_redacted", "y")

		assert.Equal(t, 2, row.Len())
		assert.Equal(t, "y", row.Value(row.Find("a_redacted")))
	})
}

func TestRowJSON(t *testing.T) {
	t.Run("marshal preserves column order", func(t *testing.T) {
		row := NewRow().Add("zebra", "z").Add("alpha", 1).Add("mid", nil)

		data, err := json.Marshal(row)
		require.NoError(t, err)
		assert.Equal(t, `{"zebra":"z","alpha":1,"mid":null}`, string(data))
	})

	t.Run("unmarshal preserves document order", func(t *testing.T) {
		row := NewRow()
		require.NoError(t, json.Unmarshal([]byte(`{"b":"two","a":1,"c":true}`), row))

		require.Equal(t, 3, row.Len())
		assert.Equal(t, "b", row.Column(0))
		assert.Equal(t, "a", row.Column(1))
		assert.Equal(t, "c", row.Column(2))
		assert.Equal(t, "two", row.Value(0))
		assert.Equal(t, int64(1), row.Value(1))
		assert.Equal(t, true, row.Value(2))
	})

	t.Run("round trip", func(t *testing.T) {
		in := `{"body":"contact a@b.com now","id":7,"tags":["x","y"]}`
		row := NewRow()
		require.NoError(t, json.Unmarshal([]byte(in), row))

		out, err := json.Marshal(row)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	})

	t.Run("rejects non-object documents", func(t *testing.T) {
		row := NewRow()
		assert.Error(t, json.Unmarshal([]byte(`[1,2]`), row))
		assert.Error(t, json.Unmarshal([]byte(`"text"`), row))
	})

	t.Run("string values stay strings for type switches", func(t *testing.T) {
		row := NewRow()
		require.NoError(t, json.Unmarshal([]byte(`{"body":"text","n":3.5}`), row))

		_, isString := row.Value(0).(string)
		assert.True(t, isString)
		_, isString = row.Value(1).(string)
		assert.False(t, isString)
	})
}
