package paint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Parse(t *testing.T) {
	assert := assert.New(t)

	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		assert.NoError(err)
		assert.Equal(m, got)
	}
	m, err := ParseMode("  Rectangle ")
	assert.NoError(err)
	assert.Equal(Rectangle, m)

	_, err = ParseMode("spray")
	assert.Error(err)
	assert.Equal("Mode(42)", Mode(42).String())
	assert.Len(Modes(), 10)
}

func TestMode_JSON(t *testing.T) {
	var msg struct {
		Mode Mode `json:"mode"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"heart"}`), &msg))
	assert.Equal(t, Heart, msg.Mode)

	out, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"heart"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"mode":"laser"}`), &msg))
	_, err = json.Marshal(struct{ M Mode }{Mode(-1)})
	assert.Error(t, err)
}
