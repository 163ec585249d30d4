package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeAction(t *testing.T) {
	data := EncodeAction("take", 17)
	assert.Equal(t, "take_17", data)

	verb, id, err := DecodeAction(data)
	require.NoError(t, err)
	assert.Equal(t, "take", verb)
	assert.Equal(t, int64(17), id)
}

func TestDecodeActionVerbWithUnderscore(t *testing.T) {
	verb, id, err := DecodeAction("reopen_all_5")
	require.NoError(t, err)
	assert.Equal(t, "reopen_all", verb)
	assert.Equal(t, int64(5), id)
}

func TestDecodeActionMalformed(t *testing.T) {
	for _, data := range []string{"", "take", "take_", "_17", "take_abc", "take_17x"} {
		_, _, err := DecodeAction(data)
		assert.Error(t, err, "payload %q should not decode", data)
	}
}

func TestEncodeDecodeKey(t *testing.T) {
	data := EncodeKey(CBPrefixList, "in_progress")
	assert.Equal(t, "list_in_progress", data)

	key, ok := DecodeKey(data, CBPrefixList)
	require.True(t, ok)
	assert.Equal(t, "in_progress", key)

	_, ok = DecodeKey("cat_hardware", CBPrefixList)
	assert.False(t, ok)
}
