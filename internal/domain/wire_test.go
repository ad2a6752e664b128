package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID_AcceptsStringsAndNumbers(t *testing.T) {
	var ids []FlexibleID
	require.NoError(t, json.Unmarshal([]byte(`["abc", 1736499600000]`), &ids))
	assert.Equal(t, []FlexibleID{"abc", "1736499600000"}, ids)

	var bad FlexibleID
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestFormatInstant_UTCWithMilliseconds(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	at := time.Date(2025, 1, 10, 10, 0, 0, 123456789, berlin)

	assert.Equal(t, "2025-01-10T09:00:00.123Z", FormatInstant(at))

	parsed, err := ParseInstant(FormatInstant(at))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at.Truncate(time.Millisecond)))
}
