package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2026, 11, 15, 13, 45, 0, 0, time.Local))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-11-15"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"15/11/2026"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 11, 15, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2026-11-15", d.Format("2006-01-02"))

	var fromString Date
	require.NoError(t, fromString.Scan("2026-11-15"))
	assert.True(t, fromString.Equal(d.Time))
}

func TestDateAfter(t *testing.T) {
	today := Today()
	tomorrow := DaysFromNow(1)

	assert.True(t, tomorrow.After(today))
	assert.False(t, today.After(tomorrow))
	assert.False(t, today.After(today))
}
