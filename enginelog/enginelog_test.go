package enginelog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttachesComponentField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "controller", zerolog.InfoLevel)
	log.Info().Msg("applied transaction")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "controller", line["component"])
	assert.Equal(t, "applied transaction", line["message"])
}

func TestFromLevelNameFallsBackToInfo(t *testing.T) {
	log := FromLevelName("calc", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestWithSheetAddsField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "controller", zerolog.InfoLevel).WithSheet(3)
	log.Info().Msg("dirtied")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.EqualValues(t, 3, line["sheet"])
}
