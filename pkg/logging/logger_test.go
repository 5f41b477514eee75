package logging_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tufitko/minmaxheap/pkg/encoding/json"
	"github.com/tufitko/minmaxheap/pkg/logging"
)

func TestServiceLogger_Fields(t *testing.T) {
	buf := new(bytes.Buffer)
	l := logging.New(buf, logging.DebugLevel)

	l.WithFields(logging.Fields{"index": 7, "len": 3}).
		WithError(errors.New("boom")).
		Warn("heapify skipped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "heapify skipped", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.EqualValues(t, 7, entry["index"])
	assert.EqualValues(t, 3, entry["len"])
}

func TestServiceLogger_Level(t *testing.T) {
	buf := new(bytes.Buffer)
	l := logging.New(buf, logging.WarnLevel)

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.SetLevel(logging.InfoLevel)
	l.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, logging.DebugLevel, level)

	_, err = logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestServiceLogger_Log(t *testing.T) {
	buf := new(bytes.Buffer)
	l := logging.New(buf, logging.InfoLevel)

	l.Log(logging.DebugLevel, "hidden")
	assert.Zero(t, buf.Len())

	l.Log(logging.ErrorLevel, "level switched")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "level switched", entry["msg"])
}
