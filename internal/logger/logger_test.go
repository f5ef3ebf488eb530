package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebug_VerboseOff(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("should not appear")
	assert.Empty(t, buf.String())
}

func TestDebug_VerboseOn(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetVerbose(false)
	}()
	SetVerbose(true)

	Debug("value=%d", 42)
	assert.Equal(t, "[DEBUG] value=42\n", buf.String())
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetVerbose(false)
	}()
	SetVerbose(true)

	Section("Ranking")
	assert.Contains(t, buf.String(), "=== Ranking ===")
}

func TestError_AlwaysPrinted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("store corrupt: %s", "bad json")
	assert.Equal(t, "[ERROR] store corrupt: bad json\n", buf.String())
}

func TestIsVerbose(t *testing.T) {
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
