package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" debug "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestComponentLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	}()

	logger := NewLogger(LogLevelWarn).Component("Loader")
	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)

	assert.Equal(t, "[WARN] [Loader] shown 2\n", buf.String())
	assert.Equal(t, LogLevelWarn, logger.GetLevel())
}

func TestSetLevelReachesComponents(t *testing.T) {
	root := NewLogger(LogLevelError)
	component := root.Component("Sessions")
	assert.Equal(t, LogLevelError, component.GetLevel())

	root.SetLevel(LogLevelDebug)
	assert.Equal(t, LogLevelDebug, component.GetLevel())
}
