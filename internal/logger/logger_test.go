package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.WithField("file", "a.xml").Info("converted")
	assert.Contains(t, buf.String(), "converted")
	assert.Contains(t, buf.String(), "file=a.xml")
}

func TestNew_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "invalid log level")
}
