package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	reset(t)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	buf := reset(t)

	SetVerbose(false)
	Debug("hidden %s", "message")
	assert.Zero(t, buf.Len())

	SetVerbose(true)
	Debug("resolved %d chunks", 3)
	assert.Equal(t, "[DEBUG] resolved 3 chunks\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := reset(t)
	SetVerbose(true)

	Section("Ingestion")

	assert.Equal(t, "\n=== Ingestion ===\n", buf.String())
}

func TestInfoAndWarn(t *testing.T) {
	buf := reset(t)
	SetVerbose(true)

	Info("walking corpus at %s", "/tmp/docs")
	Warn("cannot decode %s", "broken.docx")

	assert.Contains(t, buf.String(), "[INFO] walking corpus at /tmp/docs\n")
	assert.Contains(t, buf.String(), "[WARN] cannot decode broken.docx\n")
}

func TestConcurrentAccess(t *testing.T) {
	reset(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(true)
			Debug("worker %d", n)
			IsVerbose()
			SetVerbose(false)
		}(i)
	}
	wg.Wait()
}
