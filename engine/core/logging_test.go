package core

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogWarnOnceConcurrent(t *testing.T) {
	var buf bytes.Buffer
	getLogger().SetOutput(&buf)
	t.Cleanup(func() { getLogger().SetOutput(os.Stderr) })

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			LogWarnOnce("concurrent-key", "shared warning")
			LogDebug("debug from %s", "worker")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, strings.Count(buf.String(), "shared warning"))
	assert.Equal(t, 16, strings.Count(buf.String(), "debug from worker"))
}
