package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWritesLogfmtLines(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf)

	Info("crawl started", "seeds", 3)
	Warn("retrying fetch", "url", "https://example.com")
	Error("fetch failed", "url", "https://example.com", "error", "timeout")

	output := buf.String()
	assert.True(t, strings.Contains(output, "crawl started"))
	assert.True(t, strings.Contains(output, "level=info"))
	assert.True(t, strings.Contains(output, "level=warn"))
	assert.True(t, strings.Contains(output, "level=error"))
	assert.True(t, strings.Contains(output, "seeds=3"))
}
