package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `{"level":"info","ts":"2024-06-15T10:00:00.000Z","msg":"Client 4 logged in"}
{"level":"info","ts":"2024-06-15T10:00:01.000Z","msg":"Failed login attempt for client acme"}
{"level":"info","ts":"2024-06-15T10:00:02.000Z","msg":"request","method":"POST","path":"/api/drafts","status":201,"duration":0.012}
{"level":"info","ts":"2024-06-15T10:00:03.000Z","msg":"request","method":"PUT","path":"/api/drafts/7/submit","status":409,"duration":0.25}
{"level":"info","ts":"2024-06-15T10:00:03.000Z","msg":"Draft order 7 created by client 4 with 2 items"}
{"level":"info","ts":"2024-06-15T10:00:04.000Z","msg":"Draft order 7 rejected: draft 7 references unusable offers: 3 (expired)"}
{"level":"info","ts":"2024-06-15T10:00:05.000Z","msg":"Draft order 8 submitted by client 4"}
{"level":"error","ts":"2024-06-15T10:00:06.000Z","msg":"Failed to submit draft order 7: boom"}
{"level":"error","ts":"2024-06-15T10:00:07.000Z","msg":"Failed to submit draft order 9: other"}
not json
`

func TestAnalyze(t *testing.T) {
	stats, err := analyze(strings.NewReader(sampleLog))
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Lines)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 7, stats.Levels["info"])
	assert.Equal(t, 2, stats.Levels["error"])
	assert.Equal(t, 2, stats.Requests)
	assert.Equal(t, 1, stats.FailedRequests)
	assert.Equal(t, "PUT /api/drafts/7/submit", stats.SlowestRoute)
	assert.Equal(t, 250*time.Millisecond, stats.SlowestDuration)
	assert.Equal(t, 1, stats.LoginSuccess)
	assert.Equal(t, 1, stats.LoginFailures)
	assert.Equal(t, 1, stats.DraftsCreated)
	assert.Equal(t, 1, stats.DraftsSubmitted)
	assert.Equal(t, 1, stats.DraftsRejected)
	assert.Equal(t, map[string]int{"Failed to submit draft order N": 2}, stats.ErrorPatterns)
}

func TestPrintReport(t *testing.T) {
	stats, err := analyze(strings.NewReader(sampleLog))
	require.NoError(t, err)

	var buf bytes.Buffer
	printReport(&buf, stats, 5)
	out := buf.String()
	assert.Contains(t, out, "Rejected for offers: 1")
	assert.Contains(t, out, "   2  Failed to submit draft order N")
}
