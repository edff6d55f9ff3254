package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/entity"
	"github.com/docstreamhq/docstream/internal/repository"
)

// sseFrame is one parsed frame from the wire.
type sseFrame struct {
	ID    string
	Event string
	Data  string
}

func parseSSE(t *testing.T, body io.Reader) (retry string, comments []string, frames []sseFrame) {
	t.Helper()
	scanner := bufio.NewScanner(body)
	var cur sseFrame
	flush := func() {
		if cur.Event != "" || cur.Data != "" {
			frames = append(frames, cur)
		}
		cur = sseFrame{}
	}
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "retry: "):
			retry = strings.TrimPrefix(line, "retry: ")
		case strings.HasPrefix(line, ": "):
			comments = append(comments, strings.TrimPrefix(line, ": "))
		case strings.HasPrefix(line, "id: "):
			cur.ID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			cur.Event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			cur.Data = strings.TrimPrefix(line, "data: ")
		}
	}
	flush()
	return retry, comments, frames
}

func startProgressServer(t *testing.T, store repository.Store, b bus.Bus, heartbeat, lifetime time.Duration) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := &ProgressHandler{
		Store:       store,
		Bus:         b,
		Logger:      testLogger(),
		Heartbeat:   heartbeat,
		MaxLifetime: lifetime,
		RetryMillis: 3000,
	}
	router.GET("/documents/:jobID/progress", handler.Stream)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func seedJob(t *testing.T, store *repository.MemoryStore) (*entity.Document, *entity.ProcessingJob) {
	t.Helper()
	doc, job, err := store.CreateDocumentWithJob(context.Background(), repository.CreateDocumentParams{
		OwnerID:    uuid.New(),
		Title:      "contract",
		StorageKey: "2026/abc-contract.pdf",
		MimeType:   "application/pdf",
		FileSize:   4096,
	})
	require.NoError(t, err)
	return doc, job
}

func TestProgressUnknownJobIs404JSON(t *testing.T) {
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	defer b.Close()
	srv := startProgressServer(t, store, b, time.Minute, time.Minute)

	resp, err := http.Get(srv.URL + "/documents/" + uuid.NewString() + "/progress")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusNotFound, body.StatusCode)
	assert.Equal(t, "Job not found", body.Message)
	assert.Equal(t, "Not Found", body.Error)
}

func TestProgressMalformedJobIDIs404(t *testing.T) {
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	defer b.Close()
	srv := startProgressServer(t, store, b, time.Minute, time.Minute)

	resp, err := http.Get(srv.URL + "/documents/not-a-uuid/progress")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProgressTerminalJobYieldsOneFrameAndCloses(t *testing.T) {
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	defer b.Close()
	_, job := seedJob(t, store)

	completed := constants.JobStatusCompleted
	full := 100
	now := time.Now().UTC()
	require.NoError(t, store.UpdateJob(context.Background(), job.ID, repository.JobPatch{
		Status: &completed, Progress: &full, CompletedAt: &now,
	}))

	srv := startProgressServer(t, store, b, time.Minute, time.Minute)
	resp, err := http.Get(srv.URL + "/documents/" + job.ID.String() + "/progress")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "no", resp.Header.Get("X-Accel-Buffering"))

	retry, _, frames := parseSSE(t, resp.Body)
	assert.Equal(t, "3000", retry)
	require.Len(t, frames, 1)
	assert.Equal(t, "1", frames[0].ID)
	assert.Equal(t, "progress", frames[0].Event)

	var payload streamPayload
	require.NoError(t, json.Unmarshal([]byte(frames[0].Data), &payload))
	assert.Equal(t, job.ID.String(), payload.JobID)
	assert.Equal(t, "COMPLETED", payload.Stage)
	assert.Equal(t, 100, payload.Percent)
	assert.Equal(t, "Processing completed successfully", payload.Message)
}

func TestProgressStreamsLiveEventsUntilTerminal(t *testing.T) {
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	defer b.Close()
	doc, job := seedJob(t, store)

	srv := startProgressServer(t, store, b, time.Minute, time.Minute)

	go func() {
		channel := entity.ProgressChannel(job.ID)
		// Wait for the handler to attach; the probe payload is not a valid
		// event and is skipped without emitting a frame.
		for {
			n, _ := b.Publish(context.Background(), channel, []byte("probe"))
			if n > 0 {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		running := entity.ProgressEvent{
			JobID: job.ID, DocumentID: doc.ID,
			Status: constants.JobStatusRunning, Progress: 48,
			Message: "Processing page 6 of 12", CurrentPage: 6, TotalPages: 12,
			PublishedAt: time.Now().UTC(),
		}
		payload, _ := running.Encode()
		b.Publish(context.Background(), channel, payload)

		done := entity.ProgressEvent{
			JobID: job.ID, DocumentID: doc.ID,
			Status: constants.JobStatusCompleted, Progress: 100,
			Message: "Processing complete — 12 pages extracted", CurrentPage: 12, TotalPages: 12,
			PublishedAt: time.Now().UTC(),
		}
		payload, _ = done.Encode()
		b.Publish(context.Background(), channel, payload)
	}()

	resp, err := http.Get(srv.URL + "/documents/" + job.ID.String() + "/progress")
	require.NoError(t, err)
	defer resp.Body.Close()

	retry, _, frames := parseSSE(t, resp.Body)
	assert.Equal(t, "3000", retry)
	require.Len(t, frames, 3)

	for i, frame := range frames {
		assert.Equal(t, fmt.Sprintf("%d", i+1), frame.ID)
		assert.Equal(t, "progress", frame.Event)
	}

	var snapshot, live, terminal streamPayload
	require.NoError(t, json.Unmarshal([]byte(frames[0].Data), &snapshot))
	require.NoError(t, json.Unmarshal([]byte(frames[1].Data), &live))
	require.NoError(t, json.Unmarshal([]byte(frames[2].Data), &terminal))

	assert.Equal(t, "PENDING", snapshot.Stage)
	assert.Equal(t, "Job is queued for processing", snapshot.Message)

	assert.Equal(t, "RUNNING", live.Stage)
	assert.Equal(t, 48, live.Percent)
	assert.Equal(t, 6, live.CurrentPage)
	assert.Equal(t, 12, live.TotalPages)

	assert.Equal(t, "COMPLETED", terminal.Stage)
	assert.Equal(t, 100, terminal.Percent)
}

func TestProgressStreamTimesOut(t *testing.T) {
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	defer b.Close()
	_, job := seedJob(t, store)

	srv := startProgressServer(t, store, b, time.Minute, 50*time.Millisecond)
	resp, err := http.Get(srv.URL + "/documents/" + job.ID.String() + "/progress")
	require.NoError(t, err)
	defer resp.Body.Close()

	_, _, frames := parseSSE(t, resp.Body)
	require.NotEmpty(t, frames)
	last := frames[len(frames)-1]
	assert.Equal(t, "timeout", last.Event)

	var payload timeoutPayload
	require.NoError(t, json.Unmarshal([]byte(last.Data), &payload))
	assert.Equal(t, job.ID.String(), payload.JobID)
	assert.Equal(t, "Stream timed out — please reconnect or check job status via API", payload.Message)
}

func TestProgressHeartbeatsKeepConnectionWarm(t *testing.T) {
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	defer b.Close()
	_, job := seedJob(t, store)

	srv := startProgressServer(t, store, b, 20*time.Millisecond, 120*time.Millisecond)
	resp, err := http.Get(srv.URL + "/documents/" + job.ID.String() + "/progress")
	require.NoError(t, err)
	defer resp.Body.Close()

	_, comments, _ := parseSSE(t, resp.Body)
	assert.NotEmpty(t, comments)
	for _, comment := range comments {
		assert.Equal(t, "heartbeat", comment)
	}
}

func TestProgressBusFailureEmitsErrorFrame(t *testing.T) {
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	_, job := seedJob(t, store)

	srv := startProgressServer(t, store, b, time.Minute, time.Minute)

	go func() {
		// Give the handler time to attach, then kill the bus underneath it.
		time.Sleep(50 * time.Millisecond)
		b.Close()
	}()

	resp, err := http.Get(srv.URL + "/documents/" + job.ID.String() + "/progress")
	require.NoError(t, err)
	defer resp.Body.Close()

	_, _, frames := parseSSE(t, resp.Body)
	require.NotEmpty(t, frames)
	last := frames[len(frames)-1]
	assert.Equal(t, "error", last.Event)

	var payload streamPayload
	require.NoError(t, json.Unmarshal([]byte(last.Data), &payload))
	assert.Equal(t, "FAILED", payload.Stage)
	assert.Equal(t, 0, payload.Percent)
	assert.Equal(t, "Stream error — please retry", payload.Message)
	assert.NotEmpty(t, payload.ErrorMessage)
}
