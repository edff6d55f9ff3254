package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/common"
	"github.com/docstreamhq/docstream/internal/ingest"
	"github.com/docstreamhq/docstream/internal/repository"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubObjects struct{ err error }

func (s *stubObjects) Put(context.Context, string, io.Reader, int64, string) error {
	return s.err
}

type stubDispatcher struct{ err error }

func (s *stubDispatcher) StartProcessing(_ context.Context, req ingest.DispatchRequest) (uuid.UUID, error) {
	if s.err != nil {
		return uuid.Nil, s.err
	}
	return uuid.New(), nil
}

type okHealth struct{ err error }

func (h *okHealth) HealthCheck(context.Context) error { return h.err }

func uploadTestServer(t *testing.T, objects *stubObjects, dispatcher *stubDispatcher) (*httptest.Server, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	t.Cleanup(func() { b.Close() })

	svc := ingest.NewService(store, objects, dispatcher, testLogger(), 1<<20, time.Second)
	cfg := common.LoadConfig()
	router := NewRouter(Deps{
		Store:  store,
		Bus:    b,
		Ingest: svc,
		Health: &okHealth{},
		Logger: testLogger(),
	}, cfg)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

func multipartBody(t *testing.T, filename, title string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if title != "" {
		require.NoError(t, w.WriteField("title", title))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func postUpload(t *testing.T, srv *httptest.Server, owner string, body *bytes.Buffer, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/documents/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	if owner != "" {
		req.Header.Set("X-User-ID", owner)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUploadRequiresIdentity(t *testing.T) {
	srv, _ := uploadTestServer(t, &stubObjects{}, &stubDispatcher{})
	body, contentType := multipartBody(t, "a.pdf", "", pdfBytes)

	resp := postUpload(t, srv, "", body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, contentType = multipartBody(t, "a.pdf", "", pdfBytes)
	resp = postUpload(t, srv, "not-a-uuid", body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUploadHappyPathReturns201(t *testing.T) {
	srv, store := uploadTestServer(t, &stubObjects{}, &stubDispatcher{})
	owner := uuid.New()

	body, contentType := multipartBody(t, "Q3 Report.pdf", "Q3 earnings", pdfBytes)
	resp := postUpload(t, srv, owner.String(), body, contentType)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Q3 earnings", out.Title)
	assert.Equal(t, "application/pdf", out.MimeType)
	assert.Equal(t, int64(len(pdfBytes)), out.Size)
	assert.Equal(t, "pending", out.Status)
	assert.NotEmpty(t, out.StorageKey)

	docID, err := uuid.Parse(out.DocumentID)
	require.NoError(t, err)
	doc, err := store.DocumentByID(context.Background(), docID, &owner)
	require.NoError(t, err)
	assert.Equal(t, "Q3 earnings", doc.Title)
}

func TestUploadWorkerDownReturns202(t *testing.T) {
	srv, store := uploadTestServer(t, &stubObjects{}, &stubDispatcher{err: errors.New("worker unreachable")})

	body, contentType := multipartBody(t, "a.pdf", "", pdfBytes)
	resp := postUpload(t, srv, uuid.NewString(), body, contentType)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var out uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "pending", out.Status)

	jobID, err := uuid.Parse(out.JobID)
	require.NoError(t, err)
	_, err = store.JobByID(context.Background(), jobID)
	assert.NoError(t, err)
}

func TestUploadMissingFileFieldIs400(t *testing.T) {
	srv, _ := uploadTestServer(t, &stubObjects{}, &stubDispatcher{})
	body, contentType := multipartBody(t, "", "no file attached", nil)

	resp := postUpload(t, srv, uuid.NewString(), body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadEmptyFileIs400(t *testing.T) {
	srv, _ := uploadTestServer(t, &stubObjects{}, &stubDispatcher{})
	body, contentType := multipartBody(t, "empty.pdf", "", nil)

	resp := postUpload(t, srv, uuid.NewString(), body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadUnsupportedTypeIs415(t *testing.T) {
	srv, _ := uploadTestServer(t, &stubObjects{}, &stubDispatcher{})
	body, contentType := multipartBody(t, "notes.txt", "", []byte("just some text"))

	resp := postUpload(t, srv, uuid.NewString(), body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	var out errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Message, "application/pdf")
}

func TestUploadOversizeTitleIs400(t *testing.T) {
	srv, _ := uploadTestServer(t, &stubObjects{}, &stubDispatcher{})
	body, contentType := multipartBody(t, "a.pdf", strings.Repeat("x", 501), pdfBytes)

	resp := postUpload(t, srv, uuid.NewString(), body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadTitleLimitCountsRunes(t *testing.T) {
	srv, _ := uploadTestServer(t, &stubObjects{}, &stubDispatcher{})

	// 500 two-byte runes: within the character limit even though the byte
	// length is double it.
	title := strings.Repeat("é", 500)
	body, contentType := multipartBody(t, "a.pdf", title, pdfBytes)
	resp := postUpload(t, srv, uuid.NewString(), body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, title, out.Title)

	body, contentType = multipartBody(t, "a.pdf", strings.Repeat("é", 501), pdfBytes)
	resp = postUpload(t, srv, uuid.NewString(), body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadStorageOutageIs502(t *testing.T) {
	srv, _ := uploadTestServer(t, &stubObjects{err: errors.New("minio down")}, &stubDispatcher{})
	body, contentType := multipartBody(t, "a.pdf", "", pdfBytes)

	resp := postUpload(t, srv, uuid.NewString(), body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	check := &okHealth{}
	router := gin.New()
	handler := &HealthHandler{Checker: check, Logger: testLogger()}
	router.GET("/health", handler.Check)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	check.err = errors.New("no route to host")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
