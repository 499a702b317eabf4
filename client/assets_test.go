package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer จำลอง asset API กับ object storage ในตัวเดียว
type testServer struct {
	mu             sync.Mutex
	server         *httptest.Server
	objects        map[string][]byte
	putContentType map[string]string
	signingOff     bool
	failPutFor     string
	failConfirm    bool
	rejectName     string
	confirmed      []uuid.UUID
	pathsByAsset   map[uuid.UUID]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		objects:        map[string][]byte{},
		putContentType: map[string]string{},
		pathsByAsset:   map[uuid.UUID]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/assets/presign", ts.handlePresign)
	mux.HandleFunc("/api/v1/assets/confirm", ts.handleConfirm)
	mux.HandleFunc("/api/v1/assets/upload", ts.handleDirectUpload)
	mux.HandleFunc("/api/v1/assets/url", ts.handleResolveURL)
	mux.HandleFunc("/put/", ts.handlePut)

	ts.server = httptest.NewServer(mux)
	t.Cleanup(ts.server.Close)
	return ts
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func (ts *testServer) handlePresign(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.signingOff {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Presigned uploads are not available, use direct upload")
		return
	}

	var req struct {
		Filename string `json:"filename"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	if ts.rejectName != "" && req.Filename == ts.rejectName {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Content type is not allowed")
		return
	}

	assetID := uuid.New()
	pathname := "uploads/" + req.Filename
	ts.pathsByAsset[assetID] = pathname

	writeEnvelope(w, http.StatusCreated, map[string]any{
		"assetId":   assetID,
		"uploadUrl": ts.server.URL + "/put/" + pathname,
	})
}

func (ts *testServer) handlePut(w http.ResponseWriter, r *http.Request) {
	pathname := strings.TrimPrefix(r.URL.Path, "/put/")

	ts.mu.Lock()
	failFor := ts.failPutFor
	ts.mu.Unlock()

	if strings.HasSuffix(pathname, failFor) && failFor != "" {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	data, _ := io.ReadAll(r.Body)
	ts.mu.Lock()
	ts.objects[pathname] = data
	ts.putContentType[pathname] = r.Header.Get("Content-Type")
	ts.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (ts *testServer) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssetID uuid.UUID `json:"assetId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.failConfirm {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	pathname, ok := ts.pathsByAsset[req.AssetID]
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Asset not found")
		return
	}
	if _, uploaded := ts.objects[pathname]; !uploaded {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Object has not been uploaded yet")
		return
	}

	ts.confirmed = append(ts.confirmed, req.AssetID)
	writeEnvelope(w, http.StatusOK, map[string]any{
		"url": ts.server.URL + "/api/v1/assets/" + req.AssetID.String(),
	})
}

func (ts *testServer) handleDirectUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing file")
		return
	}
	defer file.Close()

	ts.mu.Lock()
	reject := ts.rejectName
	ts.mu.Unlock()
	if reject != "" && header.Filename == reject {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Content type is not allowed")
		return
	}

	data, _ := io.ReadAll(file)
	assetID := uuid.New()
	pathname := "uploads/" + header.Filename

	ts.mu.Lock()
	ts.objects[pathname] = data
	ts.pathsByAsset[assetID] = pathname
	ts.mu.Unlock()

	writeEnvelope(w, http.StatusCreated, map[string]any{
		"assetId": assetID,
		"url":     ts.server.URL + "/api/v1/assets/" + assetID.String(),
		"size":    len(data),
	})
}

func (ts *testServer) handleResolveURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssetIDs []uuid.UUID `json:"assetIds"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	ts.mu.Lock()
	defer ts.mu.Unlock()

	urls := map[string]*string{}
	for _, id := range req.AssetIDs {
		if _, ok := ts.pathsByAsset[id]; ok {
			url := ts.server.URL + "/api/v1/assets/" + id.String()
			urls[id.String()] = &url
		} else {
			urls[id.String()] = nil
		}
	}

	writeEnvelope(w, http.StatusOK, map[string]any{"urls": urls})
}

func TestUploadPresignedFlow(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.server.URL, "test-token")

	result, err := c.Upload(context.Background(), File{
		Name:        "poster.png",
		ContentType: "image/png",
		Data:        []byte("image bytes"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.AssetID)
	assert.Contains(t, result.URL, result.AssetID.String())

	// bytes ต้องขึ้น storage พร้อม Content-Type ที่ถูกต้อง
	assert.Equal(t, []byte("image bytes"), ts.objects["uploads/poster.png"])
	assert.Equal(t, "image/png", ts.putContentType["uploads/poster.png"])

	// และต้อง confirm หลัง PUT เสร็จ
	require.Len(t, ts.confirmed, 1)
	assert.Equal(t, result.AssetID, ts.confirmed[0])
}

func TestUploadFallsBackToDirect(t *testing.T) {
	ts := newTestServer(t)
	ts.signingOff = true
	c := New(ts.server.URL, "test-token")

	result, err := c.Upload(context.Background(), File{
		Name:        "logo.png",
		ContentType: "image/png",
		Data:        []byte("logo bytes"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.AssetID)

	assert.Equal(t, []byte("logo bytes"), ts.objects["uploads/logo.png"])
	// direct upload ไม่ผ่านขั้น confirm
	assert.Empty(t, ts.confirmed)
}

func TestUploadFallsBackWhenPutFails(t *testing.T) {
	ts := newTestServer(t)
	ts.failPutFor = "poster.png"
	c := New(ts.server.URL, "test-token")

	result, err := c.Upload(context.Background(), File{
		Name:        "poster.png",
		ContentType: "image/png",
		Data:        []byte("poster bytes"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.AssetID)

	// PUT พัง → bytes ต้องมาถึง storage ผ่านทาง direct upload แทน
	assert.Equal(t, []byte("poster bytes"), ts.objects["uploads/poster.png"])
	assert.Empty(t, ts.confirmed)
}

func TestUploadFallsBackWhenConfirmFails(t *testing.T) {
	ts := newTestServer(t)
	ts.failConfirm = true
	c := New(ts.server.URL, "test-token")

	result, err := c.Upload(context.Background(), File{
		Name:        "banner.png",
		ContentType: "image/png",
		Data:        []byte("banner bytes"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.AssetID)
	assert.Contains(t, result.URL, result.AssetID.String())
	assert.Empty(t, ts.confirmed)
}

func TestUploadDoesNotRetryRejectedFile(t *testing.T) {
	ts := newTestServer(t)
	ts.rejectName = "movie.mp4"
	c := New(ts.server.URL, "test-token")

	_, err := c.Upload(context.Background(), File{
		Name:        "movie.mp4",
		ContentType: "video/mp4",
		Data:        []byte("frames"),
	})

	var apiErr *APIError
	require.True(t, asAPIError(err, &apiErr))
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Empty(t, ts.objects)
}

func TestUploadManyKeepsInputOrder(t *testing.T) {
	ts := newTestServer(t)
	ts.rejectName = "movie.mp4"
	c := New(ts.server.URL, "test-token")

	files := []File{
		{Name: "a.png", ContentType: "image/png", Data: []byte("aaa")},
		{Name: "movie.mp4", ContentType: "video/mp4", Data: []byte("bbb")},
		{Name: "c.png", ContentType: "image/png", Data: []byte("ccc")},
	}

	results := c.UploadMany(context.Background(), files)
	require.Len(t, results, 3)

	assert.NotEqual(t, uuid.Nil, results[0].AssetID)
	assert.Contains(t, results[0].URL, results[0].AssetID.String())

	// ไฟล์ที่ server ปฏิเสธได้ entry ว่าง ไม่กระทบตัวอื่น
	assert.Equal(t, UploadResult{}, results[1])

	assert.NotEqual(t, uuid.Nil, results[2].AssetID)

	assert.Equal(t, []byte("aaa"), ts.objects["uploads/a.png"])
	assert.Equal(t, []byte("ccc"), ts.objects["uploads/c.png"])
}

func TestResolveURLs(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.server.URL, "test-token")

	result, err := c.Upload(context.Background(), File{
		Name:        "x.png",
		ContentType: "image/png",
		Data:        []byte("x"),
	})
	require.NoError(t, err)

	missing := uuid.New()
	urls, err := c.ResolveURLs(context.Background(), []uuid.UUID{result.AssetID, missing})
	require.NoError(t, err)

	require.NotNil(t, urls[result.AssetID.String()])
	assert.Contains(t, *urls[result.AssetID.String()], result.AssetID.String())
	assert.Nil(t, urls[missing.String()])
}

func TestAPIErrorSurfaced(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.server.URL, "test-token")

	// confirm asset ที่ไม่มีอยู่
	_, err := c.confirm(context.Background(), uuid.New())
	var apiErr *APIError
	require.True(t, asAPIError(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, fmt.Sprintf("api error (status %d, code %s): %s", 404, "NOT_FOUND", "Asset not found"), apiErr.Error())
}
