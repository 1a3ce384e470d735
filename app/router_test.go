package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"bitwise74/cloudmedia/internal"
	"bitwise74/cloudmedia/internal/model"
	"bitwise74/cloudmedia/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(_ context.Context, bucket, key string, body io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+key] = b
	return nil
}

func (f *fakeStore) Get(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such object")
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeStore) Delete(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, bucket+"/"+key)
	return nil
}

// setupApp wires the full router, response cache included, around an
// in-memory DB and blob store.
func setupApp(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	viper.Set("upload.max_size", int64(50<<20))

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.Migrator().CreateTable(&model.MediaFile{}))

	st := newFakeStore()
	d := &internal.Deps{
		DB:       conn,
		Uploader: service.NewUploader(conn, st, "media"),
	}

	// The cache store is package-level, start every test cold
	_ = store.Delete(listCacheKey)

	return newRouter(d), st
}

func doUpload(t *testing.T, r *gin.Engine, filename string, content []byte) map[string]any {
	t.Helper()

	buf := bytes.NewBuffer(nil)
	w := multipart.NewWriter(buf)

	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func listFiles(t *testing.T, r *gin.Engine) []model.MediaFile {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var entries []model.MediaFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	return entries
}

func TestDeleteVisibleThroughListCache(t *testing.T) {
	r, st := setupApp(t)

	doUpload(t, r, "a.png", []byte("x"))

	// Prime the cached list response
	entries := listFiles(t, r)
	require.Len(t, entries, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/files/%d", entries[0].ID), nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The list must reflect the delete right away, not after the TTL
	assert.Empty(t, listFiles(t, r))
	assert.Empty(t, st.objects)
}

func TestUploadVisibleThroughListCache(t *testing.T) {
	r, _ := setupApp(t)

	// Prime the cache with the empty response
	require.Empty(t, listFiles(t, r))

	doUpload(t, r, "a.png", []byte("x"))
	assert.Len(t, listFiles(t, r), 1)
}

func TestFailedDeleteLeavesCacheAlone(t *testing.T) {
	r, _ := setupApp(t)

	doUpload(t, r, "a.png", []byte("x"))
	require.Len(t, listFiles(t, r), 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/files/9999", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Len(t, listFiles(t, r), 1)
}
