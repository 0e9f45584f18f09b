package mockvendor

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicpod-ci/pipeline/framework/helpers"
)

func doRequest(service *ClientService, path, auth string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", path, nil)
	if auth != "" {
		r.Header.Set("Authorization", auth)
	}
	service.ServeHTTP(rr, r)
	return rr
}

func TestClientServiceServesArchive(t *testing.T) {
	archive := ClientArchive()
	service := NewClientService(archive, nil)

	rr := doRequest(service, ClientPath, "Token abc")
	assert.Equal(t, 200, rr.Code)
	assert.Equal(t, "application/zip", rr.Header().Get("Content-Type"))
	assert.Equal(t, archive, rr.Body.Bytes())
}

func TestClientServiceRequiresTokenAuth(t *testing.T) {
	service := NewClientService(ClientArchive(), nil)

	rr := doRequest(service, ClientPath, "")
	assert.Equal(t, 401, rr.Code)
	assert.Equal(t, helpers.AsJSONString(map[string]string{"detail": "Invalid token."}), rr.Body.String())

	assert.Equal(t, 401, doRequest(service, ClientPath, "Bearer abc").Code)
	assert.Equal(t, 401, doRequest(service, ClientPath, "Token ").Code)

	service.SetRequireAuth(false)
	assert.Equal(t, 200, doRequest(service, ClientPath, "").Code)
}

func TestClientServiceSetResponse(t *testing.T) {
	service := NewClientService(nil, nil)
	service.SetResponse(503, "text/plain", []byte("down"))

	rr := doRequest(service, ClientPath, "Token abc")
	assert.Equal(t, 503, rr.Code)
	assert.Equal(t, "down", rr.Body.String())
}

func TestClientServiceUnknownPathIs404(t *testing.T) {
	service := NewClientService(ClientArchive(), nil)
	assert.Equal(t, 404, doRequest(service, "/api/v1.0/other/", "Token abc").Code)
}

func TestBuildArchiveIsDeterministicAndReadable(t *testing.T) {
	files := map[string]string{"b.txt": "bee", "a.txt": "ay"}
	first := BuildArchive(files)
	second := BuildArchive(files)
	assert.Equal(t, first, second)

	r, err := zip.NewReader(bytes.NewReader(first), int64(len(first)))
	require.NoError(t, err)
	require.Len(t, r.File, 2)
	assert.Equal(t, "a.txt", r.File[0].Name)
	assert.Equal(t, "b.txt", r.File[1].Name)
}
