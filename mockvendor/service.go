// Package mockvendor provides an in-process stand-in for the vendor API so the
// fetch/validate/extract sequence can be exercised without network access. Tests
// mount it on an httptest server and point the fetcher's endpoint at it.
package mockvendor

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/magicpod-ci/pipeline/framework"
	"github.com/magicpod-ci/pipeline/framework/helpers"
)

// ClientPath is the path of the client-archive resource, matching the real API.
const ClientPath = "/api/v1.0/client/"

// ClientService serves the client-archive endpoint. The response is fully
// configurable so tests can simulate auth failures, mislabeled error pages, and
// corrupted archives.
type ClientService struct {
	status      int
	contentType string
	body        []byte
	requireAuth bool
	handler     http.Handler
	debugLogger framework.Logger
	lock        sync.RWMutex
}

func NewClientService(archive []byte, debugLogger framework.Logger) *ClientService {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}
	s := &ClientService{
		status:      http.StatusOK,
		contentType: "application/zip",
		body:        archive,
		requireAuth: true,
		debugLogger: debugLogger,
	}
	router := mux.NewRouter()
	router.HandleFunc(ClientPath, s.serveClientRequest).Methods("GET")
	s.handler = router
	return s
}

func (s *ClientService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// SetResponse replaces the canned response for subsequent requests.
func (s *ClientService) SetResponse(status int, contentType string, body []byte) {
	s.lock.Lock()
	s.status = status
	s.contentType = contentType
	s.body = body
	s.lock.Unlock()
}

// SetRequireAuth controls whether requests without a "Token ..." Authorization
// header get a 401 instead of the canned response. On by default.
func (s *ClientService) SetRequireAuth(require bool) {
	s.lock.Lock()
	s.requireAuth = require
	s.lock.Unlock()
}

func (s *ClientService) serveClientRequest(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	status, contentType, body, requireAuth := s.status, s.contentType, s.body, s.requireAuth
	s.lock.RUnlock()

	s.debugLogger.Printf("mockvendor: %s %s (Authorization: %q)",
		r.Method, r.URL.Path, r.Header.Get("Authorization"))

	auth := r.Header.Get("Authorization")
	token, isTokenAuth := strings.CutPrefix(auth, "Token ")
	if requireAuth && (!isTokenAuth || strings.TrimSpace(token) == "") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write(helpers.AsJSON(map[string]string{"detail": "Invalid token."}))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
