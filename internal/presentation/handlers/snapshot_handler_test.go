package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitstreet-core/internal/domain/story"
	"gitstreet-core/internal/presentation/handlers"

	"github.com/gin-gonic/gin"
)

type mockSnapshotReader struct {
	snapshots map[string]*story.Snapshot
}

func (m *mockSnapshotReader) Snapshot(kind string) (*story.Snapshot, error) {
	snapshot, ok := m.snapshots[kind]
	if !ok || snapshot == nil {
		return nil, story.ErrSnapshotNotAvailable(kind)
	}
	return snapshot, nil
}

func testRouter(reader handlers.SnapshotReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	snapshotHandler := handlers.NewSnapshotHandler(reader)
	healthHandler := handlers.NewHealthHandler()
	router.GET("/health", healthHandler.Health)
	router.GET("/current", snapshotHandler.GetCurrent)
	router.GET("/next", snapshotHandler.GetNext)
	return router
}

func testSnapshot() *story.Snapshot {
	return &story.Snapshot{
		ID: "00000000-0000-0000-0000-000000000001",
		Repository: story.Repository{
			Name:            "alpha",
			FullName:        "acme/alpha",
			DefaultBranch:   "main",
			LatestCommitSHA: "aaa111",
			Languages:       []story.LanguageStat{{Name: "Go", Bytes: 2048}},
		},
		Commits: []story.CommitInfo{{SHA: "aaa111", Message: "first light"}},
		Surreal: []string{"one", "two", "three"},
	}
}

func TestHealth(t *testing.T) {
	router := testRouter(&mockSnapshotReader{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf(`status = %v, want "ok"`, body["status"])
	}
}

func TestGetCurrent_ReturnsSnapshot(t *testing.T) {
	reader := &mockSnapshotReader{snapshots: map[string]*story.Snapshot{"current": testSnapshot()}}
	router := testRouter(reader)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/current", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
	}

	var body struct {
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
		Commits []struct {
			SHA string `json:"sha"`
		} `json:"commits"`
		Surreal []string `json:"surreal"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Repository.FullName != "acme/alpha" {
		t.Errorf("repository.full_name = %v, want acme/alpha", body.Repository.FullName)
	}
	if len(body.Commits) != 1 || body.Commits[0].SHA != "aaa111" {
		t.Errorf("commits = %v, want one commit with sha aaa111", body.Commits)
	}
	if len(body.Surreal) != 3 {
		t.Errorf("len(surreal) = %v, want 3", len(body.Surreal))
	}
}

func TestGetNext_NotAvailable(t *testing.T) {
	reader := &mockSnapshotReader{snapshots: map[string]*story.Snapshot{"current": testSnapshot()}}
	router := testRouter(reader)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/next", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "not_available" {
		t.Errorf("error = %v, want not_available", body["error"])
	}
}

func TestGetCurrent_NotAvailableBeforeFirstRefresh(t *testing.T) {
	router := testRouter(&mockSnapshotReader{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/current", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusNotFound)
	}
}
