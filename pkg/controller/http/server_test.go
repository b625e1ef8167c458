package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	server "github.com/caseflow-lab/doctrack/pkg/controller/http"
	"github.com/caseflow-lab/doctrack/pkg/repository/memory"
	"github.com/caseflow-lab/doctrack/pkg/usecase"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	return server.New(usecase.New(memory.New()))
}

func doJSON(t *testing.T, srv *server.Server, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	if owner != "" {
		req.Header.Set("X-Owner-ID", owner)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestServerRequiresOwner(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/cases", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestServerDefaultOwner(t *testing.T) {
	srv := server.New(usecase.New(memory.New()), server.WithDefaultOwner("default"))

	rec := doJSON(t, srv, http.MethodGet, "/api/cases", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestServerCaseLifecycle(t *testing.T) {
	srv := newTestServer(t)
	owner := "unit-7"

	// Create
	rec := doJSON(t, srv, http.MethodPost, "/api/cases", owner, map[string]any{
		"received_doc_no": "2024-10",
		"subject":         "equipment inspection",
		"origin":          "HQ",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.Value(t, created.Status).Equal("Received")

	casePath := fmt.Sprintf("/api/cases/%d", created.ID)

	// Distribute
	rec = doJSON(t, srv, http.MethodPut, casePath+"/distribution", owner, map[string]any{
		"names":           []string{"Alpha", "Bravo"},
		"request_subject": "status update",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var distributed struct {
		Assignments []struct {
			ID     int64  `json:"id"`
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"assignments"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &distributed)).Required()
	gt.Array(t, distributed.Assignments).Length(2)
	gt.Value(t, distributed.Assignments[0].Name).Equal("Alpha")
	gt.Value(t, distributed.Assignments[0].Status).Equal("Pending")

	// One party responds
	rec = doJSON(t, srv, http.MethodPut,
		fmt.Sprintf("/api/assignments/%d/status", distributed.Assignments[0].ID), owner,
		map[string]any{"status": "Responded"})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	// Record the response document
	rec = doJSON(t, srv, http.MethodPut, casePath+"/response", owner, map[string]any{
		"response_doc_no": "2024-55",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resolved struct {
		Status     string  `json:"status"`
		ResolvedAt *string `json:"resolved_at"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resolved)).Required()
	gt.Value(t, resolved.Status).Equal("Resolved")
	gt.Value(t, resolved.ResolvedAt).NotNil()

	// Archive and purge
	rec = doJSON(t, srv, http.MethodPost, casePath+"/archive", owner, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodGet, "/api/cases", owner, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var active struct {
		Cases []json.RawMessage `json:"cases"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active)).Required()
	gt.Array(t, active.Cases).Length(0)

	rec = doJSON(t, srv, http.MethodDelete, casePath, owner, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodGet, casePath, owner, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestServerCaseUrgencyConsistency(t *testing.T) {
	srv := server.New(usecase.New(memory.New(), usecase.WithDueSoonWindow(10)))
	owner := "unit-9"

	deadline := time.Now().UTC().Add(8 * 24 * time.Hour)
	rec := doJSON(t, srv, http.MethodPost, "/api/cases", owner, map[string]any{
		"received_doc_no": "2024-20",
		"subject":         "supply audit",
		"origin":          "HQ",
		"final_deadline":  deadline.Format(time.RFC3339),
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		ID int64 `json:"id"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()

	rec = doJSON(t, srv, http.MethodGet, "/api/cases", owner, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var listed struct {
		Cases []struct {
			Urgency string `json:"urgency"`
		} `json:"cases"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed)).Required()
	gt.Array(t, listed.Cases).Length(1)
	gt.Value(t, listed.Cases[0].Urgency).Equal("DUE_SOON")

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/cases/%d", created.ID), owner, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var detail struct {
		Case struct {
			Urgency string `json:"urgency"`
		} `json:"case"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail)).Required()
	gt.Value(t, detail.Case.Urgency).Equal(listed.Cases[0].Urgency)
}

func TestServerResponsibles(t *testing.T) {
	srv := newTestServer(t)
	owner := "unit-8"

	rec := doJSON(t, srv, http.MethodPost, "/api/responsibles", owner, map[string]any{"name": "Logistics"})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, srv, http.MethodPost, "/api/responsibles", owner, map[string]any{"name": "logistics"})
	gt.Value(t, rec.Code).Equal(http.StatusConflict)

	rec = doJSON(t, srv, http.MethodGet, "/api/responsibles", owner, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var listed struct {
		Responsibles []struct {
			Name string `json:"name"`
		} `json:"responsibles"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed)).Required()
	gt.Array(t, listed.Responsibles).Length(1)

	rec = doJSON(t, srv, http.MethodDelete, "/api/responsibles/Logistics", owner, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)
}
