package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/domain/types"
	"github.com/caseflow-lab/doctrack/pkg/usecase"
	"github.com/caseflow-lab/doctrack/pkg/utils/errutil"
)

type caseBody struct {
	ID            int64      `json:"id"`
	ReceivedDocNo string     `json:"received_doc_no"`
	Subject       string     `json:"subject"`
	Origin        string     `json:"origin"`
	FinalDeadline *time.Time `json:"final_deadline,omitempty"`
	Notes         string     `json:"notes"`

	RequestSubject  string     `json:"request_subject,omitempty"`
	RequestDeadline *time.Time `json:"request_deadline,omitempty"`
	RequestedDocNo  string     `json:"requested_doc_no,omitempty"`

	ResponseDocNo string     `json:"response_doc_no,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Urgency      string `json:"urgency,omitempty"`
	PendingCount int    `json:"pending_count"`
}

type assignmentBody struct {
	ID              int64      `json:"id"`
	CaseID          int64      `json:"case_id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	StatusDisplay   string     `json:"status_display"`
	RequestDeadline *time.Time `json:"request_deadline,omitempty"`
	Notes           string     `json:"notes"`
}

type documentFieldsBody struct {
	ReceivedDocNo string     `json:"received_doc_no"`
	Subject       string     `json:"subject"`
	Origin        string     `json:"origin"`
	FinalDeadline *time.Time `json:"final_deadline"`
	Notes         string     `json:"notes"`
}

type requestFieldsBody struct {
	RequestSubject  string     `json:"request_subject"`
	RequestDeadline *time.Time `json:"request_deadline"`
	RequestedDocNo  string     `json:"requested_doc_no"`
}

func toCaseBody(c *model.Case) caseBody {
	return caseBody{
		ID:            c.ID,
		ReceivedDocNo: c.ReceivedDocNo,
		Subject:       c.Subject,
		Origin:        c.Origin,
		FinalDeadline: c.FinalDeadline,
		Notes:         c.Notes,

		RequestSubject:  c.RequestSubject,
		RequestDeadline: c.RequestDeadline,
		RequestedDocNo:  c.RequestedDocNo,

		ResponseDocNo: c.ResponseDocNo,
		ResolvedAt:    c.ResolvedAt,

		Status:    c.Status.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toAssignmentBody(a *model.Assignment) assignmentBody {
	return assignmentBody{
		ID:              a.ID,
		CaseID:          a.CaseID,
		Name:            a.Name,
		Status:          a.Status.String(),
		StatusDisplay:   a.Status.Display(),
		RequestDeadline: a.RequestDeadline,
		Notes:           a.Notes,
	}
}

func (d *documentFieldsBody) toFields() *usecase.DocumentFields {
	return &usecase.DocumentFields{
		ReceivedDocNo: d.ReceivedDocNo,
		Subject:       d.Subject,
		Origin:        d.Origin,
		FinalDeadline: d.FinalDeadline,
		Notes:         d.Notes,
	}
}

func (rf *requestFieldsBody) toFields() *usecase.RequestFields {
	return &usecase.RequestFields{
		RequestSubject:  rf.RequestSubject,
		RequestDeadline: rf.RequestDeadline,
		RequestedDocNo:  rf.RequestedDocNo,
	}
}

// handleError maps use case errors to HTTP status codes.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrCaseNotFound),
		errors.Is(err, usecase.ErrAssignmentNotFound):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrCaseNotArchived),
		errors.Is(err, usecase.ErrResponsibleNameRequired):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDuplicateResponsible):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusConflict)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func caseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "caseID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid case ID", goerr.V("raw", raw))
	}
	return id, nil
}

func (s *Server) listCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := ownerFrom(ctx)

	switch r.URL.Query().Get("scope") {
	case "archived":
		cases, err := s.uc.Archive.ListArchived(ctx, ownerID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		body := make([]caseBody, len(cases))
		for i, c := range cases {
			body[i] = toCaseBody(c)
		}
		respondJSON(w, r, http.StatusOK, map[string]any{"cases": body})

	case "all":
		cases, err := s.uc.Case.List(ctx, ownerID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		body := make([]caseBody, len(cases))
		for i, c := range cases {
			body[i] = toCaseBody(c)
		}
		respondJSON(w, r, http.StatusOK, map[string]any{"cases": body})

	default:
		views, err := s.uc.Case.ListActiveViews(ctx, ownerID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		body := make([]caseBody, len(views))
		for i, v := range views {
			b := toCaseBody(v.Case)
			b.Urgency = v.Urgency.String()
			b.PendingCount = v.PendingCount
			body[i] = b
		}
		respondJSON(w, r, http.StatusOK, map[string]any{"cases": body})
	}
}

func (s *Server) createCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		documentFieldsBody
		requestFieldsBody
		ResponseDocNo string `json:"response_doc_no"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	created, err := s.uc.Case.Create(ctx, ownerFrom(ctx), &usecase.CaseInput{
		Document:      *req.documentFieldsBody.toFields(),
		Request:       *req.requestFieldsBody.toFields(),
		ResponseDocNo: req.ResponseDocNo,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toCaseBody(created))
}

func (s *Server) createRequestOnlyCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestFieldsBody
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	created, err := s.uc.Case.CreateRequestOnly(ctx, ownerFrom(ctx), req.toFields())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toCaseBody(created))
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := ownerFrom(ctx)

	id, err := caseIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	detail, err := s.uc.Case.Detail(ctx, ownerID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	body := toCaseBody(detail.Case)
	body.Urgency = detail.Urgency.String()
	body.PendingCount = detail.PendingCount

	assignmentBodies := make([]assignmentBody, len(detail.Assignments))
	for i, a := range detail.Assignments {
		assignmentBodies[i] = toAssignmentBody(a)
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"case":        body,
		"assignments": assignmentBodies,
	})
}

func (s *Server) updateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var req documentFieldsBody
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Case.UpdateDocument(ctx, ownerFrom(ctx), id, req.toFields())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toCaseBody(updated))
}

func (s *Server) distribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Names []string `json:"names"`
		requestFieldsBody
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	ownerID := ownerFrom(ctx)
	if err := s.uc.Assignment.Distribute(ctx, ownerID, id, req.Names, req.requestFieldsBody.toFields()); err != nil {
		handleError(w, r, err)
		return
	}

	assignments, err := s.uc.Assignment.ListByCase(ctx, ownerID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	body := make([]assignmentBody, len(assignments))
	for i, a := range assignments {
		body[i] = toAssignmentBody(a)
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"assignments": body})
}

func (s *Server) recordResponse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var req struct {
		ResponseDocNo string `json:"response_doc_no"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Case.RecordResponse(ctx, ownerFrom(ctx), id, req.ResponseDocNo)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toCaseBody(updated))
}

func (s *Server) reminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	msg, err := s.uc.Case.Reminder(ctx, ownerFrom(ctx), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]string{"message": msg})
}

func (s *Server) archiveCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Archive.Archive(ctx, ownerFrom(ctx), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unarchiveCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Archive.Unarchive(ctx, ownerFrom(ctx), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) purgeCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Archive.Purge(ctx, ownerFrom(ctx), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := chi.URLParam(r, "assignmentID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid assignment ID", goerr.V("raw", raw)), http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	status, err := types.ParseAssignmentStatus(req.Status)
	if err != nil {
		// Display labels are accepted as a fallback
		status = types.AssignmentStatusFromDisplay(req.Status)
	}

	updated, err := s.uc.Assignment.SetStatus(ctx, ownerFrom(ctx), id, status, req.Notes)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toAssignmentBody(updated))
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.uc.Case.Stats(ctx, ownerFrom(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}

	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		byStatus[status.String()] = n
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"active":           stats.Active,
		"by_status":        byStatus,
		"overdue":          stats.Overdue,
		"due_soon":         stats.DueSoon,
		"total_pendencies": stats.TotalPendencies,
	})
}

func (s *Server) pendencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	byCase, err := s.uc.Assignment.PendenciesByCase(ctx, ownerFrom(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}

	body := make(map[string]int, len(byCase))
	for caseID, n := range byCase {
		body[strconv.FormatInt(caseID, 10)] = n
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"pendencies": body})
}
