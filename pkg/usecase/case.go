package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/domain/types"
	"github.com/caseflow-lab/doctrack/pkg/utils/logging"
)

// CaseUseCase handles the lifecycle of document cases.
type CaseUseCase struct {
	repo          interfaces.Repository
	now           func() time.Time
	dueSoonWindow int
}

// DocumentFields are the fields of the received document. Blank values are
// masked with model.BlankFieldMark on write, never rejected.
type DocumentFields struct {
	ReceivedDocNo string
	Subject       string
	Origin        string
	FinalDeadline *time.Time
	Notes         string
}

// RequestFields are the fields of the request distributed to responsible
// parties. They are genuinely optional.
type RequestFields struct {
	RequestSubject  string
	RequestDeadline *time.Time
	RequestedDocNo  string
}

// CaseInput is the full write payload for creating a case.
type CaseInput struct {
	Document DocumentFields
	Request  RequestFields

	// ResponseDocNo may be set at creation time for cases registered after
	// the fact. A non-empty value resolves the case immediately.
	ResponseDocNo string
}

// CaseView pairs a case with its derived urgency and pending count for
// read-side consumers.
type CaseView struct {
	Case         *model.Case
	Urgency      types.Urgency
	PendingCount int
}

// Create registers a new case. The status is derived from the input: a case
// created with a response document number is resolved on arrival, everything
// else starts as received.
func (uc *CaseUseCase) Create(ctx context.Context, ownerID string, input *CaseInput) (*model.Case, error) {
	c := &model.Case{
		ReceivedDocNo: input.Document.ReceivedDocNo,
		Subject:       input.Document.Subject,
		Origin:        input.Document.Origin,
		FinalDeadline: input.Document.FinalDeadline,
		Notes:         input.Document.Notes,

		RequestSubject:  input.Request.RequestSubject,
		RequestDeadline: input.Request.RequestDeadline,
		RequestedDocNo:  input.Request.RequestedDocNo,

		ResponseDocNo: input.ResponseDocNo,
		Status:        types.CaseStatusReceived,
	}
	c.NormalizeRequired()

	if c.HasResponse() {
		c.Status = types.CaseStatusResolved
		resolvedAt := uc.now()
		c.ResolvedAt = &resolvedAt
	}

	created, err := uc.repo.Case().Create(ctx, ownerID, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case")
	}

	logging.From(ctx).Info("case created",
		"case_id", created.ID,
		"status", created.Status,
	)

	return created, nil
}

// CreateRequestOnly registers a case from the request side alone, for work
// that originates internally without a received document. The document fields
// are masked and the case starts as distributed.
func (uc *CaseUseCase) CreateRequestOnly(ctx context.Context, ownerID string, req *RequestFields) (*model.Case, error) {
	c := &model.Case{
		RequestSubject:  req.RequestSubject,
		RequestDeadline: req.RequestDeadline,
		RequestedDocNo:  req.RequestedDocNo,
		Status:          types.CaseStatusDistributed,
	}
	c.NormalizeRequired()

	created, err := uc.repo.Case().Create(ctx, ownerID, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request-only case")
	}

	return created, nil
}

// Get retrieves a case by ID.
func (uc *CaseUseCase) Get(ctx context.Context, ownerID string, id int64) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, ownerID, id)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "failed to get case", goerr.V("case_id", id))
	}
	return c, nil
}

// List retrieves all cases of the owner, archived ones included.
func (uc *CaseUseCase) List(ctx context.Context, ownerID string) ([]*model.Case, error) {
	cases, err := uc.repo.Case().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	return cases, nil
}

// ListActive retrieves all cases of the owner that are not archived.
func (uc *CaseUseCase) ListActive(ctx context.Context, ownerID string) ([]*model.Case, error) {
	cases, err := uc.repo.Case().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}

	archived, err := uc.repo.Archive().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list archive entries")
	}
	archivedIDs := make(map[int64]bool, len(archived))
	for _, entry := range archived {
		archivedIDs[entry.CaseID] = true
	}

	active := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		if !archivedIDs[c.ID] {
			active = append(active, c)
		}
	}

	return active, nil
}

// ListActiveViews returns the active cases with their derived urgency and
// pending counts, ready for a dashboard listing.
func (uc *CaseUseCase) ListActiveViews(ctx context.Context, ownerID string) ([]*CaseView, error) {
	cases, err := uc.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	assignments, err := uc.repo.Assignment().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assignments")
	}
	pending := countPendingByCase(assignments)

	today := uc.now()
	views := make([]*CaseView, 0, len(cases))
	for _, c := range cases {
		views = append(views, &CaseView{
			Case:         c,
			Urgency:      model.DeriveUrgencyWindow(c, today, uc.dueSoonWindow),
			PendingCount: pending[c.ID],
		})
	}

	return views, nil
}

// CaseDetail pairs a case view with its assignments.
type CaseDetail struct {
	CaseView
	Assignments []*model.Assignment
}

// Detail returns one case with its assignments, derived urgency and pending
// count, using the same clock and due-soon window as the active listing.
func (uc *CaseUseCase) Detail(ctx context.Context, ownerID string, id int64) (*CaseDetail, error) {
	c, err := uc.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	assignments, err := uc.repo.Assignment().ListByCase(ctx, ownerID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assignments", goerr.V("case_id", id))
	}

	detail := &CaseDetail{
		CaseView: CaseView{
			Case:    c,
			Urgency: model.DeriveUrgencyWindow(c, uc.now(), uc.dueSoonWindow),
		},
		Assignments: assignments,
	}
	for _, a := range assignments {
		if a.Status != types.AssignmentStatusResponded {
			detail.PendingCount++
		}
	}

	return detail, nil
}

// UpdateDocument replaces the received-document fields of a case, leaving the
// request and response fields untouched.
func (uc *CaseUseCase) UpdateDocument(ctx context.Context, ownerID string, id int64, doc *DocumentFields) (*model.Case, error) {
	c, err := uc.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	c.ReceivedDocNo = doc.ReceivedDocNo
	c.Subject = doc.Subject
	c.Origin = doc.Origin
	c.FinalDeadline = doc.FinalDeadline
	c.Notes = doc.Notes
	c.NormalizeRequired()

	updated, err := uc.repo.Case().Update(ctx, ownerID, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V("case_id", id))
	}

	return updated, nil
}

// RecordResponse stores the response document number and applies the status
// forcing rule in both directions: a non-empty response resolves the case and
// stamps the resolution date, clearing it forces the case back to pending and
// clears the stamp.
func (uc *CaseUseCase) RecordResponse(ctx context.Context, ownerID string, id int64, responseDocNo string) (*model.Case, error) {
	c, err := uc.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	c.ResponseDocNo = strings.TrimSpace(responseDocNo)

	if c.HasResponse() {
		c.Status = types.CaseStatusResolved
		if c.ResolvedAt == nil {
			resolvedAt := uc.now()
			c.ResolvedAt = &resolvedAt
		}
	} else {
		c.Status = types.CaseStatusPending
		c.ResolvedAt = nil
	}

	updated, err := uc.repo.Case().Update(ctx, ownerID, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record response", goerr.V("case_id", id))
	}

	logging.From(ctx).Info("response recorded",
		"case_id", id,
		"status", updated.Status,
	)

	return updated, nil
}

// Reminder builds the chasing message for the case, listing the parties that
// have not yet responded.
func (uc *CaseUseCase) Reminder(ctx context.Context, ownerID string, id int64) (string, error) {
	c, err := uc.Get(ctx, ownerID, id)
	if err != nil {
		return "", err
	}

	assignments, err := uc.repo.Assignment().ListByCase(ctx, ownerID, id)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list assignments", goerr.V("case_id", id))
	}

	return model.BuildReminder(c, assignments), nil
}

// Stats summarizes the active caseload for the dashboard.
type Stats struct {
	Active          int
	ByStatus        map[types.CaseStatus]int
	Overdue         int
	DueSoon         int
	TotalPendencies int
}

// Stats computes dashboard counters over the active cases.
func (uc *CaseUseCase) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	views, err := uc.ListActiveViews(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Active:   len(views),
		ByStatus: make(map[types.CaseStatus]int),
	}
	for _, v := range views {
		stats.ByStatus[v.Case.Status]++
		stats.TotalPendencies += v.PendingCount

		switch v.Urgency {
		case types.UrgencyOverdue:
			stats.Overdue++
		case types.UrgencyDueSoon:
			stats.DueSoon++
		}
	}

	return stats, nil
}
