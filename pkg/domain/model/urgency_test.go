package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/domain/types"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDeriveUrgency(t *testing.T) {
	today := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		c    model.Case
		want types.Urgency
	}{
		{
			name: "deadline today is overdue",
			c:    model.Case{Status: types.CaseStatusDistributed, FinalDeadline: date(2024, 6, 10)},
			want: types.UrgencyOverdue,
		},
		{
			name: "deadline in the past is overdue",
			c:    model.Case{Status: types.CaseStatusPending, FinalDeadline: date(2024, 6, 1)},
			want: types.UrgencyOverdue,
		},
		{
			name: "deadline within five days is due soon",
			c:    model.Case{Status: types.CaseStatusReceived, FinalDeadline: date(2024, 6, 13)},
			want: types.UrgencyDueSoon,
		},
		{
			name: "deadline at window edge is due soon",
			c:    model.Case{Status: types.CaseStatusReceived, FinalDeadline: date(2024, 6, 15)},
			want: types.UrgencyDueSoon,
		},
		{
			name: "distant deadline has no urgency",
			c:    model.Case{Status: types.CaseStatusDistributed, FinalDeadline: date(2024, 6, 20)},
			want: types.UrgencyNone,
		},
		{
			name: "missing deadline has no urgency",
			c:    model.Case{Status: types.CaseStatusDistributed},
			want: types.UrgencyNone,
		},
		{
			name: "resolved wins over past deadline",
			c:    model.Case{Status: types.CaseStatusResolved, FinalDeadline: date(2024, 6, 1)},
			want: types.UrgencyResolved,
		},
		{
			name: "resolved without deadline",
			c:    model.Case{Status: types.CaseStatusResolved},
			want: types.UrgencyResolved,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, model.DeriveUrgency(&tc.c, today)).Equal(tc.want)
		})
	}
}

func TestDeriveUrgencyNilCase(t *testing.T) {
	gt.Value(t, model.DeriveUrgency(nil, time.Now())).Equal(types.UrgencyNone)
}

func TestDeriveUrgencyCustomWindow(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	c := model.Case{Status: types.CaseStatusDistributed, FinalDeadline: date(2024, 6, 18)}

	gt.Value(t, model.DeriveUrgencyWindow(&c, today, 10)).Equal(types.UrgencyDueSoon)
	gt.Value(t, model.DeriveUrgencyWindow(&c, today, 5)).Equal(types.UrgencyNone)
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	gt.Bool(t, model.IsOverdue(&model.Case{Status: types.CaseStatusPending, FinalDeadline: date(2024, 6, 10)}, today)).True()
	gt.Bool(t, model.IsOverdue(&model.Case{Status: types.CaseStatusPending, FinalDeadline: date(2024, 6, 11)}, today)).False()
	gt.Bool(t, model.IsOverdue(&model.Case{Status: types.CaseStatusResolved, FinalDeadline: date(2024, 6, 1)}, today)).False()
	gt.Bool(t, model.IsOverdue(&model.Case{Status: types.CaseStatusPending}, today)).False()
}
