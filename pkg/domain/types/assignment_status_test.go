package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/caseflow-lab/doctrack/pkg/domain/types"
)

func TestAssignmentStatusDisplayRoundTrip(t *testing.T) {
	for _, s := range types.AllAssignmentStatuses() {
		gt.Value(t, types.AssignmentStatusFromDisplay(s.Display())).Equal(s)
	}
}

func TestAssignmentStatusFromDisplayIsTotal(t *testing.T) {
	// Unknown display values must resolve to Pending, never pass through.
	cases := []struct {
		label string
		want  types.AssignmentStatus
	}{
		{label: "🟢 Respondido", want: types.AssignmentStatusResponded},
		{label: "Responded", want: types.AssignmentStatusResponded},
		{label: "🔴 Pendente", want: types.AssignmentStatusPending},
		{label: "Pending", want: types.AssignmentStatusPending},
		{label: "", want: types.AssignmentStatusPending},
		{label: "garbage", want: types.AssignmentStatusPending},
		{label: "🟣 Em análise", want: types.AssignmentStatusPending},
	}

	for _, tc := range cases {
		gt.Value(t, types.AssignmentStatusFromDisplay(tc.label)).Equal(tc.want)
	}
}

func TestParseAssignmentStatus(t *testing.T) {
	status, err := types.ParseAssignmentStatus("Responded")
	gt.NoError(t, err)
	gt.Value(t, status).Equal(types.AssignmentStatusResponded)

	_, err = types.ParseAssignmentStatus("🔴 Pendente")
	gt.Value(t, err).NotNil()
}
