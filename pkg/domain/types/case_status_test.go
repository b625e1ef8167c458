package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/caseflow-lab/doctrack/pkg/domain/types"
)

func TestCaseStatusIsValid(t *testing.T) {
	for _, s := range types.AllCaseStatuses() {
		gt.Bool(t, s.IsValid()).True()
	}

	gt.Bool(t, types.CaseStatus("").IsValid()).False()
	gt.Bool(t, types.CaseStatus("Recebido").IsValid()).False()
	gt.Bool(t, types.CaseStatus("resolved").IsValid()).False()
}

func TestParseCaseStatus(t *testing.T) {
	status, err := types.ParseCaseStatus("Distributed")
	gt.NoError(t, err)
	gt.Value(t, status).Equal(types.CaseStatusDistributed)

	_, err = types.ParseCaseStatus("Closed")
	gt.Value(t, err).NotNil()
}

func TestCaseStatusNormalize(t *testing.T) {
	gt.Value(t, types.CaseStatus("").Normalize()).Equal(types.CaseStatusReceived)
	gt.Value(t, types.CaseStatusResolved.Normalize()).Equal(types.CaseStatusResolved)
}
