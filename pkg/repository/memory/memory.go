package memory

import (
	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	caseRepo    *caseRepository
	assignment  *assignmentRepository
	archive     *archiveRepository
	responsible *responsibleRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		caseRepo:    newCaseRepository(),
		assignment:  newAssignmentRepository(),
		archive:     newArchiveRepository(),
		responsible: newResponsibleRepository(),
	}
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.caseRepo
}

func (m *Memory) Assignment() interfaces.AssignmentRepository {
	return m.assignment
}

func (m *Memory) Archive() interfaces.ArchiveRepository {
	return m.archive
}

func (m *Memory) Responsible() interfaces.ResponsibleRepository {
	return m.responsible
}
