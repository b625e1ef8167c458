package usecase

import "github.com/m-mizutani/goerr/v2"

var (
	ErrCaseNotFound       = goerr.New("case not found")
	ErrAssignmentNotFound = goerr.New("assignment not found")
	ErrCaseNotArchived    = goerr.New("case is not archived")

	ErrResponsibleNameRequired = goerr.New("responsible name is required")
	ErrDuplicateResponsible    = goerr.New("responsible already registered")
)
