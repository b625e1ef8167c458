package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Case() CaseRepository
	Assignment() AssignmentRepository
	Archive() ArchiveRepository
	Responsible() ResponsibleRepository

	// Close releases the backend resources
	Close() error
}
