package sync

// PlanStatus describes what synchronization would do with one staged entry.
type PlanStatus string

const (
	// PlanNew means no hook of that name is installed yet.
	PlanNew PlanStatus = "new"

	// PlanUpToDate means the installed hook is identical.
	PlanUpToDate PlanStatus = "up-to-date"

	// PlanConflict means a different hook of that name is installed.
	PlanConflict PlanStatus = "conflict"

	// PlanDirectory means the entry is a directory and is never installed.
	PlanDirectory PlanStatus = "directory"

	// PlanExcluded means the entry matches an exclude pattern.
	PlanExcluded PlanStatus = "excluded"

	// PlanSettled means the hook was already copied or skipped this session.
	PlanSettled PlanStatus = "settled"

	// PlanUnreadable means one side could not be inspected.
	PlanUnreadable PlanStatus = "unreadable"
)

// PlanEntry is the predicted status of one staged entry.
type PlanEntry struct {
	Hook   string
	Status PlanStatus
	Err    error
}

// Plan classifies every staged entry without writing anything. It fails with
// the same directory errors as SynchronizeAll.
func (s *Synchronizer) Plan() ([]PlanEntry, error) {
	names, err := s.listEntries()
	if err != nil {
		return nil, err
	}

	entries := make([]PlanEntry, 0, len(names))
	for _, name := range names {
		status, err := s.classify(name)
		entries = append(entries, PlanEntry{Hook: name, Status: status, Err: err})
	}
	return entries, nil
}
