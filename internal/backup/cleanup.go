package backup

import (
	"fmt"
	"time"
)

// Prune deletes all but the newest keep backups of hook and returns the IDs
// it removed.
func (s *Store) Prune(hook string, keep int) ([]string, error) {
	backups, err := s.List(hook)
	if err != nil {
		return nil, err
	}
	if keep < 0 || len(backups) <= keep {
		return nil, nil
	}

	var deleted []string
	for _, b := range backups[keep:] {
		if err := s.Delete(b.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete backup %q: %w", b.ID, err)
		}
		deleted = append(deleted, b.ID)
	}
	return deleted, nil
}

// Stats contains statistics about backups
type Stats struct {
	TotalBackups  int
	TotalSize     int64
	BackupsByHook map[string]int
	OldestBackup  time.Time
	NewestBackup  time.Time
}

// Stats summarizes the store's contents.
func (s *Store) Stats() (*Stats, error) {
	backups, err := s.List("")
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalBackups:  len(backups),
		BackupsByHook: make(map[string]int),
	}
	for _, b := range backups {
		stats.TotalSize += b.Size
		stats.BackupsByHook[b.Hook]++
	}
	if len(backups) > 0 {
		stats.NewestBackup = backups[0].CreatedAt
		stats.OldestBackup = backups[len(backups)-1].CreatedAt
	}
	return stats, nil
}
