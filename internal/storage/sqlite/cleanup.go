package sqlite

import (
	"context"
	"fmt"
	"time"
)

// PruneApplications removes records older than daysThreshold days and returns
// how many were (or, with dryRun, would be) removed. A threshold of 0 removes
// everything.
func (s *Store) PruneApplications(ctx context.Context, daysThreshold int, dryRun bool) (int64, error) {
	if daysThreshold < 0 {
		return 0, fmt.Errorf("sqlite storage: days threshold must be >= 0")
	}
	cutoff := utcString(time.Now().AddDate(0, 0, -daysThreshold))

	var count int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE created_at <= ?`, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite storage: count applications for cleanup: %w", err)
	}
	if count == 0 || dryRun {
		return count, nil
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE created_at <= ?`, cutoff); err != nil {
		return 0, fmt.Errorf("sqlite storage: prune applications: %w", err)
	}
	return count, nil
}
