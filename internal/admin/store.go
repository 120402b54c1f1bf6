// InstaBids | 2026
// store.go

package admin

import (
	"context"
	"fmt"

	"github.com/instabids/management-api/internal/core"
)

type countStore struct {
	db core.DBTX
}

func NewCountStore(db core.DBTX) CountStore {
	return &countStore{db: db}
}

func (s *countStore) MarketplaceCounts(ctx context.Context) (MarketplaceCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM properties WHERE deleted_at IS NULL) AS properties,
			(SELECT COUNT(*) FROM projects) AS projects,
			(SELECT COUNT(*) FROM projects WHERE status = 'open_for_bids') AS open_bids,
			(SELECT COUNT(*) FROM quotes) AS quotes`

	var counts MarketplaceCounts
	if err := s.db.GetContext(ctx, &counts, query); err != nil {
		return MarketplaceCounts{}, fmt.Errorf("counting marketplace rows: %w", err)
	}

	return counts, nil
}
