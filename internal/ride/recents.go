package ride

import (
	"context"
	"fmt"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// recentDocID builds the per-(type, line, field) selection list document id.
// Rides with no line share the "none" bucket so bus and train lists stay
// separate even for unlined rides.
func recentDocID(transitType domain.TransitType, line, field string) string {
	if line == "" {
		line = RecentLineNone
	}
	return string(transitType) + "_" + line + "_" + field
}

// updateRecents pushes the ride's line and stops onto their most-recent-first
// selection lists, plus the cross-line startStop fallback list
func (s *service) updateRecents(ctx context.Context, ride *domain.Ride) error {
	fields := []struct {
		field string
		value string
	}{
		{RecentFieldLine, ride.Line},
		{RecentFieldStartStop, ride.StartStop},
		{RecentFieldEndStop, ride.EndStop},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		docID := recentDocID(ride.Type, ride.Line, f.field)
		if err := s.pushRecent(ctx, ride.UserID, docID, f.value); err != nil {
			return err
		}
	}

	if ride.StartStop != "" {
		if err := s.pushRecent(ctx, ride.UserID, FallbackStartStopDoc, ride.StartStop); err != nil {
			return err
		}
	}

	return nil
}

// pushRecent prepends a value to one list, deduplicating and capping it
func (s *service) pushRecent(ctx context.Context, userID, docID, value string) error {
	current, err := s.repo.GetRecentItems(ctx, userID, docID)
	if err != nil {
		return fmt.Errorf(ErrMsgGetRecents, err)
	}

	updated := make([]string, 0, RecentItemsLimit)
	updated = append(updated, value)
	for _, item := range current {
		if item != value && len(updated) < RecentItemsLimit {
			updated = append(updated, item)
		}
	}

	if err := s.repo.SaveRecentItems(ctx, userID, docID, updated); err != nil {
		return fmt.Errorf(ErrMsgSaveRecents, err)
	}
	return nil
}

func (s *service) GetRecentSelections(ctx context.Context, userID string, transitType domain.TransitType, line, field string) ([]string, error) {
	if userID == "" || field == "" {
		return nil, domain.ErrMissingParameter
	}
	if !transitType.IsValid() {
		return nil, domain.ErrInvalidTransitType
	}

	items, err := s.repo.GetRecentItems(ctx, userID, recentDocID(transitType, line, field))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecents, err)
	}

	// The scoped list may be empty for a line the user has not ridden yet;
	// the fallback keeps the start stop picker useful
	if len(items) == 0 && field == RecentFieldStartStop {
		items, err = s.repo.GetRecentItems(ctx, userID, FallbackStartStopDoc)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetRecents, err)
		}
	}

	if items == nil {
		items = []string{}
	}
	return items, nil
}
