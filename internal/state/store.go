package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/hydrant/api"
	"github.com/five82/hydrant/hydrus"
)

// PageRow is one page of the hydrus page tree, flattened for display.
type PageRow struct {
	Key      string
	Name     string
	Type     api.PageType
	Depth    int
	Selected bool
}

// Snapshot represents the latest data available to the page browser.
type Snapshot struct {
	Version             api.APIVersionResponse
	HasVersion          bool
	Pages               []PageRow
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline reports whether hydrus has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(version *api.APIVersionResponse, pages []PageRow, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Pages = clonePages(pages)
	if version != nil {
		s.snapshot.Version = *version
		s.snapshot.HasVersion = true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Pages = clonePages(s.snapshot.Pages)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// FlattenPages lists root and its descendants depth first. The root notebook
// itself is omitted; its children are depth 0.
func FlattenPages(root *hydrus.Page) []PageRow {
	if root == nil {
		return nil
	}
	var rows []PageRow
	var walk func(p *hydrus.Page, depth int)
	walk = func(p *hydrus.Page, depth int) {
		for _, child := range p.Children {
			rows = append(rows, PageRow{
				Key:      child.Key,
				Name:     child.Name,
				Type:     child.Type,
				Depth:    depth,
				Selected: child.Selected,
			})
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return rows
}

func clonePages(rows []PageRow) []PageRow {
	if len(rows) == 0 {
		return nil
	}
	dup := make([]PageRow, len(rows))
	copy(dup, rows)
	return dup
}
