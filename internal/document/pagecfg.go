package document

import "sync"

// PageConfig is the per-page assembly configuration: whether the page is
// included in a merge and how much extra rotation it receives.
type PageConfig struct {
	Selected bool `json:"selected"`
	Rotation int  `json:"rotation"` // 0, 90, 180 or 270
}

// defaultPageConfig is what every index resolves to until written.
var defaultPageConfig = PageConfig{Selected: true, Rotation: 0}

// PageConfigPatch is a partial update; nil fields keep the current value.
type PageConfigPatch struct {
	Selected *bool `json:"selected,omitempty"`
	Rotation *int  `json:"rotation,omitempty"`
}

// ConfigStore holds the page configuration for one document.
//
// Defaults are resolved at read time and never persisted by Get: an index
// with no entry behaves as {selected: true, rotation: 0}. SelectAll and
// DeselectAll materialize entries for every index so later reads and writes
// see one consistent picture regardless of which pages were touched first.
type ConfigStore struct {
	mu        sync.Mutex
	pageCount int
	entries   map[int]PageConfig
}

// NewConfigStore creates a store for a document with pageCount pages.
func NewConfigStore(pageCount int) *ConfigStore {
	return &ConfigStore{
		pageCount: pageCount,
		entries:   make(map[int]PageConfig),
	}
}

// PageCount returns the page count the store was created with.
func (s *ConfigStore) PageCount() int { return s.pageCount }

// Get returns the configuration for index, falling back to the default
// without persisting it. Out-of-range indices also return the default.
func (s *ConfigStore) Get(index int) PageConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg, ok := s.entries[index]; ok {
		return cfg
	}
	return defaultPageConfig
}

// Set merges the patch into the entry for index, creating the entry from
// the default when absent. Rotation values are normalized mod 360 onto the
// four right angles; anything off-grid snaps down to the nearest one.
func (s *ConfigStore) Set(index int, patch PageConfigPatch) PageConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(index, patch)
}

func (s *ConfigStore) setLocked(index int, patch PageConfigPatch) PageConfig {
	cfg, ok := s.entries[index]
	if !ok {
		cfg = defaultPageConfig
	}
	if patch.Selected != nil {
		cfg.Selected = *patch.Selected
	}
	if patch.Rotation != nil {
		cfg.Rotation = normalizeRotation(*patch.Rotation)
	}
	s.entries[index] = cfg
	return cfg
}

// Rotate adds a quarter turn to the page's configured rotation.
func (s *ConfigStore) Rotate(index int) PageConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.entries[index]
	if !ok {
		cur = defaultPageConfig
	}
	r := (cur.Rotation + 90) % 360
	return s.setLocked(index, PageConfigPatch{Rotation: &r})
}

// SelectAll marks every page in [0, pageCount) as selected, materializing
// entries as needed.
func (s *ConfigStore) SelectAll() { s.setAll(true) }

// DeselectAll marks every page in [0, pageCount) as deselected,
// materializing entries as needed.
func (s *ConfigStore) DeselectAll() { s.setAll(false) }

func (s *ConfigStore) setAll(selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < s.pageCount; i++ {
		s.setLocked(i, PageConfigPatch{Selected: &selected})
	}
}

// Snapshot returns the resolved configuration for every page in order,
// defaults included. Used to render page lists without exposing the map.
func (s *ConfigStore) Snapshot() []PageConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PageConfig, s.pageCount)
	for i := 0; i < s.pageCount; i++ {
		if cfg, ok := s.entries[i]; ok {
			out[i] = cfg
		} else {
			out[i] = defaultPageConfig
		}
	}
	return out
}

// normalizeRotation maps any degree value onto {0, 90, 180, 270}.
func normalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg - deg%90
}
