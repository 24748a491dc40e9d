// Package session tracks per-user working state for document assembly.
//
// A session owns an ordered working set of normalized documents, an
// optional signature asset and the most recent output artifact. Sessions
// are identified by UUID and swept after a period of inactivity.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-mergesign/internal/document"
	"go-mergesign/internal/utils"
)

// Output is the downloadable artifact produced by the last merge or sign
// action, persisted under the output directory.
type Output struct {
	Path string
	Name string
	MIME string
}

// Session is the mutable working set for one user. All accessors are safe
// for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	docs       []*document.Document
	signature  *document.SignatureAsset
	output     *Output
	action     string
	lastAccess time.Time
}

// Manager holds all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a fresh empty session.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := &Session{
		ID:         utils.GenerateUUID(),
		CreatedAt:  now,
		lastAccess: now,
	}
	m.sessions[s.ID] = s
	return s
}

// Get looks up a session and marks it as recently used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch()
	}
	return s, ok
}

// Delete forgets a session without touching its files. Callers that want
// the files gone run Cleanup first.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// SweepExpired removes sessions idle for longer than ttl together with
// their on-disk files. Returns the number of sessions removed.
func (m *Manager) SweepExpired(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if time.Since(s.last()) > ttl {
			s.Cleanup()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastAccess = time.Now()
	s.mu.Unlock()
}

func (s *Session) last() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// BeginAction claims the session for a named long-running action. A second
// action while one is in flight is refused.
func (s *Session) BeginAction(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.action != "" {
		return fmt.Errorf("%s already in progress", s.action)
	}
	s.action = name
	return nil
}

// EndAction releases the claim taken by BeginAction.
func (s *Session) EndAction() {
	s.mu.Lock()
	s.action = ""
	s.mu.Unlock()
}

// CommitDocuments persists a normalized batch under dir and appends it to
// the working set in submission order. The batch lands atomically: if any
// file fails to write, files already written for this batch are removed
// and the working set is left untouched.
func (s *Session) CommitDocuments(dir string, docs []*document.Document) error {
	written := make([]string, 0, len(docs))
	for _, doc := range docs {
		path := filepath.Join(dir, doc.ID+document.PDFExtension)
		if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
			for _, p := range written {
				os.Remove(p)
			}
			return fmt.Errorf("persist %s: %w", doc.Name, err)
		}
		doc.StoredPath = path
		doc.Data = nil
		written = append(written, path)
	}

	s.mu.Lock()
	s.docs = append(s.docs, docs...)
	s.mu.Unlock()
	return nil
}

// Documents returns the working set in its current order.
func (s *Session) Documents() []*document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*document.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Document looks up one working-set entry by ID.
func (s *Session) Document(id string) (*document.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.ID == id {
			return doc, true
		}
	}
	return nil, false
}

// RemoveDocument drops a document from the working set and deletes its
// stored file. Reports whether the ID was present.
func (s *Session) RemoveDocument(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.docs {
		if doc.ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			if doc.StoredPath != "" {
				os.Remove(doc.StoredPath)
			}
			return true
		}
	}
	return false
}

// Reorder rearranges the working set. The new order must name every
// current document exactly once.
func (s *Session) Reorder(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) != len(s.docs) {
		return fmt.Errorf("order names %d documents, session has %d", len(ids), len(s.docs))
	}
	byID := make(map[string]*document.Document, len(s.docs))
	for _, doc := range s.docs {
		byID[doc.ID] = doc
	}
	next := make([]*document.Document, 0, len(ids))
	for _, id := range ids {
		doc, ok := byID[id]
		if !ok {
			return fmt.Errorf("unknown document %q", id)
		}
		delete(byID, id)
		next = append(next, doc)
	}
	s.docs = next
	return nil
}

// SetSignature replaces the session's signature asset, deleting the file
// backing the previous one.
func (s *Session) SetSignature(asset *document.SignatureAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signature != nil && s.signature.Path != "" {
		os.Remove(s.signature.Path)
	}
	s.signature = asset
}

// Signature returns the current signature asset, nil when none uploaded.
func (s *Session) Signature() *document.SignatureAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signature
}

// SetOutput records the downloadable artifact, deleting the previous one.
func (s *Session) SetOutput(path, name, mime string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.output != nil && s.output.Path != path {
		os.Remove(s.output.Path)
	}
	s.output = &Output{Path: path, Name: name, MIME: mime}
}

// Output returns the last recorded artifact.
func (s *Session) Output() (Output, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.output == nil {
		return Output{}, false
	}
	return *s.output, true
}

// ClearOutput deletes the artifact file and forgets it. The working set is
// untouched, so the session can keep assembling.
func (s *Session) ClearOutput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.output != nil {
		os.Remove(s.output.Path)
		s.output = nil
	}
}

// Cleanup deletes every file the session owns: stored documents, the
// signature asset and the output artifact.
func (s *Session) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.StoredPath != "" {
			os.Remove(doc.StoredPath)
		}
	}
	if s.signature != nil && s.signature.Path != "" {
		os.Remove(s.signature.Path)
	}
	if s.output != nil {
		os.Remove(s.output.Path)
	}
	s.docs = nil
	s.signature = nil
	s.output = nil
}
