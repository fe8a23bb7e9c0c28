package notes

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pbaille/jot/internal/domain"
	"github.com/rs/zerolog"
)

// Persister is the part of the persistence adapter the note store writes through
type Persister interface {
	Notes() ([]domain.Note, error)
	SaveNotes([]domain.Note) error
	ActiveNote() (string, error)
	SaveActiveNote(id string) error
	PinnedNoteIDs() ([]string, error)
	SavePinnedNoteIDs([]string) error
}

// Store owns the note collection, the active note and the pinned set.
// The folder filter is kept as a criterion; filtered listings are derived
// from the collection each time they are asked for.
type Store struct {
	p      Persister
	now    func() time.Time
	newID  func() string
	log    zerolog.Logger
	items  []domain.Note
	active string
	pinned pinnedSet
	filter string
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source for note timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the id generator
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New loads notes, the active note and the pinned ids from p
func New(p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		p:     p,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := p.Notes()
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	active, err := p.ActiveNote()
	if err != nil {
		return nil, fmt.Errorf("load active note: %w", err)
	}
	pinned, err := p.PinnedNoteIDs()
	if err != nil {
		return nil, fmt.Errorf("load pinned notes: %w", err)
	}
	s.items = items
	s.active = active
	s.pinned = pinnedSet(pinned)

	return s, nil
}

// Notes returns every note in collection order
func (s *Store) Notes() []domain.Note {
	return slices.Clone(s.items)
}

// Get looks up a note by id
func (s *Store) Get(id string) (domain.Note, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Note{}, false
	}
	return s.items[i], true
}

// Active returns the active note id, "" when none
func (s *Store) Active() string {
	return s.active
}

// PinnedIDs returns the pinned note ids in pin order
func (s *Store) PinnedIDs() []string {
	return slices.Clone([]string(s.pinned))
}

func (s *Store) IsPinned(id string) bool {
	return s.pinned.has(id)
}

// Create appends an empty note to folderID. The folder is not checked.
func (s *Store) Create(folderID string) (domain.Note, error) {
	now := s.now()
	n := domain.Note{
		ID:        s.newID(),
		Title:     domain.DefaultNoteTitle,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
		FolderID:  folderID,
	}

	items := append(slices.Clip(s.items), n)
	if err := s.p.SaveNotes(items); err != nil {
		return n, err
	}
	s.items = items

	s.log.Debug().Str("note", n.ID).Str("folder", folderID).Msg("note created")
	return n, nil
}

// Update merges patch into the note patch.ID names and stamps UpdatedAt.
// A patch without an id does nothing.
func (s *Store) Update(patch domain.NotePatch) error {
	if patch.ID == "" {
		return nil
	}

	items := slices.Clone(s.items)
	if i := s.index(patch.ID); i >= 0 {
		n := patch.Apply(items[i])
		n.UpdatedAt = s.stamp(n.UpdatedAt)
		items[i] = n
	}
	if err := s.p.SaveNotes(items); err != nil {
		return err
	}
	s.items = items
	return nil
}

// stamp returns the current time, nudged past prev so UpdatedAt always moves forward
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

// Delete removes a note, unpins it and clears it as the active note
func (s *Store) Delete(id string) error {
	items := slices.DeleteFunc(slices.Clone(s.items), func(n domain.Note) bool { return n.ID == id })
	if err := s.p.SaveNotes(items); err != nil {
		return err
	}
	s.items = items

	pinned := s.pinned.remove(id)
	if err := s.p.SavePinnedNoteIDs(pinned); err != nil {
		return err
	}
	s.pinned = pinned

	if s.active == id {
		return s.SetActive("")
	}
	return nil
}

// TogglePin flips whether id is pinned
func (s *Store) TogglePin(id string) error {
	pinned := s.pinned.toggle(id)
	if err := s.p.SavePinnedNoteIDs(pinned); err != nil {
		return err
	}
	s.pinned = pinned
	return nil
}

// SetActive selects a note; "" clears the selection
func (s *Store) SetActive(id string) error {
	if err := s.p.SaveActiveNote(id); err != nil {
		return err
	}
	s.active = id
	return nil
}

// FilterByFolder restricts FilteredNotes to folderID; "" shows every note
func (s *Store) FilterByFolder(folderID string) {
	s.filter = folderID
}

// Filter returns the current folder criterion
func (s *Store) Filter() string {
	return s.filter
}

// FilteredNotes returns the notes matching the folder filter in collection order
func (s *Store) FilteredNotes() []domain.Note {
	if s.filter == "" {
		return s.Notes()
	}
	var out []domain.Note
	for _, n := range s.items {
		if n.FolderID == s.filter {
			out = append(out, n)
		}
	}
	return out
}

// Search returns notes whose title or content contains query, ignoring case.
// It looks at every note regardless of the folder filter.
func (s *Store) Search(query string) []domain.Note {
	if query == "" {
		return s.Notes()
	}
	q := strings.ToLower(query)
	var out []domain.Note
	for _, n := range s.items {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// Group splits notes into pinned and unpinned, each keeping its order
func Group(notes []domain.Note, pinned func(id string) bool) (pins, others []domain.Note) {
	for _, n := range notes {
		if pinned(n.ID) {
			pins = append(pins, n)
		} else {
			others = append(others, n)
		}
	}
	return pins, others
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(n domain.Note) bool { return n.ID == id })
}
