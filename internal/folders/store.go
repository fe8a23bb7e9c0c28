package folders

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/pbaille/jot/internal/domain"
	"github.com/rs/zerolog"
)

// Persister is the part of the persistence adapter the folder store writes through
type Persister interface {
	Folders() ([]domain.Folder, error)
	SaveFolders([]domain.Folder) error
	ActiveFolder() (string, error)
	SaveActiveFolder(id string) error
}

// Store owns the folder collection and the active folder selection
type Store struct {
	p      Persister
	rng    domain.Rand
	newID  func() string
	log    zerolog.Logger
	items  []domain.Folder
	active string
}

// Option configures a Store
type Option func(*Store)

// WithRand sets the source used to pick icons and colors
func WithRand(r domain.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithIDFunc sets the id generator
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New loads folders and the active folder from p
func New(p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		p:     p,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID: uuid.NewString,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := p.Folders()
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	active, err := p.ActiveFolder()
	if err != nil {
		return nil, fmt.Errorf("load active folder: %w", err)
	}
	s.items = items
	s.active = active

	return s, nil
}

// Folders returns the folders in collection order
func (s *Store) Folders() []domain.Folder {
	return slices.Clone(s.items)
}

// Active returns the active folder id, "" when none
func (s *Store) Active() string {
	return s.active
}

// Get looks up a folder by id
func (s *Store) Get(id string) (domain.Folder, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Folder{}, false
	}
	return s.items[i], true
}

// Create appends a folder with a random icon and color and makes it active
func (s *Store) Create(name string) (domain.Folder, error) {
	if name == "" {
		name = domain.DefaultFolderName
	}
	f := domain.Folder{
		ID:    s.newID(),
		Name:  name,
		Icon:  domain.PickIcon(s.rng),
		Color: domain.PickColor(s.rng),
	}

	items := append(slices.Clip(s.items), f)
	if err := s.p.SaveFolders(items); err != nil {
		return f, err
	}
	s.items = items
	if err := s.SetActive(f.ID); err != nil {
		return f, err
	}

	s.log.Debug().Str("folder", f.ID).Str("name", f.Name).Msg("folder created")
	return f, nil
}

// Update merges patch into the folder with the given id. Unknown ids are ignored.
func (s *Store) Update(id string, patch domain.FolderPatch) error {
	items := slices.Clone(s.items)
	if i := s.index(id); i >= 0 {
		items[i] = patch.Apply(items[i])
	}
	if err := s.p.SaveFolders(items); err != nil {
		return err
	}
	s.items = items
	return nil
}

// Delete removes a folder. Notes filed under it are left alone. When the
// active folder goes away the first remaining folder becomes active.
func (s *Store) Delete(id string) error {
	items := slices.DeleteFunc(slices.Clone(s.items), func(f domain.Folder) bool { return f.ID == id })
	if err := s.p.SaveFolders(items); err != nil {
		return err
	}
	s.items = items

	if s.active != id {
		return nil
	}
	next := ""
	if len(s.items) > 0 {
		next = s.items[0].ID
	}
	s.log.Debug().Str("folder", id).Str("active", next).Msg("active folder deleted")
	return s.SetActive(next)
}

// SetActive selects a folder; "" clears the selection
func (s *Store) SetActive(id string) error {
	if err := s.p.SaveActiveFolder(id); err != nil {
		return err
	}
	s.active = id
	return nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(f domain.Folder) bool { return f.ID == id })
}
