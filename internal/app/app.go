package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/pbaille/jot/internal/domain"
	"github.com/pbaille/jot/internal/folders"
	"github.com/pbaille/jot/internal/importer"
	"github.com/pbaille/jot/internal/notes"
	"github.com/pbaille/jot/internal/persist"
	"github.com/pbaille/jot/internal/storage"
	"github.com/rs/zerolog"
)

// AllNotesTitle labels the listing when no folder is selected
const AllNotesTitle = "All Notes"

// App owns the folder and note stores and keeps the note filter in step with
// the active folder.
type App struct {
	Folders *folders.Store
	Notes   *notes.Store

	kv  storage.KV
	log zerolog.Logger
}

type options struct {
	log     zerolog.Logger
	folders []folders.Option
	notes   []notes.Option
}

// Option configures an App
type Option func(*options)

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithFolderOptions passes options through to the folder store
func WithFolderOptions(opts ...folders.Option) Option {
	return func(o *options) { o.folders = append(o.folders, opts...) }
}

// WithNoteOptions passes options through to the note store
func WithNoteOptions(opts ...notes.Option) Option {
	return func(o *options) { o.notes = append(o.notes, opts...) }
}

// New loads both stores from kv. The App takes ownership of kv.
func New(kv storage.KV, opts ...Option) (*App, error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	p := persist.New(kv, o.log)

	fs, err := folders.New(p, append([]folders.Option{folders.WithLogger(o.log)}, o.folders...)...)
	if err != nil {
		return nil, err
	}
	ns, err := notes.New(p, append([]notes.Option{notes.WithLogger(o.log)}, o.notes...)...)
	if err != nil {
		return nil, err
	}
	ns.FilterByFolder(fs.Active())

	return &App{Folders: fs, Notes: ns, kv: kv, log: o.log}, nil
}

// Close releases the underlying store
func (a *App) Close() error {
	return a.kv.Close()
}

// SelectFolder makes id the active folder and filters notes to it
func (a *App) SelectFolder(id string) error {
	if err := a.Folders.SetActive(id); err != nil {
		return err
	}
	a.Notes.FilterByFolder(id)
	return nil
}

// CreateFolder adds a folder and switches the listing to it
func (a *App) CreateFolder(name string) (domain.Folder, error) {
	f, err := a.Folders.Create(name)
	if err != nil {
		return f, err
	}
	a.Notes.FilterByFolder(a.Folders.Active())
	return f, nil
}

// RenameFolder trims name and ignores blank names
func (a *App) RenameFolder(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return a.Folders.Update(id, domain.FolderPatch{Name: &name})
}

// RecolorFolder changes a folder's color
func (a *App) RecolorFolder(id string, c domain.FolderColor) error {
	return a.Folders.Update(id, domain.FolderPatch{Color: &c})
}

// DeleteFolder removes a folder. Its notes stay and remain visible under
// All Notes.
func (a *App) DeleteFolder(id string) error {
	if err := a.Folders.Delete(id); err != nil {
		return err
	}
	a.Notes.FilterByFolder(a.Folders.Active())
	return nil
}

// NewNote creates a note in the active folder (or the first folder) and opens it
func (a *App) NewNote() (domain.Note, error) {
	folderID := a.Folders.Active()
	if folderID == "" {
		if fs := a.Folders.Folders(); len(fs) > 0 {
			folderID = fs[0].ID
		}
	}

	n, err := a.Notes.Create(folderID)
	if err != nil {
		return n, err
	}
	if err := a.Notes.SetActive(n.ID); err != nil {
		return n, err
	}
	return n, nil
}

// SaveNote writes an edit and closes the editor. Blank titles become "Untitled".
func (a *App) SaveNote(id, title, content string) (domain.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.UntitledNote
	}

	if err := a.Notes.Update(domain.NotePatch{ID: id, Title: &title, Content: &content}); err != nil {
		return domain.Note{}, err
	}
	if err := a.Notes.SetActive(""); err != nil {
		return domain.Note{}, err
	}

	n, ok := a.Notes.Get(id)
	if !ok {
		return domain.Note{}, fmt.Errorf("note not found: %s", id)
	}
	a.log.Debug().Str("note", id).Msg("note saved")
	return n, nil
}

// ImportNote creates a note from an HTML document
func (a *App) ImportNote(r io.Reader) (domain.Note, error) {
	doc, err := importer.Extract(r)
	if err != nil {
		return domain.Note{}, fmt.Errorf("import: %w", err)
	}

	n, err := a.NewNote()
	if err != nil {
		return n, err
	}
	return a.SaveNote(n.ID, doc.Title, doc.Content)
}

// Listing is what the note list shows for the current folder
type Listing struct {
	Title  string
	Pinned []domain.Note
	Others []domain.Note
}

// Listing groups the filtered notes into pinned and other notes
func (a *App) Listing() Listing {
	title := AllNotesTitle
	if f, ok := a.Folders.Get(a.Notes.Filter()); ok {
		title = f.Name
	}

	pinned, others := notes.Group(a.Notes.FilteredNotes(), a.Notes.IsPinned)
	return Listing{Title: title, Pinned: pinned, Others: others}
}
