package persist

import (
	"encoding/json"
	"fmt"

	"github.com/pbaille/jot/internal/domain"
	"github.com/pbaille/jot/internal/storage"
	"github.com/rs/zerolog"
)

// Slot keys in the blob store
const (
	FoldersKey      = "notes_app_folders"
	NotesKey        = "notes_app_notes"
	ActiveFolderKey = "notes_app_active_folder"
	ActiveNoteKey   = "notes_app_active_note"
	PinnedNotesKey  = "notes_app_pinned_notes"
)

// Adapter reads and writes the five application slots. Every save writes the
// whole collection.
type Adapter struct {
	kv  storage.KV
	log zerolog.Logger
}

// New creates an Adapter over kv
func New(kv storage.KV, log zerolog.Logger) *Adapter {
	return &Adapter{kv: kv, log: log.With().Str("component", "persist").Logger()}
}

// Folders loads the folder collection, seeding the default folders on first read
func (a *Adapter) Folders() ([]domain.Folder, error) {
	var folders []domain.Folder
	state, err := a.load(FoldersKey, &folders)
	if err != nil {
		return nil, err
	}
	switch state {
	case loaded:
		return folders, nil
	case missing:
		folders = domain.DefaultFolders()
		if err := a.SaveFolders(folders); err != nil {
			return nil, err
		}
		return folders, nil
	default:
		return domain.DefaultFolders(), nil
	}
}

// SaveFolders writes the folder collection
func (a *Adapter) SaveFolders(folders []domain.Folder) error {
	if folders == nil {
		folders = []domain.Folder{}
	}
	if err := a.save(FoldersKey, folders); err != nil {
		return fmt.Errorf("save folders: %w", err)
	}
	return nil
}

// Notes loads the note collection, seeding the default notes on first read
func (a *Adapter) Notes() ([]domain.Note, error) {
	var notes []domain.Note
	state, err := a.load(NotesKey, &notes)
	if err != nil {
		return nil, err
	}
	switch state {
	case loaded:
		return notes, nil
	case missing:
		notes = domain.DefaultNotes()
		if err := a.SaveNotes(notes); err != nil {
			return nil, err
		}
		return notes, nil
	default:
		return domain.DefaultNotes(), nil
	}
}

// SaveNotes writes the note collection
func (a *Adapter) SaveNotes(notes []domain.Note) error {
	if notes == nil {
		notes = []domain.Note{}
	}
	if err := a.save(NotesKey, notes); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

// ActiveFolder returns the active folder id, "" when none
func (a *Adapter) ActiveFolder() (string, error) {
	return a.loadID(ActiveFolderKey)
}

// SaveActiveFolder records the active folder; "" clears it
func (a *Adapter) SaveActiveFolder(id string) error {
	if err := a.saveID(ActiveFolderKey, id); err != nil {
		return fmt.Errorf("save active folder: %w", err)
	}
	return nil
}

// ActiveNote returns the active note id, "" when none
func (a *Adapter) ActiveNote() (string, error) {
	return a.loadID(ActiveNoteKey)
}

// SaveActiveNote records the active note; "" clears it
func (a *Adapter) SaveActiveNote(id string) error {
	if err := a.saveID(ActiveNoteKey, id); err != nil {
		return fmt.Errorf("save active note: %w", err)
	}
	return nil
}

// PinnedNoteIDs returns the pinned ids in pin order
func (a *Adapter) PinnedNoteIDs() ([]string, error) {
	var ids []string
	state, err := a.load(PinnedNotesKey, &ids)
	if err != nil {
		return nil, err
	}
	if state != loaded || ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SavePinnedNoteIDs writes the pinned ids
func (a *Adapter) SavePinnedNoteIDs(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	if err := a.save(PinnedNotesKey, ids); err != nil {
		return fmt.Errorf("save pinned notes: %w", err)
	}
	return nil
}

type slotState int

const (
	missing slotState = iota
	corrupt
	loaded
)

// load decodes the slot into v. Undecodable data is logged and left in place;
// callers fall back to their default and the next save overwrites it.
func (a *Adapter) load(key string, v any) (slotState, error) {
	raw, ok, err := a.kv.Get(key)
	if err != nil {
		return missing, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return missing, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("corrupt slot, using defaults")
		return corrupt, nil
	}
	return loaded, nil
}

func (a *Adapter) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.kv.Set(key, raw); err != nil {
		return err
	}
	a.log.Debug().Str("key", key).Int("bytes", len(raw)).Msg("slot written")
	return nil
}

// Active ids are stored as raw strings, not JSON
func (a *Adapter) loadID(key string) (string, error) {
	raw, ok, err := a.kv.Get(key)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

func (a *Adapter) saveID(key, id string) error {
	if id == "" {
		return a.kv.Delete(key)
	}
	return a.kv.Set(key, []byte(id))
}
