package domain

import (
	"errors"
	"time"
)

// FolderColor is one of the fixed folder colors
type FolderColor string

const (
	Yellow FolderColor = "yellow"
	Blue   FolderColor = "blue"
	Green  FolderColor = "green"
	Rose   FolderColor = "rose"
	Purple FolderColor = "purple"
)

// Colors lists every folder color in display order
var Colors = []FolderColor{Yellow, Blue, Green, Rose, Purple}

// ErrInvalidColor is returned when a string names no known color
var ErrInvalidColor = errors.New("invalid folder color")

// ParseColor maps a color name to a FolderColor
func ParseColor(s string) (FolderColor, error) {
	for _, c := range Colors {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidColor
}

const (
	DefaultFolderName = "New Folder"
	DefaultNoteTitle  = "New Note"
	UntitledNote      = "Untitled"
)

// Folder groups notes by reference; it does not own them
type Folder struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Icon  string      `json:"icon"`
	Color FolderColor `json:"color"`
}

// Note is a short text note filed under a folder
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	FolderID  string    `json:"folderId"`
}

// FolderPatch holds the mutable folder fields; nil fields are left untouched
type FolderPatch struct {
	Name  *string
	Color *FolderColor
}

// Apply merges the patch into f
func (p FolderPatch) Apply(f Folder) Folder {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
	return f
}

// NotePatch is a partial note update addressed by ID
type NotePatch struct {
	ID       string
	Title    *string
	Content  *string
	FolderID *string
}

// Apply merges the patch into n. UpdatedAt is the caller's business.
func (p NotePatch) Apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.FolderID != nil {
		n.FolderID = *p.FolderID
	}
	return n
}
