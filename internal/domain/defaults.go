package domain

import "time"

// FolderIcons is the set new folders draw their icon from
var FolderIcons = []string{"📁", "📓", "📔", "📕", "📗", "📘", "📙"}

// Rand is the slice of math/rand/v2 the pickers need
type Rand interface {
	IntN(n int) int
}

// PickIcon returns a uniformly chosen folder icon
func PickIcon(r Rand) string {
	return FolderIcons[r.IntN(len(FolderIcons))]
}

// PickColor returns a uniformly chosen folder color
func PickColor(r Rand) FolderColor {
	return Colors[r.IntN(len(Colors))]
}

// DefaultFolders is the dataset written on first run
func DefaultFolders() []Folder {
	return []Folder{
		{ID: "work", Name: "Work", Icon: "💼", Color: Yellow},
		{ID: "health", Name: "Health", Icon: "🌱", Color: Green},
		{ID: "ideas", Name: "Ideas", Icon: "💡", Color: Rose},
		{ID: "learning", Name: "Learning", Icon: "📚", Color: Purple},
	}
}

// DefaultNotes is the dataset written on first run
func DefaultNotes() []Note {
	meeting := time.Date(2023, 4, 23, 10, 0, 0, 0, time.UTC)
	idea := time.Date(2023, 4, 20, 15, 30, 0, 0, time.UTC)
	return []Note{
		{
			ID:        "note1",
			Title:     "Client Meeting Notes",
			Content:   "Talked about the new piking model...",
			CreatedAt: meeting,
			UpdatedAt: meeting,
			FolderID:  "work",
		},
		{
			ID:        "note2",
			Title:     "Startup Idea - AI flashcards",
			Content:   "An app that auto-generate flashcards",
			CreatedAt: idea,
			UpdatedAt: idea,
			FolderID:  "ideas",
		},
	}
}
