package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pbaille/jot/internal/app"
	"github.com/pbaille/jot/internal/domain"
	"github.com/spf13/cobra"
)

func notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"n"},
		Short:   "List notes in the selected folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				printListing(cmd.OutOrStdout(), a.Listing())
				return nil
			})
		},
	}

	cmd.AddCommand(noteNewCmd())
	cmd.AddCommand(noteShowCmd())
	cmd.AddCommand(noteEditCmd())
	cmd.AddCommand(noteMoveCmd())
	cmd.AddCommand(noteRmCmd())
	cmd.AddCommand(notePinCmd())
	cmd.AddCommand(noteOpenCmd())
	cmd.AddCommand(noteCloseCmd())
	cmd.AddCommand(noteImportCmd())
	return cmd
}

func printListing(w io.Writer, l app.Listing) {
	fmt.Fprintln(w, l.Title)
	if len(l.Pinned) == 0 && len(l.Others) == 0 {
		fmt.Fprintln(w, "No notes yet. Use 'jot notes new' to create one.")
		return
	}
	if len(l.Pinned) > 0 {
		fmt.Fprintln(w, "\nPinned")
		for _, n := range l.Pinned {
			printNoteLine(w, n)
		}
		if len(l.Others) > 0 {
			fmt.Fprintln(w, "\nOthers")
		}
	}
	for _, n := range l.Others {
		printNoteLine(w, n)
	}
}

func printNoteLine(w io.Writer, n domain.Note) {
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		shortID(n.ID), n.UpdatedAt.Local().Format("Jan 02, 2006"), n.Title, truncate(n.Content, 60))
}

func noteNewCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note in the selected folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				n, err := a.NewNote()
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("title") || cmd.Flags().Changed("content") {
					if n, err = a.SaveNote(n.ID, title, content); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added note: %s\n", shortID(n.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", domain.DefaultNoteTitle, "note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "note content")
	return cmd
}

func noteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show note details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				n, err := findNote(a, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:      %s\n", n.ID)
				fmt.Fprintf(out, "Title:   %s\n", n.Title)
				if f, ok := a.Folders.Get(n.FolderID); ok {
					fmt.Fprintf(out, "Folder:  %s %s\n", f.Icon, f.Name)
				} else {
					fmt.Fprintf(out, "Folder:  %s (missing)\n", n.FolderID)
				}
				if a.Notes.IsPinned(n.ID) {
					fmt.Fprintln(out, "Pinned:  yes")
				}
				fmt.Fprintf(out, "Created: %s\n", n.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Updated: %s\n", n.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Content:\n%s\n", n.Content)
				return nil
			})
		},
	}
}

func noteEditCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Save a new title and/or content; --content - reads stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				n, err := findNote(a, args[0])
				if err != nil {
					return err
				}

				if cmd.Flags().Changed("title") {
					n.Title = title
				}
				if cmd.Flags().Changed("content") {
					n.Content = content
					if content == "-" {
						data, err := io.ReadAll(cmd.InOrStdin())
						if err != nil {
							return fmt.Errorf("read content: %w", err)
						}
						n.Content = string(data)
					}
				}

				saved, err := a.SaveNote(n.ID, n.Title, n.Content)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s %s\n", shortID(saved.ID), saved.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title (blank becomes Untitled)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "new content")
	return cmd
}

func noteMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv [id] [folder]",
		Short: "Move a note to another folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				n, err := findNote(a, args[0])
				if err != nil {
					return err
				}
				f, err := findFolder(a, args[1])
				if err != nil {
					return err
				}
				return a.Notes.Update(domain.NotePatch{ID: n.ID, FolderID: &f.ID})
			})
		},
	}
}

func noteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				n, err := findNote(a, args[0])
				if err != nil {
					return err
				}
				if err := a.Notes.Delete(n.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted note: %s\n", n.Title)
				return nil
			})
		},
	}
}

func notePinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin [id]",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				n, err := findNote(a, args[0])
				if err != nil {
					return err
				}
				if err := a.Notes.TogglePin(n.ID); err != nil {
					return err
				}
				state := "Unpinned"
				if a.Notes.IsPinned(n.ID) {
					state = "Pinned"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", state, n.Title)
				return nil
			})
		},
	}
}

func noteOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [id]",
		Short: "Mark a note as the one being edited",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				n, err := findNote(a, args[0])
				if err != nil {
					return err
				}
				return a.Notes.SetActive(n.ID)
			})
		},
	}
}

func noteCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the open note without saving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				return a.Notes.SetActive("")
			})
		},
	}
}

func noteImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.html]",
		Short: "Create a note from an HTML file ('-' reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			return withApp(cmd, func(a *app.App) error {
				n, err := a.ImportNote(r)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported note: %s %s\n", shortID(n.ID), n.Title)
				return nil
			})
		},
	}
}
