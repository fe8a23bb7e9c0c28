package main

import (
	"fmt"
	"strings"

	"github.com/pbaille/jot/internal/app"
	"github.com/pbaille/jot/internal/domain"
	"github.com/spf13/cobra"
)

func foldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"f"},
		Short:   "List and manage folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				out := cmd.OutOrStdout()
				for _, f := range a.Folders.Folders() {
					marker := " "
					if f.ID == a.Folders.Active() {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %s  %s %s (%s)\n", marker, shortID(f.ID), f.Icon, f.Name, f.Color)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(folderNewCmd())
	cmd.AddCommand(folderRenameCmd())
	cmd.AddCommand(folderColorCmd())
	cmd.AddCommand(folderRmCmd())
	cmd.AddCommand(folderUseCmd())
	return cmd
}

func folderNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [name]",
		Short: "Create a folder and select it",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			return withApp(cmd, func(a *app.App) error {
				f, err := a.CreateFolder(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created folder: %s %s %s\n", shortID(f.ID), f.Icon, f.Name)
				return nil
			})
		},
	}
}

func folderRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [folder] [name]",
		Short: "Rename a folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				f, err := findFolder(a, args[0])
				if err != nil {
					return err
				}
				return a.RenameFolder(f.ID, strings.Join(args[1:], " "))
			})
		},
	}
}

func folderColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "color [folder] [color]",
		Short:     "Change a folder's color",
		Args:      cobra.ExactArgs(2),
		ValidArgs: colorNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseColor(args[1])
			if err != nil {
				return fmt.Errorf("%w: %s (one of %s)", err, args[1], strings.Join(colorNames(), ", "))
			}
			return withApp(cmd, func(a *app.App) error {
				f, err := findFolder(a, args[0])
				if err != nil {
					return err
				}
				return a.RecolorFolder(f.ID, c)
			})
		},
	}
}

func folderRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [folder]",
		Short: "Delete a folder (its notes are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				f, err := findFolder(a, args[0])
				if err != nil {
					return err
				}
				if err := a.DeleteFolder(f.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted folder: %s\n", f.Name)
				return nil
			})
		},
	}
}

func folderUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [folder]",
		Short: "Select a folder; no argument shows all notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				id := ""
				if len(args) == 1 {
					f, err := findFolder(a, args[0])
					if err != nil {
						return err
					}
					id = f.ID
				}
				return a.SelectFolder(id)
			})
		},
	}
}

func colorNames() []string {
	names := make([]string, len(domain.Colors))
	for i, c := range domain.Colors {
		names[i] = string(c)
	}
	return names
}
