package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbaille/jot/internal/app"
	"github.com/pbaille/jot/internal/config"
	"github.com/pbaille/jot/internal/domain"
	"github.com/pbaille/jot/internal/logging"
	"github.com/pbaille/jot/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg        config.Config
	configPath string
	dbPath     string
	logLevel   string
	ephemeral  bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jot",
		Short: "Notes in color-coded folders",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("ephemeral") {
				cfg.Ephemeral = ephemeral
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep state in memory only; nothing is written to disk")

	rootCmd.AddCommand(foldersCmd())
	rootCmd.AddCommand(notesCmd())
	rootCmd.AddCommand(searchCmd())

	return rootCmd
}

func getApp(cmd *cobra.Command) (*app.App, error) {
	kv, err := openStorage()
	if err != nil {
		return nil, err
	}

	log := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	a, err := app.New(kv, app.WithLogger(log))
	if err != nil {
		kv.Close()
		return nil, err
	}
	return a, nil
}

func openStorage() (storage.KV, error) {
	if cfg.Ephemeral {
		return storage.NewMemory(), nil
	}

	// Ensure directory exists
	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// withApp opens the app, runs fn and closes it
func withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// findNote resolves an id or unique id prefix
func findNote(a *app.App, prefix string) (domain.Note, error) {
	var matches []domain.Note
	for _, n := range a.Notes.Notes() {
		if n.ID == prefix {
			return n, nil
		}
		if strings.HasPrefix(n.ID, prefix) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Note{}, fmt.Errorf("note not found: %s", prefix)
	case 1:
		return matches[0], nil
	default:
		return domain.Note{}, fmt.Errorf("ambiguous note id: %s", prefix)
	}
}

// findFolder resolves an id, unique id prefix or exact name
func findFolder(a *app.App, ref string) (domain.Folder, error) {
	var matches []domain.Folder
	for _, f := range a.Folders.Folders() {
		if f.ID == ref {
			return f, nil
		}
		if strings.HasPrefix(f.ID, ref) || strings.EqualFold(f.Name, ref) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Folder{}, fmt.Errorf("folder not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Folder{}, fmt.Errorf("ambiguous folder: %s", ref)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
