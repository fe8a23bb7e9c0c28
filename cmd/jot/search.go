package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pbaille/jot/internal/app"
	"github.com/pbaille/jot/internal/debounce"
	"github.com/pbaille/jot/internal/domain"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search every note by title or content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				out := cmd.OutOrStdout()
				if interactive {
					return searchInteractive(a, cmd.InOrStdin(), out)
				}

				query := ""
				if len(args) == 1 {
					query = args[0]
				}
				printResults(out, a.Notes.Search(query))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read queries line by line, searching once typing pauses")
	return cmd
}

// searchInteractive treats each input line as the current search term and
// prints results once input has been quiet for the configured delay.
func searchInteractive(a *app.App, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
		errc <- sc.Err()
		close(lines)
	}()

	// Only the latest settled query matters; a stale one is replaced
	queries := make(chan string, 1)
	d := debounce.New(cfg.SearchDebounce, func(q string) {
		for {
			select {
			case queries <- q:
				return
			default:
				select {
				case <-queries:
				default:
				}
			}
		}
	})
	defer d.Stop()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				d.Flush()
				select {
				case q := <-queries:
					fmt.Fprintf(out, "> %s\n", q)
					printResults(out, a.Notes.Search(q))
				default:
				}
				return <-errc
			}
			d.Push(line)
		case q := <-queries:
			fmt.Fprintf(out, "> %s\n", q)
			printResults(out, a.Notes.Search(q))
		}
	}
}

func printResults(w io.Writer, notes []domain.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No matching notes found.")
		return
	}
	for _, n := range notes {
		fmt.Fprintf(w, "%s  %s  %s\n", shortID(n.ID), n.Title, truncate(n.Content, 60))
	}
}
