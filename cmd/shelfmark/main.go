package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"shelfmark/internal/api"
	"shelfmark/internal/app"
	"shelfmark/internal/tracker"
)

var (
	configPath string
	prefsPath  string
	verbose    bool

	listState    string
	listCategory string
	listKeyword  string
	listPage     int
)

var rootCmd = &cobra.Command{
	Use:   "shelfmark",
	Short: "Terminal client for the shelfmark reading tracker",
	Long: `shelfmark is a terminal client for a personal reading tracker.

It keeps a bookmark list of the books you are reading, want to read,
or have finished; tracks page progress and reading dates; and shows
per-state statistics. Run without arguments to start the interactive
interface.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), appOptions())
	},
}

// listCmd prints one page of bookmarks, for scripting.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of bookmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := app.NewClient(appOptions())
		if err != nil {
			return err
		}

		filters := tracker.NewFilters()
		if listCategory != "" {
			filters = filters.WithCategory(listCategory)
		}
		if listState != "" {
			state, err := api.ParseReadState(listState)
			if err != nil {
				return err
			}
			filters = filters.WithReadState(string(state))
		}
		filters = filters.WithKeyword(listKeyword).WithPage(listPage)

		page, err := client.ListBookmarks(cmd.Context(), filters.Query(cfg.PageSize, cfg.Sort))
		if err != nil {
			if api.IsNoData(err) {
				fmt.Println("no bookmarks match")
				return nil
			}
			return err
		}

		for _, b := range page.Data {
			fmt.Printf("%d\t%s\t%s\t%s\n", b.ID, b.ReadState, b.Book.Title, strings.Join(b.Book.Authors, ", "))
		}
		fmt.Printf("page %d/%d, %d total\n", page.PageNumber+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

// addCmd bookmarks a catalog book by id.
var addCmd = &cobra.Command{
	Use:   "add <bookId>",
	Short: "Bookmark a catalog book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}
		client, _, err := app.NewClient(appOptions())
		if err != nil {
			return err
		}
		if err := client.CreateBookmark(cmd.Context(), bookID); err != nil {
			return err
		}
		fmt.Printf("bookmarked book %d\n", bookID)
		return nil
	},
}

// statsCmd prints the account-wide read-state counters.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print read-state statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := app.NewClient(appOptions())
		if err != nil {
			return err
		}
		stats, err := client.ReadStateStats(cmd.Context(), nil)
		if err != nil {
			return err
		}
		fmt.Printf("total\t%d\n", stats.TotalCount)
		for _, state := range api.ReadStates {
			fmt.Printf("%s\t%d\n", state, stats.CountFor(state))
		}
		fmt.Printf("avgRate\t%.1f\n", stats.AvgRate)
		return nil
	},
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		Verbose:    verbose,
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/shelfmark/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "preferences file path (default ~/.config/shelfmark/prefs.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	listCmd.Flags().StringVar(&listState, "state", "", "filter by read state (WISH, READING, READ)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().StringVar(&listKeyword, "keyword", "", "filter by title or author keyword")
	listCmd.Flags().IntVar(&listPage, "page", 0, "zero-based page number")

	rootCmd.AddCommand(listCmd, addCmd, statsCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shelfmark: %v\n", err)
		os.Exit(1)
	}
}
