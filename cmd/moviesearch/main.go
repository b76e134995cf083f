package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"moviesearch/movie"
	"moviesearch/omdb"
	"moviesearch/pkg/config"
	"os"
	"os/signal"
	"text/tabwriter"
)

func main() {
	var (
		query string
		pages int
		mode  string
	)

	flag.StringVar(&query, "q", "", "Movie title to search for")
	flag.IntVar(&pages, "pages", 1, "Number of pages to fetch")
	flag.StringVar(&mode, "mode", string(movie.ModePaged), "Pagination mode: paged or loadmore")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if query == "" {
		slog.Error("a title is required, use -q")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := omdb.NewClient(omdb.Options{
		BaseURL:   cfg.OMDb.BaseURL,
		APIKey:    cfg.OMDb.APIKey,
		Timeout:   cfg.OMDbTimeout(),
		RateLimit: cfg.OMDb.RateLimit,
	})
	ctrl := movie.NewController(movie.NewUsecase(client), movie.ParseMode(mode))

	if err := run(ctx, ctrl, query, pages, os.Stdout); err != nil {
		slog.Error("search failed", "query", query, "error", err)
		os.Exit(1)
	}
}

// run searches query and walks forward through at most pages pages,
// printing the state after each one.
func run(ctx context.Context, ctrl *movie.Controller, query string, pages int, out io.Writer) error {
	state := ctrl.Search(ctx, query, 1)
	for i := 1; ; i++ {
		printState(out, state)
		if state.Status == movie.StatusFailed {
			return fmt.Errorf("%s", state.Message)
		}
		if i >= pages || !state.HasNext() {
			return nil
		}
		state = ctrl.Next(ctx)
	}
}

func printState(out io.Writer, s movie.State) {
	if s.Message != "" {
		fmt.Fprintln(out, s.Message)
		return
	}

	fmt.Fprintf(out, "%q page %d of %d (%d results)\n", s.Query, s.CurrentPage, s.TotalPages(), s.TotalResults)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, m := range s.Movies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Year, m.Title, m.Poster())
	}
	_ = w.Flush()
}
