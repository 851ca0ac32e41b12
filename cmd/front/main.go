package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"tweetql/cmd/front/internal/gql"
	"tweetql/cmd/front/internal/render"

	"github.com/spf13/cobra"
)

type options struct {
	endpoint string
	timeout  time.Duration
	columns  int
	width    int
}

// коды выхода: 1 - сеть/транспорт/аргументы, 2 - сервер вернул errors
const (
	exitFailure      = 1
	exitGraphQLError = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case gql.IsGraphQLError(err):
		return exitGraphQLError
	default:
		return exitFailure
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "front",
		Short:        "Terminal client for the tweetql GraphQL API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "http://localhost:4000/graphql", "GraphQL endpoint")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")
	root.PersistentFlags().IntVar(&opts.columns, "columns", render.DefaultColumns, "cards per row")
	root.PersistentFlags().IntVar(&opts.width, "width", render.DefaultWidth, "card width")

	root.AddCommand(
		viewCmd(opts, "movies", "Hall of fame: all movies", cobra.NoArgs, moviesView),
		viewCmd(opts, "movie <id>", "Details of one movie", cobra.ExactArgs(1), movieView),
		viewCmd(opts, "tweets", "All tweets with their authors", cobra.NoArgs, tweetsView),
		viewCmd(opts, "books", "Current best-seller list", cobra.NoArgs, booksView),
	)
	return root
}

func viewCmd(opts *options, use, short string, args cobra.PositionalArgs, v view) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			fmt.Fprintln(cmd.ErrOrStderr(), "Loading...")
			cards, err := v(ctx, gql.NewClient(opts.endpoint, opts.timeout), args)
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing here yet")
				return nil
			}
			return render.Grid{Columns: opts.columns, Width: opts.width}.Render(cmd.OutOrStdout(), cards)
		},
	}
}
