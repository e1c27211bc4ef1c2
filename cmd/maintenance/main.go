// Command maintenance runs one-off engagement jobs against the database
// configured in the environment.
//
//	maintenance --sweep
//	maintenance --generate GTA-5-Mobile --reviews 8 --comments 6 [--name "GTA V"]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/modxnet/modxnet-backend/internal/apps/catalog"
	"github.com/modxnet/modxnet-backend/internal/apps/engagement"
	"github.com/modxnet/modxnet-backend/internal/apps/lockerconfig"
	"github.com/modxnet/modxnet-backend/internal/config"
	"github.com/modxnet/modxnet-backend/internal/database"
	"github.com/modxnet/modxnet-backend/internal/logging"
	"github.com/modxnet/modxnet-backend/internal/services"
)

var errNoAction = errors.New("one of --sweep or --generate is required")

type options struct {
	sweep    bool
	generate string
	name     string
	reviews  int
	comments int
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("maintenance", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.sweep, "sweep", false, "delete expired negative reviews and comments")
	fs.StringVar(&opts.generate, "generate", "", "game slug to generate synthetic engagement for")
	fs.StringVar(&opts.name, "name", "", "game title used in generated text (default: catalog title)")
	fs.IntVar(&opts.reviews, "reviews", 8, "number of reviews to generate")
	fs.IntVar(&opts.comments, "comments", 6, "number of comments to generate")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch {
	case opts.sweep && opts.generate != "":
		return opts, errors.New("--sweep and --generate are mutually exclusive")
	case !opts.sweep && opts.generate == "":
		return opts, errNoAction
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(logging.NewJSONHandler(stderr, cfg.LogLevel)))

	db, err := database.Open(cfg.DSN())
	if err != nil {
		return err
	}
	defer database.Close(db)

	lockers := lockerconfig.NewConfigService(db, nil)
	games := catalog.NewGameService(db, lockers)
	svc := engagement.NewService(engagement.NewGormStore(db),
		engagement.WithNegativeTTL(cfg.NegativeTTL),
		engagement.WithTextSource(services.NewEngagementWriter(cfg.DeepSeekAPIURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.AITimeout)),
		engagement.WithGameDirectory(games),
	)

	var out interface{}
	if opts.sweep {
		res, err := svc.SweepExpired(ctx)
		if err != nil {
			return err
		}
		out = res
	} else {
		res, err := svc.GenerateSynthetic(ctx, engagement.GenerateRequest{
			GameSlug:     opts.generate,
			GameName:     opts.name,
			ReviewCount:  opts.reviews,
			CommentCount: opts.comments,
		})
		if err != nil {
			return err
		}
		out = res
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
