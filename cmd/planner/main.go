// Package main is the planner command-line client. It drives the same flows
// as the mobile app: pick dates, create and edit a trip, invite guests,
// confirm attendance, and manage activities and links.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkordes/trip-planner/internal/client"
	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/planner"
	"github.com/pkordes/trip-planner/internal/querycache"
	"github.com/pkordes/trip-planner/internal/tripstore"
)

const usage = `usage: planner [-config path] [-v] <command> [flags]

commands:
  pick [-min day] [-max day] DAY...   click days on the calendar, show the highlights
  trip new|show|update|confirm|forget
  confirm                             confirm your attendance to a trip
  invite                              invite a guest
  participants                        list the trip's participants
  activity add|list
  link add|list

Run "planner <command> -h" for the flags of a command.
`

var (
	errUsage = errors.New("invalid usage")
	// errHelp means help was printed; nothing else is reported.
	errHelp = errors.New("help requested")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", config.DefaultClientPath(), "client config file")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stdout, usage)
			return 0
		}
		fmt.Fprintf(stderr, "planner: %v\n", err)
		return 1
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	c := &cli{out: stdout, log: logger, configPath: *configPath, now: time.Now}
	defer c.close()

	err := c.dispatch(ctx, fs.Args())
	switch {
	case err == nil, errors.Is(err, errHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "planner: %v\n\n%s", err, usage)
	default:
		fmt.Fprintf(stderr, "planner: %v\n", err)
	}
	return 1
}

// cli holds what the commands share. The planner is only built by commands
// that talk to the API, so "pick" works without a config or database.
type cli struct {
	out        io.Writer
	log        *slog.Logger
	configPath string
	now        func() time.Time

	store   *tripstore.Store
	planner *planner.Planner
}

func (c *cli) open() (*planner.Planner, error) {
	if c.planner != nil {
		return c.planner, nil
	}
	cfg, err := config.LoadClient(c.configPath)
	if err != nil {
		return nil, err
	}
	store, err := tripstore.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	c.store = store
	c.planner = planner.New(client.New(cfg.APIURL, cfg.Timeout), querycache.New(cfg.StaleTime), store, c.log)
	c.log.Debug("client ready", "config", c.configPath, "api_url", cfg.APIURL, "db", cfg.DBPath)
	return c.planner, nil
}

func (c *cli) close() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.log.Error("failed to close device storage", "error", err)
	}
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "pick":
		return c.pick(rest)
	case "trip":
		return c.subcommand(ctx, "trip", rest, map[string]command{
			"new":     c.tripNew,
			"show":    c.tripShow,
			"update":  c.tripUpdate,
			"confirm": c.tripConfirm,
			"forget":  c.tripForget,
		})
	case "confirm":
		return c.confirm(ctx, rest)
	case "invite":
		return c.invite(ctx, rest)
	case "participants":
		return c.participants(ctx, rest)
	case "activity":
		return c.subcommand(ctx, "activity", rest, map[string]command{
			"add":  c.activityAdd,
			"list": c.activityList,
		})
	case "link":
		return c.subcommand(ctx, "link", rest, map[string]command{
			"add":  c.linkAdd,
			"list": c.linkList,
		})
	case "help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

type command func(ctx context.Context, args []string) error

func (c *cli) subcommand(ctx context.Context, group string, args []string, cmds map[string]command) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s needs a subcommand", errUsage, group)
	}
	fn, ok := cmds[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command \"%s %s\"", errUsage, group, args[0])
	}
	return fn(ctx, args[1:])
}

// parse parses a command's flags. Parse errors are returned rather than
// printed so they are reported once, by run.
func (c *cli) parse(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	err := fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(c.out, "usage of %s:\n", fs.Name())
		fs.SetOutput(c.out)
		fs.PrintDefaults()
		return errHelp
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}
