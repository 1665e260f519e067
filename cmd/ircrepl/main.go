package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gissleh/ircstate"
	"github.com/gissleh/ircstate/internal/logger"
	"github.com/gissleh/ircstate/metrics"
	"github.com/gissleh/ircstate/store"
)

var flagConfig = flag.String("config", "", "Config file (.yaml, .toml or .json)")
var flagEnv = flag.String("env", ".env", "Env file with IRCREPL_* overrides, skipped if missing")
var flagName = flag.String("name", "", "The session name")
var flagFormat = flag.String("format", "", "Output format, json or yaml")
var flagDatabase = flag.String("db", "", "SQLite database to save snapshots to")
var flagMetricsAddr = flag.String("metrics-addr", "", "Address to serve Prometheus metrics on")
var flagLogLevel = flag.String("log-level", "", "Log level")
var flagStrict = flag.Bool("strict", false, "Reject casemapping changes after names are stored")
var flagEmits = flag.Bool("emits", false, "Print the emit of every line")

func main() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [flags] [log files...]\n\n", os.Args[0])
		_, _ = fmt.Fprintln(os.Stderr, "Replays raw server lines from the files, or reads them from stdin.")
		_, _ = fmt.Fprintln(os.Stderr, "On stdin, /state, /channel <name>, /user <nick>, /save, /disconnect and /quit are commands.")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := resolveConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %s\n", err)
		os.Exit(1)
	}

	log, err := logger.New(os.Stderr, cfg.LogLevel, true)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Invalid log level: %s\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("Exiting")
		os.Exit(1)
	}
}

// resolveConfig layers the config file, flags and environment.
func resolveConfig() (config, error) {
	cfg := defaultConfig()

	if *flagEnv != "" {
		if err := godotenv.Load(*flagEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	if *flagConfig != "" {
		if err := loadConfig(*flagConfig, &cfg); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			cfg.Session.Name = *flagName
		case "format":
			cfg.Format = *flagFormat
		case "db":
			cfg.Database = *flagDatabase
		case "metrics-addr":
			cfg.MetricsAddr = *flagMetricsAddr
		case "log-level":
			cfg.LogLevel = *flagLogLevel
		case "strict":
			cfg.Session.StrictCasemapping = *flagStrict
		}
	})

	applyEnvOverrides(&cfg)

	if cfg.Format != "json" && cfg.Format != "yaml" {
		return cfg, fmt.Errorf("unknown format %q", cfg.Format)
	}

	return cfg, nil
}

type repl struct {
	tracker *ircstate.Tracker
	store   *store.Store
	format  string
	out     io.Writer
	log     zerolog.Logger
}

func run(ctx context.Context, cfg config, log zerolog.Logger) error {
	sessionLog := log.With().Str("session", cfg.Session.Name).Logger()
	cfg.Session.Logger = &sessionLog

	tracker := ircstate.NewTracker(ctx, cfg.Session)
	defer tracker.Destroy()

	if log.GetLevel() <= zerolog.DebugLevel {
		tracker.EnableDebug(log)
	}

	r := &repl{tracker: tracker, format: cfg.Format, out: os.Stdout, log: log}

	if *flagEmits {
		tracker.AddHandler(func(emit *ircstate.Emit, server *ircstate.Server) {
			r.print(emit)
		})
	}

	if cfg.Database != "" {
		s, err := store.Open(cfg.Database, log)
		if err != nil {
			return err
		}
		defer s.Close()

		r.store = s
	}

	if cfg.MetricsAddr != "" {
		collector := metrics.New(cfg.Session.Name)
		tracker.SetObserver(collector)

		shutdown := serveMetrics(cfg.MetricsAddr, collector, log)
		defer shutdown()
	}

	if flag.NArg() == 0 {
		return r.interactive(ctx, os.Stdin)
	}

	for _, path := range flag.Args() {
		if err := r.replayFile(ctx, path); err != nil {
			return err
		}
	}

	r.print(tracker.Snapshot())
	if r.store != nil {
		if err := r.save(ctx); err != nil {
			return err
		}
	}

	// Keep the final numbers up for scraping.
	if cfg.MetricsAddr != "" {
		log.Info().Msg("Replay done, serving metrics until interrupted")
		<-ctx.Done()
	}

	return nil
}

func (r *repl) replayFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	started := time.Now()
	applied, failed, err := r.tracker.Replay(ctx, file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	r.log.Info().
		Str("file", path).
		Int("applied", applied).
		Int("failed", failed).
		Dur("took", time.Since(started)).
		Msg("Replayed")

	return nil
}

// interactive reads lines until EOF or /quit. Lines starting with a slash
// are commands, the rest are raw lines from the server.
func (r *repl) interactive(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			if err := r.tracker.PushLine(ctx, line); err != nil {
				if errors.Is(err, ircstate.ErrDestroyed) || ctx.Err() != nil {
					return nil
				}

				r.log.Warn().Err(err).Str("line", line).Msg("Failed to apply line")
			}

			continue
		}

		command, arg, _ := strings.Cut(line[1:], " ")
		switch strings.ToLower(command) {
		case "state":
			r.print(r.tracker.Snapshot())
		case "channel":
			r.tracker.Read(func(server *ircstate.Server) {
				if channel := server.Channel(arg); channel != nil {
					r.print(channel.Members())
				} else {
					r.log.Warn().Str("channel", arg).Msg("Not in channel")
				}
			})
		case "user":
			r.tracker.Read(func(server *ircstate.Server) {
				if user := server.User(arg); user != nil {
					r.print(user.Copy())
				} else {
					r.log.Warn().Str("nick", arg).Msg("User not known")
				}
			})
		case "save":
			if r.store == nil {
				r.log.Warn().Msg("No database configured")
			} else if err := r.save(ctx); err != nil {
				r.log.Error().Err(err).Msg("Failed to save snapshot")
			}
		case "disconnect":
			if err := r.tracker.Disconnected(ctx); err != nil {
				return err
			}
		case "quit":
			return nil
		default:
			r.log.Warn().Str("command", command).Msg("Unknown command")
		}
	}

	return scanner.Err()
}

func (r *repl) save(ctx context.Context) error {
	id, err := r.store.Save(ctx, r.tracker.Snapshot())
	if err != nil {
		return err
	}

	r.log.Info().Str("snapshot", id).Msg("Saved snapshot")
	return nil
}

func (r *repl) print(v interface{}) {
	var data []byte
	var err error
	if r.format == "yaml" {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "    ")
	}
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encode output")
		return
	}

	_, _ = fmt.Fprintln(r.out, strings.TrimRight(string(data), "\n"))
}

// serveMetrics starts the metrics server and returns a function that stops it.
func serveMetrics(addr string, collector *metrics.Collector, log zerolog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	log.Info().Str("addr", addr).Msg("Serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = server.Shutdown(ctx)
	}
}
