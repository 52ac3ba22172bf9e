package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	config "github.com/NordCoder/upwatch/internal/config/console"
	"github.com/NordCoder/upwatch/internal/gateway"
	"github.com/NordCoder/upwatch/internal/obs"
	"github.com/NordCoder/upwatch/internal/session"
	"github.com/NordCoder/upwatch/internal/view"
)

const usage = `usage: upwatch-console [flags] <command>

commands:
  login       sign in with --username and --password
  register    create an account (--username, --password, --email)
  logout      forget the stored session
  whoami      refresh and print the current user
  dashboard   stats and endpoints (--status, --endpoint)
  detail      one endpoint with its checks (--endpoint, --since, --check-now)
  analytics   uptime and latency series (--endpoint, --range, --group-by)
  create      add an endpoint (--name, --url, --interval)
  update      change an endpoint (--endpoint and any of --name, --url, --interval)
  delete      remove an endpoint (--endpoint)

flags:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := pflag.NewFlagSet("upwatch-console", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	opts := bindOptions(fs)
	configPath := fs.StringP("config", "c", os.Getenv("UPWATCH_CONFIG"), "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	opts.changed = fs.Changed

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return exitFailed
	}

	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return exitFailed
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("starting upwatch-console", zap.String("env", cfg.App.Env), zap.String("ver", cfg.App.Version))

	otelShutdown, err := initOTel(rootCtx, cfg, logger)
	if err != nil {
		logger.Error("otel init", zap.Error(err))
		return exitFailed
	}
	defer func() {
		shCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = otelShutdown(shCtx)
	}()

	storage, closeStorage, err := initSessionStorage(cfg, logger)
	if err != nil {
		logger.Error("session storage", zap.Error(err))
		return exitFailed
	}
	defer func() { _ = closeStorage() }()

	if ms := obs.BootstrapMetricsServer(cfg.Metrics.Addr, storage.Ping, logger); ms != nil {
		defer func() {
			shCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = ms.Shutdown(shCtx)
		}()
	}

	store := session.NewStore(storage, logger)
	store.Restore(rootCtx)

	nav := &consoleNav{log: logger}
	client := gateway.New(gateway.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
	}, nil, logger)

	a := &app{
		deps: view.Deps{
			Backend: client,
			Guard:   view.NewAuthGuard(store, nav, logger),
			Log:     logger,
		},
		store: store,
		nav:   nav,
		log:   logger,
		out:   os.Stdout,
	}
	return a.dispatch(rootCtx, fs.Arg(0), opts)
}
