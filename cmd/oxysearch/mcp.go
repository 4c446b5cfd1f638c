package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepnoodle-ai/oxysearch/config"
	"github.com/deepnoodle-ai/oxysearch/mcp"
	"github.com/deepnoodle-ai/oxysearch/slogger"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerMCPCommand(app *cli.App) {
	app.Command("mcp").
		Description("Serve the search tools to MCP clients over stdio").
		Flags(
			cli.Bool("watch", "w").
				Help("Reload the tools when the config files change"),
			cli.Int("debounce-ms", "").
				Default(250).
				Help("Wait this long after a config change before reloading"),
		).
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)
			cfg, logger, err := loadConfig()
			if err != nil {
				return cli.Errorf("%v", err)
			}
			client, err := newClient(cfg, logger)
			if err != nil {
				return cli.Errorf("%v", err)
			}

			server := mcp.NewServer(mcp.ServerOptions{
				Name:    "oxysearch",
				Version: version,
				Logger:  logger,
			})
			if err := server.SetTools(buildTools(client)...); err != nil {
				return cli.Errorf("%v", err)
			}

			goCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if ctx.Bool("watch") {
				if configPath == "" {
					return cli.Errorf("--watch requires --config")
				}
				watcher, err := NewConfigWatcher(ConfigWatcherOptions{
					Path:     configPath,
					Current:  cfg,
					Debounce: time.Duration(ctx.Int("debounce-ms")) * time.Millisecond,
					Logger:   logger,
					OnChange: func(next *config.Config) error {
						return reloadTools(server, next, logger)
					},
				})
				if err != nil {
					return cli.Errorf("%v", err)
				}
				go func() {
					if err := watcher.Start(goCtx); err != nil {
						logger.Error("config watcher stopped", "error", err)
					}
				}()
			}

			return server.ServeStdio(goCtx)
		})
}

// reloadTools swaps the served tools for ones built from next. The logger
// keeps the level chosen at startup.
func reloadTools(server *mcp.Server, next *config.Config, logger slogger.Logger) error {
	client, err := newClient(next, logger)
	if err != nil {
		return err
	}
	return server.SetTools(buildTools(client)...)
}
