package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/oxysearch"
	"github.com/deepnoodle-ai/oxysearch/config"
	"github.com/deepnoodle-ai/oxysearch/oxylabs"
	"github.com/deepnoodle-ai/oxysearch/slogger"
	"github.com/deepnoodle-ai/oxysearch/toolkit"
	"github.com/deepnoodle-ai/oxysearch/web"
	"github.com/deepnoodle-ai/wonton/cli"
)

const version = "0.1.0"

var (
	configPath string
	logLevel   string
	app        *cli.App
)

func Execute() {
	app = cli.New("oxysearch").
		Description("Search Google through the Oxylabs Web Scraper API").
		Version(version).
		GlobalFlags(
			cli.String("config", "c").
				Env("OXYSEARCH_CONFIG").
				Help("Config file, directory, or glob pattern (YAML or JSON)"),
			cli.String("log-level", "").
				Help("Log level to use (none, debug, info, warn, error)"),
		)

	registerSearchCommand(app)
	registerResultsCommand(app)
	registerToolsCommand(app)
	registerConfigCommand(app)
	registerMCPCommand(app)

	if err := app.Execute(); err != nil {
		if cli.IsHelpRequested(err) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Sprint("Error:"), err)
		os.Exit(cli.GetExitCode(err))
	}
}

// parseGlobalFlags extracts global flag values from context
func parseGlobalFlags(ctx *cli.Context) {
	configPath = ctx.String("config")
	logLevel = ctx.String("log-level")
}

// loadConfig loads the configuration named by --config and builds the
// logger. The --log-level flag wins over the config file.
func loadConfig() (*config.Config, slogger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	if level == "" {
		level = "warn"
	}
	if !slogger.IsValidLevel(level) {
		return nil, nil, fmt.Errorf("invalid log level %q", level)
	}
	return cfg, slogger.FromString(level), nil
}

// newClient builds an Oxylabs client from the loaded configuration.
func newClient(cfg *config.Config, logger slogger.Logger) (*oxylabs.Client, error) {
	clientConfig, err := cfg.Oxylabs.ClientConfig()
	if err != nil {
		return nil, err
	}
	return oxylabs.New(oxylabs.WithConfig(clientConfig), oxylabs.WithLogger(logger))
}

// buildTools returns every tool backed by client. A nil client yields tools
// that describe themselves but cannot be called.
func buildTools(client *oxylabs.Client) []oxysearch.Tool {
	var options toolkit.OxylabsSearchToolOptions
	var searcher web.Searcher
	if client != nil {
		options.Client = client
		searcher = client
	}
	var tools []oxysearch.Tool
	for _, tool := range toolkit.NewOxylabsTools(options) {
		tools = append(tools, tool)
	}
	return append(tools, toolkit.NewWebSearchTool(toolkit.WebSearchToolOptions{Searcher: searcher}))
}
