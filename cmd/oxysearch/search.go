package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/deepnoodle-ai/oxysearch/oxylabs"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerSearchCommand(app *cli.App) {
	app.Command("search").
		Description("Search and print a readable summary of the results").
		Args("query").
		Flags(
			cli.String("geo-location", "g").
				Help("Location to localize results for, e.g. 'Paris,France'"),
			cli.Bool("async", "").
				Help("Run the search through the non-blocking API"),
		).
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)
			client, query, err := prepareSearch(ctx)
			if err != nil {
				return err
			}
			goCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			var summary string
			if ctx.Bool("async") {
				summary, err = client.RunAsync(goCtx, query).Get(goCtx)
			} else {
				summary, err = client.Run(goCtx, query)
			}
			if err != nil {
				return cli.Errorf("search failed: %v", err)
			}
			fmt.Println(headerStyle.Sprintf("Results for %q", query.Query))
			fmt.Println(summary)
			return nil
		})
}

func registerResultsCommand(app *cli.App) {
	app.Command("results").
		Description("Search and print the parsed result pages as JSON").
		Args("query").
		Flags(
			cli.String("geo-location", "g").
				Help("Location to localize results for, e.g. 'Paris,France'"),
			cli.Bool("async", "").
				Help("Run the search through the non-blocking API"),
			cli.Bool("pretty", "p").
				Help("Indent the JSON output"),
		).
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)
			client, query, err := prepareSearch(ctx)
			if err != nil {
				return err
			}
			goCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			var results oxylabs.Results
			if ctx.Bool("async") {
				results, err = client.ResultsAsync(goCtx, query).Get(goCtx)
			} else {
				results, err = client.Results(goCtx, query)
			}
			if err != nil {
				return cli.Errorf("search failed: %v", err)
			}
			output, err := results.JSON()
			if err != nil {
				return err
			}
			if ctx.Bool("pretty") {
				var buf bytes.Buffer
				if err := json.Indent(&buf, []byte(output), "", "  "); err != nil {
					return err
				}
				output = buf.String()
			}
			fmt.Println(output)
			return nil
		})
}

func prepareSearch(ctx *cli.Context) (*oxylabs.Client, oxylabs.SearchQuery, error) {
	query := oxylabs.SearchQuery{
		Query:       ctx.Arg(0),
		GeoLocation: ctx.String("geo-location"),
	}
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, query, cli.Errorf("%v", err)
	}
	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, query, cli.Errorf("%v", err)
	}
	return client, query, nil
}
