package main

import (
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/oxysearch"
	"github.com/deepnoodle-ai/oxysearch/oxylabs"
	"github.com/deepnoodle-ai/wonton/cli"
)

// toolInfo is the JSON form of a tool's metadata.
type toolInfo struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Schema      *oxysearch.Schema          `json:"input_schema"`
	Annotations *oxysearch.ToolAnnotations `json:"annotations,omitempty"`
}

func registerToolsCommand(app *cli.App) {
	app.Command("tools").
		Description("List the available tools").
		Flags(
			cli.Bool("json", "").Help("Print tool names, descriptions, schemas, and annotations as JSON"),
		).
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)
			cfg, logger, err := loadConfig()
			if err != nil {
				return cli.Errorf("%v", err)
			}
			// Listing does not need credentials.
			client, err := newClient(cfg, logger)
			if err != nil && !oxylabs.IsConfigurationError(err) {
				return cli.Errorf("%v", err)
			}
			tools := buildTools(client)

			if ctx.Bool("json") {
				infos := make([]toolInfo, 0, len(tools))
				for _, tool := range tools {
					infos = append(infos, toolInfo{
						Name:        tool.Name(),
						Description: tool.Description(),
						Schema:      tool.Schema(),
						Annotations: tool.Annotations(),
					})
				}
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			rows := [][]string{{"NAME", "DESCRIPTION"}}
			for _, tool := range tools {
				rows = append(rows, []string{tool.Name(), tool.Description()})
			}
			fmt.Print(table(rows, 80))
			if client == nil {
				fmt.Println(mutedStyle.Sprint("\nOxylabs credentials are not configured; set OXYLABS_USERNAME and OXYLABS_PASSWORD to call these tools."))
			}
			return nil
		})
}
