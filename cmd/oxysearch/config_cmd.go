package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/oxysearch/config"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerConfigCommand(app *cli.App) {
	app.Command("config").
		Description("Print the effective configuration with secrets redacted").
		Run(func(ctx *cli.Context) error {
			parseGlobalFlags(ctx)
			cfg, _, err := loadConfig()
			if err != nil {
				return cli.Errorf("%v", err)
			}
			if configPath != "" {
				files, err := config.ResolvePaths(configPath)
				if err != nil {
					return cli.Errorf("%v", err)
				}
				for _, file := range files {
					fmt.Println(mutedStyle.Sprintf("# %s", file))
				}
			}
			return cfg.Redacted().Write(os.Stdout)
		})
}
