package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/rollover/internal"
	pkgconfig "github.com/starford/rollover/pkg/config"
)

var version = "dev"

func loadOptions(cmd *cli.Command) ([]internal.Option, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, opts...)
}

func runPreview(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	return internal.Preview(ctx, os.Stdout, cmd.String("note"), opts...)
}

func runHeadings(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	return internal.Headings(ctx, os.Stdout, opts...)
}

func runInit(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := pkgconfig.Save(path, internal.NewDefaultConfig(), cmd.Bool("force")); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "rollover",
		Usage:   "Carry unfinished todos from the previous daily note into a newly created one",
		Version: version,
		Action:  run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve the settings and preview tools over MCP stdio",
				Action: runMCP,
			},
			{
				Name:   "preview",
				Usage:  "Print the content a rollover would produce for a note",
				Action: runPreview,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "note",
						Aliases:  []string{"n"},
						Usage:    "Vault-relative path of the target daily note",
						Required: true,
					},
				},
			},
			{
				Name:   "headings",
				Usage:  "List template heading candidates (current one marked with *)",
				Action: runHeadings,
			},
			{
				Name:   "init",
				Usage:  "Write a default config file",
				Action: runInit,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
