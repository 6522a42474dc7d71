package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mchmarny/cadrisk/pkg/config"
	"github.com/mchmarny/cadrisk/pkg/logging"
	"github.com/mchmarny/cadrisk/pkg/risk"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "cadrisk"
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"

	debugFlagName   = "debug"
	formatFlagName  = "format"
	configFlagName  = "config"
	profileFlagName = "profile"

	profileEnvVar = "CADRISK_PROFILE"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	// errInvalidInput signals that violations were already printed.
	errInvalidInput = errors.New("invalid input")
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errInvalidInput) {
			os.Exit(2)
		}
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Dir    string
	Format string
	Config *config.Config
	Engine *risk.Engine
}

func getConfig(cmd *cli.Command) *appConfig {
	return cmd.Root().Metadata[appConfigKey].(*appConfig)
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  appName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "Estimate a 10-year coronary artery disease risk band from clinical measurements",
		Metadata:              map[string]any{},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  debugFlagName,
				Usage: "Prints verbose logs (optional, default: false)",
			},
			&cli.StringFlag{
				Name:  formatFlagName,
				Usage: "Output format [json, yaml]",
				Value: formatJSON,
			},
			&cli.StringFlag{
				Name:  configFlagName,
				Usage: fmt.Sprintf("Path to the config directory (optional, defaults to $HOME/.%s)", appName),
			},
			&cli.StringFlag{
				Name:    profileFlagName,
				Usage:   "Weight profile name, or path/URL of a profile document (optional, defaults to config)",
				Sources: cli.EnvVars(profileEnvVar),
			},
		},
		Commands: []*cli.Command{
			newAssessCmd(),
			newBatchCmd(),
			newProfileCmd(),
			newSampleCmd(),
			newServerCmd(),
		},
		Before: setup,
	}
}

func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	dir := cmd.String(configFlagName)
	if dir == "" {
		d, _, err := config.GetOrCreateHomeDir(appName)
		if err != nil {
			return ctx, fmt.Errorf("resolving config dir: %w", err)
		}
		dir = d
	}

	cfg, err := config.ReadOrCreate(dir)
	if err != nil {
		return ctx, fmt.Errorf("reading config: %w", err)
	}

	level := cfg.LogLevel
	if cmd.Bool(debugFlagName) {
		level = "debug"
	}
	logging.SetDefaultCLILogger(level)

	format := formatJSON
	switch f := strings.ToLower(cmd.String(formatFlagName)); f {
	case formatJSON:
	case formatYAML, "yml":
		format = formatYAML
	default:
		return ctx, fmt.Errorf("unsupported format: %s", f)
	}

	profile, err := resolveProfile(ctx, cfg, cmd.String(profileFlagName))
	if err != nil {
		return ctx, err
	}

	engine, err := risk.NewEngine(profile)
	if err != nil {
		return ctx, fmt.Errorf("initializing engine: %w", err)
	}
	slog.Debug("engine initialized", "profile", profile.Name(), "scaling", profile.Scaling().String())

	cmd.Root().Metadata[appConfigKey] = &appConfig{
		Dir:    dir,
		Format: format,
		Config: cfg,
		Engine: engine,
	}
	return ctx, nil
}

// resolveProfile picks the flag value over the config file value. Flag
// values ending in .yaml/.yml/.json or starting with http(s) load a
// profile document.
func resolveProfile(ctx context.Context, cfg *config.Config, name string) (*risk.WeightProfile, error) {
	if name == "" {
		name = cfg.Profile
	}
	return lookupProfile(ctx, cfg, name)
}

func encode(cmd *cli.Command, v any) error {
	return encodeTo(cmd.Root().Writer, getConfig(cmd).Format, v)
}

func encodeTo(w io.Writer, format string, v any) error {
	if w == nil {
		w = os.Stdout
	}
	if format == formatYAML {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
