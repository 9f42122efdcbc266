// Package cli implements the regexify command line.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/regexify/regexify/internal/config"
	"github.com/regexify/regexify/internal/core"
	"github.com/regexify/regexify/internal/i18n"
	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/ai"
	"github.com/regexify/regexify/internal/plugins/ai/vendors"
	"github.com/regexify/regexify/internal/resolver"
	"github.com/regexify/regexify/internal/util"
)

// Flags shared by every command.
type Flags struct {
	ConfigPath string
	LogLevel   int
	Vendor     string
	Model      string
	Language   string
}

// Cli runs the command line with the process arguments.
func Cli(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd(version).ExecuteContext(ctx)
}

func NewRootCmd(version string) *cobra.Command {
	flags := &Flags{LogLevel: -1}

	cmd := &cobra.Command{
		Use:          "regexify",
		Short:        "Edit tabular data with plain-language instructions",
		Version:      version,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.ConfigPath, "config", "c", "", "config file (default ~/.config/regexify/config.yaml)")
	pf.IntVar(&flags.LogLevel, "log-level", -1, "debug level 0-4 (off, basic, detailed, trace, wire)")
	pf.StringVar(&flags.Vendor, "vendor", "", "text generation vendor: "+joinNames())
	pf.StringVarP(&flags.Model, "model", "m", "", "model name")
	pf.StringVar(&flags.Language, "language", "", "message language (e.g. en, es)")

	cmd.AddCommand(
		newServeCmd(flags),
		newApplyCmd(flags),
		newResolveCmd(flags),
		newPatternsCmd(),
	)
	return cmd
}

// setup loads the configuration, applies flag overrides and initializes the
// logging and message language.
func setup(flags *Flags) (*config.Config, error) {
	configPath := flags.ConfigPath
	if configPath != "" {
		var err error
		if configPath, err = util.ExpandPath(configPath); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Server.DataDir, err = util.ExpandPath(cfg.Server.DataDir); err != nil {
		return nil, err
	}
	if flags.LogLevel >= 0 {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.Vendor != "" {
		cfg.Model.Vendor = flags.Vendor
	}
	if flags.Model != "" {
		cfg.Model.Name = flags.Model
	}
	if flags.Language != "" {
		cfg.Language = flags.Language
	}

	debuglog.SetLevel(debuglog.LevelFromInt(cfg.LogLevel))
	if _, err := i18n.Init(cfg.Language); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newProcessor builds the resolution pipeline. A missing API key is not
// fatal: instructions are then resolved by the fallback rules alone.
func newProcessor(ctx context.Context, cfg *config.Config) (*core.Processor, error) {
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return core.NewProcessor(resolver.New(gen, vendors.Timeout(cfg.Model)), cfg.Server.PreviewRows), nil
}

func newGenerator(ctx context.Context, cfg *config.Config) (ai.Generator, error) {
	gen, err := vendors.New(ctx, cfg.Model)
	if errors.Is(err, vendors.ErrMissingAPIKey) {
		debuglog.Log("warning: %v; using rule-based resolution only\n", err)
		return nil, nil
	}
	return gen, err
}
