package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hexagen/hexagen/internal/generator"
)

// Generate runs a full generation: smithy build, plan, render, write.
type Generate struct {
	TemplatesDir string `arg:"" optional:"" name:"templates-dir" help:"Directory of template overrides; missing templates fall back to the built-in set" default:"templates/java"`
	Config       string `help:"Projects configuration file" default:"config/params.json" env:"HEXAGEN_PROJECTS"`
	Output       string `help:"Output directory, cleared on every run" default:"projects"`
	SpecDir      string `help:"Directory holding the smithy model and its build output" default:"."`
	SkipBuild    bool   `help:"Skip smithy clean/build and generate from the existing output"`
}

// Run is called by kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := generator.New(generator.Options{
		ConfigPath:   g.Config,
		TemplatesDir: g.TemplatesDir,
		OutputDir:    g.Output,
		SpecBaseDir:  g.SpecDir,
		SkipBuild:    g.SkipBuild,
	})
	if err != nil {
		return err
	}

	logger.Info("generating projects",
		"config", g.Config,
		"templates", g.TemplatesDir,
		"output", g.Output,
		"projects", len(gen.Projects()))
	return gen.Run(ctx)
}
