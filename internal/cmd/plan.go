package cmd

import (
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"github.com/hexagen/hexagen/internal/generator"
)

// Plan prints the resolved artifact plan for every configured project
// without rendering or writing anything. Useful for inspecting what a
// generate run would produce.
type Plan struct {
	Config  string `help:"Projects configuration file" default:"config/params.json" env:"HEXAGEN_PROJECTS"`
	SpecDir string `help:"Directory holding the smithy model and its build output" default:"."`
}

func (p *Plan) Run(logger *slog.Logger) error {
	slog.SetDefault(logger)

	gen, err := generator.New(generator.Options{
		ConfigPath:  p.Config,
		SpecBaseDir: p.SpecDir,
		SkipBuild:   true,
	})
	if err != nil {
		return err
	}

	plans, err := gen.Plans()
	for _, plan := range plans {
		fmt.Printf("project %s: %d artifacts\n", plan.Project.Name, len(plan.Artifacts))
		fmt.Print(spew.Sdump(plan))
	}
	return err
}
