// Package generator drives a full run: build the specs, load each
// configured project, plan its artifacts, render them and write the
// project tree. One project failing does not stop the others.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/hexagen/hexagen/internal/config"
	"github.com/hexagen/hexagen/internal/planner"
	"github.com/hexagen/hexagen/internal/render"
	"github.com/hexagen/hexagen/internal/spec"
	"github.com/hexagen/hexagen/internal/writer"
)

// Options configures a run.
type Options struct {
	// ConfigPath locates the projects configuration file. Empty uses
	// config.DefaultPath.
	ConfigPath string

	// TemplatesDir optionally overrides the embedded templates. Files
	// present in the directory win over the defaults per template.
	TemplatesDir string

	// OutputDir is the directory receiving one subdirectory per
	// project. Empty means "projects". It is cleared on every run.
	OutputDir string

	// SpecBaseDir is the directory holding the smithy model and its
	// build output. Empty means the working directory.
	SpecBaseDir string

	// SkipBuild skips the smithy clean/build step and generates from
	// whatever build output is already present.
	SkipBuild bool
}

// Generator holds the loaded configuration and the rendering state for
// one run.
type Generator struct {
	opts     Options
	projects []config.Project
	loader   spec.Loader
	renderer *render.Renderer
}

// New loads and validates the projects configuration. A configuration
// error is fatal: nothing is generated for any project.
func New(opts Options) (*Generator, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "projects"
	}

	projects, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	return &Generator{
		opts:     opts,
		projects: projects,
		loader:   spec.Loader{BaseDir: opts.SpecBaseDir},
		renderer: render.NewRenderer(opts.TemplatesDir),
	}, nil
}

// Projects returns the loaded project configurations in file order.
func (g *Generator) Projects() []config.Project { return g.projects }

// Run executes a full generation: smithy build (unless skipped), output
// reset, then one project tree per configured project. Failed projects
// are logged and collected; the rest still generate.
func (g *Generator) Run(ctx context.Context) error {
	if g.opts.SkipBuild {
		slog.Info("skipping smithy build, using existing spec output")
	} else if err := buildSpecs(ctx, g.opts.SpecBaseDir); err != nil {
		return err
	}

	if err := writer.Reset(g.opts.OutputDir); err != nil {
		return err
	}

	var errs *multierror.Error
	for _, project := range g.projects {
		if err := ctx.Err(); err != nil {
			return multierror.Append(errs, err).ErrorOrNil()
		}
		if err := g.generateProject(project); err != nil {
			slog.Error("project generation failed",
				slog.String("project", project.Name()),
				slog.Any("error", err))
			errs = multierror.Append(errs, fmt.Errorf("project %s: %w", project.Name(), err))
			continue
		}
	}
	return errs.ErrorOrNil()
}

// Plans builds the artifact plan for every configured project without
// writing anything. Projects whose specs cannot be loaded are skipped
// and reported together.
func (g *Generator) Plans() ([]*planner.Plan, error) {
	var errs *multierror.Error
	plans := make([]*planner.Plan, 0, len(g.projects))
	for _, project := range g.projects {
		plan, err := g.plan(project)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("project %s: %w", project.Name(), err))
			continue
		}
		plans = append(plans, plan)
	}
	return plans, errs.ErrorOrNil()
}

func (g *Generator) plan(project config.Project) (*planner.Plan, error) {
	specs, err := g.loader.LoadProject(project.Name(), project.Folder())
	if err != nil {
		return nil, err
	}
	return planner.BuildPlan(project, specs)
}

func (g *Generator) generateProject(project config.Project) error {
	plan, err := g.plan(project)
	if err != nil {
		return err
	}

	w := writer.New(filepath.Join(g.opts.OutputDir, project.Name()))
	for _, artifact := range plan.Artifacts {
		out, err := g.renderer.Render(string(artifact.Kind), artifact.Kind.Template(), artifact.Context)
		if err != nil {
			return err
		}
		if err := w.Write(artifact.Path, out, artifact.Executable); err != nil {
			return err
		}
	}

	slog.Info("project generated",
		slog.String("project", project.Name()),
		slog.Int("artifacts", len(plan.Artifacts)))
	return nil
}
