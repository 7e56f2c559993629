package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/nawah-io/cli/internal/appconfig"
	"github.com/nawah-io/cli/internal/archive"
	"github.com/nawah-io/cli/internal/checkpoint"
	"github.com/nawah-io/cli/internal/output"
	"github.com/nawah-io/cli/internal/substitute"
	"github.com/nawah-io/cli/internal/templates"
	"github.com/nawah-io/cli/internal/workspace"
)

// Step names, in execution order.
const (
	StepWorkspace    = "workspace"
	StepRequirements = "requirements"
	StepGit          = "git"
	StepAppFile      = "app-file"
	StepGitIgnore    = "gitignore"
	StepLicense      = "license"
	StepReadme       = "readme"
	StepPackage      = "package"
)

// run holds what the provisioning steps of one invocation operate on.
type run struct {
	p        *Provisioner
	args     checkpoint.Args
	ws       workspace.Workspace
	snapshot appconfig.Snapshot
}

// steps returns the fixed provisioning sequence.
func (r *run) steps() []Step {
	return []Step{
		{1, StepWorkspace, "Creating app workspace", r.createWorkspace},
		{2, StepRequirements, "Installing framework requirements", r.installRequirements},
		{3, StepGit, "Initialising Git repository", r.initGit},
		{4, StepAppFile, "Configuring app entry file", r.configureAppFile},
		{5, StepGitIgnore, "Configuring .gitignore", r.configureGitIgnore},
		{6, StepLicense, "Creating LICENSE", r.writeLicense},
		{7, StepReadme, "Creating README.md", r.writeReadme},
		{8, StepPackage, "Renaming app package", r.renamePackage},
	}
}

func (r *run) createWorkspace(ctx context.Context, logger *log.Logger) error {
	fs := r.p.fs
	level := r.args.APILevel
	root := workspace.TemplateRoot(level)

	templateArchive, err := r.templateArchive(ctx, logger)
	if err != nil {
		return err
	}
	defer fs.Remove(templateArchive)

	if err := r.extract(logger, templateArchive, root, r.ws.Root()); err != nil {
		return err
	}

	if _, err := r.p.fetcher.Fetch(ctx, r.p.settings.Sources.Framework(level), r.ws.FrameworkWheel(level)); err != nil {
		return err
	}

	stubs, err := r.p.fetcher.FetchTemp(ctx, r.p.settings.Sources.Stubs(level))
	if err != nil {
		return err
	}
	defer fs.Remove(stubs)

	if err := r.extract(logger, stubs, workspace.StubsRoot, r.ws.Stubs()); err != nil {
		return err
	}

	if _, err := r.p.fetcher.Fetch(ctx, r.p.settings.Sources.Requirements(level), r.ws.Requirements()); err != nil {
		return err
	}

	return nil
}

// templateArchive returns a temporary tar.gz of the app template, packed from
// the local template directory when one is set and downloaded otherwise.
func (r *run) templateArchive(ctx context.Context, logger *log.Logger) (string, error) {
	if r.args.Template == "" {
		return r.p.fetcher.FetchTemp(ctx, r.p.settings.Sources.Template(r.args.APILevel))
	}

	logger.Info("Packing local template", "template", output.StyleNoun.Render(r.args.Template))

	tmp, err := afero.TempFile(r.p.fs, r.p.settings.TempDir, "nawah-template-*.tar.gz")
	if err != nil {
		return "", fmt.Errorf("creating template archive: %w", err)
	}
	name := tmp.Name()

	if err := archive.Pack(r.p.fs, r.args.Template, workspace.TemplateRoot(r.args.APILevel), tmp); err != nil {
		tmp.Close()
		_ = r.p.fs.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = r.p.fs.Remove(name)
		return "", fmt.Errorf("creating template archive: %w", err)
	}
	return name, nil
}

func (r *run) extract(logger *log.Logger, path, root, dst string) error {
	a, err := archive.Open(r.p.fs, path)
	if err != nil {
		return err
	}
	n, err := archive.Extract(r.p.fs, a, root, dst)
	if err != nil {
		return fmt.Errorf("extracting into %s: %w", dst, err)
	}
	logger.Info("Extracted archive", "members", n, "into", output.StyleNoun.Render(dst))
	logger.Debug("Extracted from", "archive", a.Path(), "root", root)
	return nil
}

func (r *run) installRequirements(ctx context.Context, logger *log.Logger) error {
	argv := append(append([]string(nil), r.p.settings.Installer...), r.ws.Requirements())
	logger.Info("Running installer", "command", strings.Join(argv, " "))
	if err := r.p.runner.Run(ctx, "", argv); err != nil {
		return fmt.Errorf("installer failed, check the console output above: %w", err)
	}
	return nil
}

func (r *run) initGit(ctx context.Context, logger *log.Logger) error {
	err := r.p.runner.Run(ctx, r.ws.Root(), r.p.settings.Git)
	if err == nil {
		logger.Info("Git repository initialised")
		return nil
	}
	if r.p.settings.AllowGitFailure && ctx.Err() == nil {
		logger.Warn("Git init failed, create the repository yourself", "error", err)
		return nil
	}
	return fmt.Errorf("git init failed, check the console output above: %w", err)
}

func (r *run) configureAppFile(_ context.Context, _ *log.Logger) error {
	return substitute.Rewrite(r.p.fs, r.ws.AppEntry(), func(s string) string {
		return substitute.Substitute(s, r.snapshot, substitute.ProjectName(r.ws.AppName()))
	})
}

func (r *run) configureGitIgnore(_ context.Context, _ *log.Logger) error {
	return substitute.Rewrite(r.p.fs, r.ws.GitIgnore(), substitute.Replacement{
		Token: workspace.PackagePlaceholder,
		Value: r.ws.AppName(),
		Count: 1,
	}.Apply)
}

func (r *run) writeLicense(_ context.Context, _ *log.Logger) error {
	_, err := templates.Render(r.p.fs, templates.License, r.ws.Root(), r.templateData())
	return err
}

func (r *run) writeReadme(_ context.Context, _ *log.Logger) error {
	_, err := templates.Render(r.p.fs, templates.README, r.ws.Root(), r.templateData())
	return err
}

func (r *run) renamePackage(_ context.Context, logger *log.Logger) error {
	from, to := r.ws.PlaceholderPackage(), r.ws.AppPackage()
	if err := r.p.fs.Rename(from, to); err != nil {
		return fmt.Errorf("renaming %s: %w", from, err)
	}
	logger.Debug("Renamed package", "from", from, "to", to)
	return nil
}

func (r *run) templateData() templates.Data {
	return templates.Data{
		AppName:    r.ws.AppName(),
		CLIVersion: r.p.settings.CLIVersion,
		APILevel:   r.args.APILevel,
	}
}
