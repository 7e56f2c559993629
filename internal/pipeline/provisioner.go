package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/nawah-io/cli/internal/appconfig"
	"github.com/nawah-io/cli/internal/checkpoint"
	oerrors "github.com/nawah-io/cli/internal/errors"
	"github.com/nawah-io/cli/internal/fetch"
	"github.com/nawah-io/cli/internal/output"
	"github.com/nawah-io/cli/internal/workspace"
)

// APILevelPlaceholder is expanded in source URLs.
const APILevelPlaceholder = "{api_level}"

// Sources are the remote artifact URLs. Each may contain {api_level}.
type Sources struct {
	TemplateURL     string
	FrameworkURL    string
	StubsURL        string
	RequirementsURL string
}

func expand(url, apiLevel string) string {
	return strings.ReplaceAll(url, APILevelPlaceholder, apiLevel)
}

// Template returns the template archive URL for apiLevel.
func (s Sources) Template(apiLevel string) string { return expand(s.TemplateURL, apiLevel) }

// Framework returns the framework wheel URL for apiLevel.
func (s Sources) Framework(apiLevel string) string { return expand(s.FrameworkURL, apiLevel) }

// Stubs returns the stubs archive URL for apiLevel.
func (s Sources) Stubs(apiLevel string) string { return expand(s.StubsURL, apiLevel) }

// Requirements returns the requirements manifest URL for apiLevel.
func (s Sources) Requirements(apiLevel string) string { return expand(s.RequirementsURL, apiLevel) }

// Settings control how the provisioning steps behave.
type Settings struct {
	Sources Sources

	// Installer is the dependency installer command; the manifest path is
	// appended as the last argument.
	Installer []string

	// Git is the repository initialisation command, run inside the workspace.
	Git []string

	// AllowGitFailure downgrades a failing Git command to a warning.
	AllowGitFailure bool

	// CLIVersion is recorded in the generated README.
	CLIVersion string

	// TempDir holds temporary archives. Empty means the OS default.
	TempDir string
}

// SnapshotSource produces the configuration of a fresh run.
type SnapshotSource interface {
	Collect(ctx context.Context) (appconfig.Snapshot, error)
}

// Deps are the collaborators of a Provisioner.
type Deps struct {
	FS      afero.Fs
	Store   *checkpoint.Store
	Fetcher fetch.Fetcher
	Runner  Runner
	Source  SnapshotSource
	Logger  *log.Logger

	// Out receives the configuration summary table.
	Out io.Writer
}

// Provisioner creates an app workspace, resuming from a checkpoint when the
// workspace holds one.
type Provisioner struct {
	fs       afero.Fs
	store    *checkpoint.Store
	fetcher  fetch.Fetcher
	runner   Runner
	source   SnapshotSource
	logger   *log.Logger
	out      io.Writer
	settings Settings
}

// NewProvisioner creates a provisioner.
func NewProvisioner(deps Deps, settings Settings) *Provisioner {
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	return &Provisioner{
		fs:       deps.FS,
		store:    deps.Store,
		fetcher:  deps.Fetcher,
		runner:   deps.Runner,
		source:   deps.Source,
		logger:   deps.Logger,
		out:      out,
		settings: settings,
	}
}

// Result describes a completed provisioning run.
type Result struct {
	Workspace workspace.Workspace
	Args      checkpoint.Args
	Config    appconfig.Snapshot

	// From is the step the run started at; greater than 1 for a resume.
	From int
}

// Resumed reports whether the run continued from a checkpoint.
func (r *Result) Resumed() bool {
	return r.From > 1
}

// Provision runs the pipeline for args. A fresh workspace starts at step 1
// with a newly collected configuration. An existing workspace must hold a
// checkpoint; the run then restarts at the recorded step with the recorded
// configuration and arguments.
func (p *Provisioner) Provision(ctx context.Context, args checkpoint.Args) (*Result, error) {
	if err := validateArgs(args); err != nil {
		return nil, err
	}

	ws := workspace.New(args.AppPath, args.AppName)
	from, snapshot, args, err := p.prepare(ctx, ws, args)
	if err != nil {
		return nil, err
	}

	if from == 1 && args.Template != "" {
		if err := p.checkTemplate(args.Template); err != nil {
			return nil, err
		}
	}

	r := &run{p: p, args: args, ws: ws, snapshot: snapshot}
	pl, err := New(r.steps(), p.logger, OnFailure(func(step Step, stepErr error) error {
		return p.saveProgress(ctx, ws, step, args, snapshot, stepErr)
	}))
	if err != nil {
		return nil, err
	}

	if err := pl.Run(ctx, from); err != nil {
		return nil, err
	}

	if err := p.store.Remove(ws.Root()); err != nil {
		return nil, err
	}
	p.logger.Info(output.FormatCheckmark("App created"), "app", output.StyleNoun.Render(args.AppName), "path", ws.Root())

	return &Result{Workspace: ws, Args: args, Config: snapshot, From: from}, nil
}

// prepare decides between a fresh run and a resume.
func (p *Provisioner) prepare(ctx context.Context, ws workspace.Workspace, args checkpoint.Args) (int, appconfig.Snapshot, checkpoint.Args, error) {
	exists, err := afero.Exists(p.fs, ws.Root())
	if err != nil {
		return 0, appconfig.Snapshot{}, args, fmt.Errorf("checking %s: %w", ws.Root(), err)
	}

	if !exists {
		snapshot, err := p.source.Collect(ctx)
		if err != nil {
			return 0, appconfig.Snapshot{}, args, fmt.Errorf("collecting app config: %w", err)
		}
		if err := snapshot.Validate(); err != nil {
			return 0, appconfig.Snapshot{}, args, oerrors.NewValidationError(err.Error(), "config", "")
		}
		p.logger.Info("This will create an app with the following config")
		p.printSnapshot(snapshot)
		return 1, snapshot, args, nil
	}

	p.logger.Info("App workspace already exists, checking for earlier progress", "path", ws.Root())

	cp, err := p.store.Load(ws.Root())
	if err != nil {
		return 0, appconfig.Snapshot{}, args, err
	}
	if cp == nil {
		return 0, appconfig.Snapshot{}, args, oerrors.NewValidationError(
			fmt.Sprintf("%s already exists and has no saved progress", ws.Root()),
			"app_name",
			"Choose another app name or path, or remove the existing directory.",
		)
	}

	stored := p.reconcileArgs(cp.Args, args)

	p.logger.Info("Continuing with loaded progress config", "step", cp.Step)
	p.printSnapshot(cp.Config)
	return cp.Step, cp.Config, stored, nil
}

// reconcileArgs returns the stored arguments, keeping the current app path
// and app name since together they locate the workspace the checkpoint was
// found in. Differences are logged.
func (p *Provisioner) reconcileArgs(stored, current checkpoint.Args) checkpoint.Args {
	warn := func(name, storedVal, currentVal string) {
		if storedVal != currentVal {
			p.logger.Warn("Ignoring argument in favour of saved progress",
				"arg", name, "saved", storedVal, "given", currentVal)
		}
	}
	warn("app_name", stored.AppName, current.AppName)
	warn("api_level", stored.APILevel, current.APILevel)
	warn("template", stored.Template, current.Template)
	warn("default_config", fmt.Sprint(stored.DefaultConfig), fmt.Sprint(current.DefaultConfig))

	if stored.AppPath != current.AppPath {
		p.logger.Debug("Workspace moved since progress was saved", "saved", stored.AppPath, "given", current.AppPath)
	}
	stored.AppPath = current.AppPath
	stored.AppName = current.AppName
	return stored
}

func (p *Provisioner) saveProgress(ctx context.Context, ws workspace.Workspace, step Step, args checkpoint.Args, snapshot appconfig.Snapshot, stepErr error) error {
	if ctx.Err() != nil {
		p.logger.Warn("Interrupted, no progress saved", "step", step.Index)
		return nil
	}

	cp := checkpoint.Checkpoint{Step: step.Index, Args: args, Config: snapshot}
	if err := p.store.Save(ws.Root(), cp); err != nil {
		p.logger.Error("Could not save progress", "error", err)
		return err
	}

	p.logger.Error("Provisioning failed, progress saved",
		"step", step.Name,
		"error", stepErr,
		"checkpoint", p.store.Path(ws.Root()),
	)
	p.logger.Info("Fix the problem, then run the same command again to continue")
	return nil
}

func (p *Provisioner) checkTemplate(dir string) error {
	hint := "A template directory must contain " + workspace.AppFile + "."
	info, err := p.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return oerrors.NewValidationError(fmt.Sprintf("template %s is not a directory", dir), "template", hint)
	}
	ok, err := afero.Exists(p.fs, filepath.Join(dir, workspace.AppFile))
	if err != nil || !ok {
		return oerrors.NewValidationError(fmt.Sprintf("template %s is not a valid app template", dir), "template", hint)
	}
	return nil
}

func (p *Provisioner) printSnapshot(s appconfig.Snapshot) {
	tbl := output.NewConfigTable()
	for _, f := range s.Fields() {
		tbl.Add(f.Name, f.Field.Token, f.Field.Value)
	}
	fmt.Fprintln(p.out, tbl.String())
}

func validateArgs(args checkpoint.Args) error {
	if err := appconfig.ValidateAppName(args.AppName); err != nil {
		return oerrors.NewValidationError(err.Error(), "app_name", "")
	}
	if err := appconfig.ValidateAPILevel(args.APILevel); err != nil {
		return oerrors.NewValidationError(err.Error(), "api_level", "")
	}
	if strings.TrimSpace(args.AppPath) == "" {
		return oerrors.NewValidationError("app path can't be blank", "app_path", "")
	}
	return nil
}
