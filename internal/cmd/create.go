package cmd

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nawah-io/cli/internal/appconfig"
	"github.com/nawah-io/cli/internal/checkpoint"
	"github.com/nawah-io/cli/internal/config"
	oerrors "github.com/nawah-io/cli/internal/errors"
	"github.com/nawah-io/cli/internal/fetch"
	"github.com/nawah-io/cli/internal/output"
	"github.com/nawah-io/cli/internal/pipeline"
	"github.com/nawah-io/cli/internal/version"
)

// createFlags holds the flags for the create command.
type createFlags struct {
	defaultConfig bool
	apiLevel      string
	template      string
}

// createEnv holds the collaborators of the create command. Nil fields are
// filled with the production implementations.
type createEnv struct {
	fs      afero.Fs
	fetcher fetch.Fetcher
	runner  pipeline.Runner
	source  pipeline.SnapshotSource
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewCreateCmd creates the create command.
func NewCreateCmd() *cobra.Command {
	return newCreateCmd(&createEnv{})
}

func newCreateCmd(env *createEnv) *cobra.Command {
	var flags createFlags

	c := &cobra.Command{
		Use:   "create <app_name> [app_path]",
		Short: "Create a Nawah app",
		Long: `Create a Nawah app workspace named app_name under app_path.

The template, framework wheel, stubs and requirements for the requested API
level are downloaded, dependencies are installed, a Git repository is
initialised and the app files are configured.

If a step fails, progress is saved in the workspace. Fix the problem and run
the same command again to continue from the failed step.

Arguments:
  app_name    Name of the app (lowercase letters, digits and underscores)
  app_path    Directory the workspace is created in (default: current directory)

Examples:
  # Create an app, answering configuration prompts
  nawah create blog

  # Create an app with the default configuration
  nawah create blog ~/projects --default-config

  # Create an app from a local template checkout
  nawah create blog --template ../nawah_app_template`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			return exitError(runCreate(c, args, &flags, env))
		},
	}

	c.Flags().BoolVar(&flags.defaultConfig, "default-config", false,
		"Skip configuration prompts and use the default configuration")
	c.Flags().StringVar(&flags.apiLevel, "api-level", "",
		"Nawah API level (env: NAWAH_API_LEVEL, default: "+config.DefaultAPILevel+")")
	c.Flags().StringVar(&flags.template, "template", "",
		"Local app template directory to use instead of downloading one")

	return c
}

func runCreate(c *cobra.Command, args []string, flags *createFlags, env *createEnv) error {
	if configErr != nil {
		return oerrors.NewValidationError(configErr.Error(), "config", "Run 'nawah config vet' to check the configuration file.")
	}
	cfg := GetConfig()

	apiLevel := config.ResolveAPILevel(config.ResolveAPILevelOptions{
		FlagValue:   flags.apiLevel,
		ConfigValue: cfg.APILevel,
	})
	config.LogResolvedValues(apiLevel)

	appPath := "."
	if len(args) > 1 {
		appPath = args[1]
	}
	appPath, err := absPath(appPath)
	if err != nil {
		return err
	}

	template := flags.template
	if template != "" {
		if template, err = absPath(template); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.fill(flags.defaultConfig)

	store, err := checkpoint.NewStore(env.fs)
	if err != nil {
		return err
	}

	cacheDir := config.DefaultPaths().CacheDir
	if err := env.fs.MkdirAll(cacheDir, 0o755); err != nil {
		output.Debug("cache dir unavailable, using system temp dir", "dir", cacheDir, "error", err)
		cacheDir = ""
	}

	logger := output.Logger()
	if env.fetcher == nil {
		env.fetcher = fetch.NewHTTPFetcher(env.fs, logger, fetch.WithTempDir(cacheDir))
	}

	p := pipeline.NewProvisioner(pipeline.Deps{
		FS:      env.fs,
		Store:   store,
		Fetcher: env.fetcher,
		Runner:  env.runner,
		Source:  env.source,
		Logger:  logger,
		Out:     env.stdout,
	}, pipeline.Settings{
		Sources: pipeline.Sources{
			TemplateURL:     cfg.Remote.TemplateURL,
			FrameworkURL:    cfg.Remote.FrameworkURL,
			StubsURL:        cfg.Remote.StubsURL,
			RequirementsURL: cfg.Remote.RequirementsURL,
		},
		Installer:       cfg.InstallerArgv(),
		Git:             cfg.GitArgv(),
		AllowGitFailure: cfg.Git.AllowFailure,
		CLIVersion:      version.Label(),
		TempDir:         cacheDir,
	})

	res, err := p.Provision(ctx, checkpoint.Args{
		AppPath:       appPath,
		AppName:       args[0],
		APILevel:      apiLevel.Value,
		Template:      template,
		DefaultConfig: flags.defaultConfig,
	})
	if err != nil {
		return err
	}

	if res.Resumed() {
		output.Debug("resumed from saved progress", "step", res.From)
	}
	return nil
}

func (e *createEnv) fill(defaultConfig bool) {
	if e.fs == nil {
		e.fs = afero.NewOsFs()
	}
	if e.stdin == nil {
		e.stdin = os.Stdin
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	if e.runner == nil {
		e.runner = &pipeline.ExecRunner{Stdout: e.stdout, Stderr: e.stderr}
	}
	if e.source == nil {
		e.source = newSnapshotSource(defaultConfig, e.stdin, e.stderr)
	}
}

// newSnapshotSource picks how a fresh run's configuration is produced.
func newSnapshotSource(defaultConfig bool, in io.Reader, out io.Writer) pipeline.SnapshotSource {
	if defaultConfig {
		return appconfig.DefaultSource{}
	}
	var prompter appconfig.Prompter = appconfig.NewLinePrompter(in, out)
	if in == os.Stdin && output.IsInteractive() {
		prompter = appconfig.FormPrompter{}
	}
	return appconfig.NewCollector(prompter, output.Logger(), nil)
}

func absPath(path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}
