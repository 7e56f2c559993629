package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nawah-io/cli/internal/appconfig"
	"github.com/nawah-io/cli/internal/checkpoint"
	oerrors "github.com/nawah-io/cli/internal/errors"
	"github.com/nawah-io/cli/internal/testutil"
)

const testAppFile = `app = {
	'name': '__PROJECT_NAME__',
	'package': '__PROJECT_NAME__',
	'admin_password': '__ADMIN_PASSWORD__',
	'anon_token': '__ANON_TOKEN_SUFFIX__',
	'envs': {
		'dev_local': '__DEV_LOCAL_DATA_SERVER__',
		'dev_server': '__DEV_SERVER_DATA_SERVER__',
		'prod': '__PROD_DATA_SERVER__',
	},
	'env': '__ENV__',
	'data_name': '__DATA_NAME__',
	'locales': ['__LOCALES__'],
	'locale': '__LOCALE__',
	'admin_email': '__ADMIN_DOC_EMAIL__',
}
`

// newArtifactServer serves the remote artifacts for API level 1.0.
func newArtifactServer(t *testing.T) *httptest.Server {
	t.Helper()

	files := map[string][]byte{
		"/template/APIv1.0.tar.gz": testutil.Tarball(t,
			testutil.Dir("nawah_app_template-APIv1.0"),
			testutil.File("nawah_app_template-APIv1.0/nawah_app.py", testAppFile),
			testutil.File("nawah_app_template-APIv1.0/.gitignore", "PROJECT_NAME/\n"),
			testutil.Dir("nawah_app_template-APIv1.0/packages/PROJECT_NAME"),
			testutil.File("nawah_app_template-APIv1.0/packages/PROJECT_NAME/__init__.py", ""),
		),
		"/wheels/1.0/nawah.whl":        []byte("wheel"),
		"/wheels/1.0/stubs.tar.gz":     testutil.Tarball(t, testutil.Dir("."), testutil.File("./__init__.pyi", "stub")),
		"/wheels/1.0/requirements.txt": []byte("pymongo\n"),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func serverConfig(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	return writeConfig(t, fmt.Sprintf(`remote:
  template_url: %[1]s/template/APIv{api_level}.tar.gz
  framework_url: %[1]s/wheels/{api_level}/nawah.whl
  stubs_url: %[1]s/wheels/{api_level}/stubs.tar.gz
  requirements_url: %[1]s/wheels/{api_level}/requirements.txt
installer:
  command: pip install -r
`, srv.URL))
}

type recordingRunner struct {
	calls [][]string
	fail  map[string]error
}

func (r *recordingRunner) Run(_ context.Context, _ string, argv []string) error {
	r.calls = append(r.calls, argv)
	return r.fail[argv[0]]
}

func TestNewCreateCmd(t *testing.T) {
	cmd := NewCreateCmd()

	assert.Equal(t, "create <app_name> [app_path]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("default-config"))
	assert.NotNil(t, cmd.Flags().Lookup("api-level"))
	assert.NotNil(t, cmd.Flags().Lookup("template"))
}

func TestCreate_DefaultConfig(t *testing.T) {
	srv := newArtifactServer(t)
	cfgPath := serverConfig(t, srv)
	fs := afero.NewMemMapFs()
	runner := &recordingRunner{}
	var stdout bytes.Buffer

	_, err := executeRoot(t, func(env *createEnv) {
		env.fs = fs
		env.runner = runner
		env.stdout = &stdout
	}, "create", "blog", "/apps", "--default-config", "--config", cfgPath)
	require.NoError(t, err)

	app := testutil.ReadFile(t, fs, "/apps/blog/nawah_app.py")
	assert.Contains(t, app, "'name': 'blog'")
	assert.Contains(t, app, "'data_name': 'nawah_data'")
	assert.NotContains(t, app, "__ADMIN_PASSWORD__")

	assert.Contains(t, testutil.ReadFile(t, fs, "/apps/blog/README.md"), "with API Level 1.0.")
	assert.Equal(t, "stub", testutil.ReadFile(t, fs, "/apps/blog/nawah/__init__.pyi"))
	assert.True(t, testutil.Exists(t, fs, "/apps/blog/packages/blog/__init__.py"))
	assert.False(t, testutil.Exists(t, fs, "/apps/blog/progress.json"))

	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"pip", "install", "-r", "/apps/blog/requirements.txt"}, runner.calls[0])
	assert.Equal(t, []string{"git", "init"}, runner.calls[1])

	assert.Contains(t, stdout.String(), "admin_doc:email")
}

func TestCreate_GitFailureThenResume(t *testing.T) {
	srv := newArtifactServer(t)
	cfgPath := serverConfig(t, srv)
	fs := afero.NewMemMapFs()
	runner := &recordingRunner{fail: map[string]error{"git": errors.New("exit status 128")}}

	replace := func(env *createEnv) {
		env.fs = fs
		env.runner = runner
		env.stdout = &bytes.Buffer{}
	}

	_, err := executeRoot(t, replace, "create", "blog", "/apps", "--default-config", "--config", cfgPath)
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, oerrors.ExitStepFailed, exitErr.Code)
	assert.True(t, exitErr.Printed)

	store, err := checkpoint.NewStore(fs)
	require.NoError(t, err)
	cp, err := store.Load("/apps/blog")
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, 3, cp.Step)

	delete(runner.fail, "git")
	runner.calls = nil

	_, err = executeRoot(t, replace, "create", "blog", "/apps", "--default-config", "--config", cfgPath)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1, "only git is re-run")
	assert.Equal(t, []string{"git", "init"}, runner.calls[0])
	assert.False(t, testutil.Exists(t, fs, "/apps/blog/progress.json"))
	assert.Contains(t, testutil.ReadFile(t, fs, "/apps/blog/nawah_app.py"), "'name': 'blog'")
}

func TestCreate_PromptsWhenNotDefaulted(t *testing.T) {
	srv := newArtifactServer(t)
	cfgPath := serverConfig(t, srv)
	fs := afero.NewMemMapFs()

	// Eight empty answers accept every default.
	answers := strings.Repeat("\n", 8)

	_, err := executeRoot(t, func(env *createEnv) {
		env.fs = fs
		env.runner = &recordingRunner{}
		env.stdin = strings.NewReader(answers)
		env.stdout = &bytes.Buffer{}
		env.stderr = &bytes.Buffer{}
	}, "create", "blog", "/apps", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, testutil.ReadFile(t, fs, "/apps/blog/nawah_app.py"), "'locale': 'ar_AE'")
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid app name", []string{"create", "Blog", "/apps", "--default-config"}},
		{"reserved app name", []string{"create", "nawah_app", "/apps", "--default-config"}},
		{"invalid api level", []string{"create", "blog", "/apps", "--default-config", "--api-level", "one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			runner := &recordingRunner{}
			args := append(tt.args, "--config", writeConfig(t, ""))

			_, err := executeRoot(t, func(env *createEnv) {
				env.fs = fs
				env.runner = runner
				env.source = appconfig.DefaultSource{}
			}, args...)
			require.Error(t, err)
			assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
			assert.Empty(t, runner.calls)
			assert.False(t, testutil.Exists(t, fs, "/apps"))
		})
	}
}

func TestCreate_MalformedConfig(t *testing.T) {
	cfgPath := writeConfig(t, "remote: [unclosed")

	_, err := executeRoot(t, func(env *createEnv) {
		env.fs = afero.NewMemMapFs()
	}, "create", "blog", "/apps", "--default-config", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}

func TestCreate_RequiresAppName(t *testing.T) {
	_, err := executeRoot(t, func(env *createEnv) {}, "create")
	assert.Error(t, err)
}
