package substitute

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nawah-io/cli/internal/appconfig"
	"github.com/nawah-io/cli/internal/testutil"
)

func testSnapshot(t *testing.T) appconfig.Snapshot {
	t.Helper()
	s, err := appconfig.Defaults(strings.NewReader(strings.Repeat("\x03", 64)))
	require.NoError(t, err)
	return s
}

func TestReplacement_Apply(t *testing.T) {
	tests := []struct {
		name  string
		r     Replacement
		input string
		want  string
	}{
		{"once", Replacement{"__X__", "v", 1}, "a __X__ b __X__ c", "a v b __X__ c"},
		{"twice", Replacement{"__X__", "v", 2}, "a __X__ b __X__ c __X__", "a v b v c __X__"},
		{"absent token", Replacement{"__Y__", "v", 1}, "a __X__ b", "a __X__ b"},
		{"zero count", Replacement{"__X__", "v", 0}, "a __X__", "a __X__"},
		{"empty token", Replacement{"", "v", 1}, "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Apply(tt.input))
		})
	}
}

func TestSubstitute_EachTokenOnce(t *testing.T) {
	s := testSnapshot(t)

	got := Substitute("env=__ENV__ again=__ENV__ db=__DATA_NAME__", s)
	assert.Equal(t, "env=$__env.ENV again=__ENV__ db=nawah_data", got)
}

func TestSubstitute_ProjectNameTwice(t *testing.T) {
	s := testSnapshot(t)

	got := Substitute("__PROJECT_NAME__ __PROJECT_NAME__ __PROJECT_NAME__", s, ProjectName("blog"))
	assert.Equal(t, "blog blog __PROJECT_NAME__", got)
}

func TestSubstitute_AppFile(t *testing.T) {
	s := testSnapshot(t)

	template := strings.Join([]string{
		"name='__PROJECT_NAME__'",
		"pkg='__PROJECT_NAME__'",
		"admin_password='__ADMIN_PASSWORD__'",
		"anon_token='__ANON_TOKEN_SUFFIX__'",
		"dev='__DEV_LOCAL_DATA_SERVER__'",
		"server='__DEV_SERVER_DATA_SERVER__'",
		"prod='__PROD_DATA_SERVER__'",
		"env='__ENV__'",
		"data_name='__DATA_NAME__'",
		"locales=['__LOCALES__']",
		"locale='__LOCALE__'",
		"email='__ADMIN_DOC_EMAIL__'",
	}, "\n")

	got := Substitute(template, s, ProjectName("shop"))

	for _, f := range s.Fields() {
		assert.NotContains(t, got, f.Field.Token)
	}
	assert.NotContains(t, got, TokenProjectName)
	assert.Contains(t, got, "name='shop'\npkg='shop'")
	assert.Contains(t, got, "admin_password='"+s.AdminPassword.Value+"'")
	assert.Contains(t, got, "locales=['ar_AE', 'en_AE']")
	assert.Contains(t, got, "email='admin@app.nawah.localhost'")
}

func TestPlan_Order(t *testing.T) {
	s := testSnapshot(t)
	plan := Plan(s, ProjectName("x"))

	require.Len(t, plan, 1+len(appconfig.FieldNames()))
	assert.Equal(t, TokenProjectName, plan[0].Token)
	assert.Equal(t, 2, plan[0].Count)
	for i, f := range s.Fields() {
		assert.Equal(t, f.Field.Token, plan[i+1].Token)
		assert.Equal(t, 1, plan[i+1].Count)
	}
}

func TestRewrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := testutil.WriteFile(t, fs, "/app", ".gitignore", "PROJECT_NAME/\nPROJECT_NAME.log\n")

	err := Rewrite(fs, p, Replacement{Token: "PROJECT_NAME", Value: "blog", Count: 1}.Apply)
	require.NoError(t, err)
	assert.Equal(t, "blog/\nPROJECT_NAME.log\n", testutil.ReadFile(t, fs, p))
}

func TestRewrite_Missing(t *testing.T) {
	err := Rewrite(afero.NewMemMapFs(), "/app/nawah_app.py", strings.ToUpper)
	assert.Error(t, err)
}
