package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkspace_Paths(t *testing.T) {
	w := New("/home/dev/apps", "blog")

	assert.Equal(t, "/home/dev/apps/blog", w.Root())
	assert.Equal(t, "blog", w.AppName())
	assert.Equal(t, "/home/dev/apps/blog/framework-1.0.whl", w.FrameworkWheel("1.0"))
	assert.Equal(t, "/home/dev/apps/blog/nawah", w.Stubs())
	assert.Equal(t, "/home/dev/apps/blog/requirements.txt", w.Requirements())
	assert.Equal(t, "/home/dev/apps/blog/nawah_app.py", w.AppEntry())
	assert.Equal(t, "/home/dev/apps/blog/.gitignore", w.GitIgnore())
	assert.Equal(t, "/home/dev/apps/blog/packages/PROJECT_NAME", w.PlaceholderPackage())
	assert.Equal(t, "/home/dev/apps/blog/packages/blog", w.AppPackage())
	assert.Equal(t, "/home/dev/apps/blog/LICENSE", w.Path("LICENSE"))
}

func TestWorkspace_RelativeAppPath(t *testing.T) {
	w := New(".", "shop")
	assert.Equal(t, "shop", w.Root())
	assert.Equal(t, "shop/nawah_app.py", w.AppEntry())
}

func TestTemplateRoot(t *testing.T) {
	assert.Equal(t, "nawah_app_template-APIv1.0", TemplateRoot("1.0"))
	assert.Equal(t, "nawah_app_template-APIv2.15", TemplateRoot("2.15"))
}
