// Package workspace knows the layout of an app workspace.
package workspace

import (
	"fmt"
	"path/filepath"
)

// Fixed names inside a workspace.
const (
	AppFile          = "nawah_app.py"
	GitIgnoreFile    = ".gitignore"
	RequirementsFile = "requirements.txt"
	StubsDir         = "nawah"
	PackagesDir      = "packages"

	// PackagePlaceholder is the template package directory renamed to the app name.
	PackagePlaceholder = "PROJECT_NAME"
)

// Workspace is the directory a new app is created in: <app_path>/<app_name>.
type Workspace struct {
	root    string
	appName string
}

// New returns the workspace for appName under appPath.
func New(appPath, appName string) Workspace {
	return Workspace{root: filepath.Join(appPath, appName), appName: appName}
}

// Root returns the workspace directory.
func (w Workspace) Root() string { return w.root }

// AppName returns the app name the workspace was created for.
func (w Workspace) AppName() string { return w.appName }

// Path joins elem onto the workspace directory.
func (w Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.root}, elem...)...)
}

// FrameworkWheel returns the path of the downloaded framework wheel.
func (w Workspace) FrameworkWheel(apiLevel string) string {
	return w.Path(fmt.Sprintf("framework-%s.whl", apiLevel))
}

// Stubs returns the directory framework stubs are extracted to.
func (w Workspace) Stubs() string { return w.Path(StubsDir) }

// Requirements returns the dependency manifest path.
func (w Workspace) Requirements() string { return w.Path(RequirementsFile) }

// AppEntry returns the app entry file path.
func (w Workspace) AppEntry() string { return w.Path(AppFile) }

// GitIgnore returns the .gitignore path.
func (w Workspace) GitIgnore() string { return w.Path(GitIgnoreFile) }

// PlaceholderPackage returns the template package directory before renaming.
func (w Workspace) PlaceholderPackage() string {
	return w.Path(PackagesDir, PackagePlaceholder)
}

// AppPackage returns the app package directory after renaming.
func (w Workspace) AppPackage() string {
	return w.Path(PackagesDir, w.appName)
}

// TemplateRoot returns the top-level directory of the template archive for
// apiLevel.
func TemplateRoot(apiLevel string) string {
	return "nawah_app_template-APIv" + apiLevel
}

// StubsRoot is the top-level directory of the stubs archive.
const StubsRoot = "."
