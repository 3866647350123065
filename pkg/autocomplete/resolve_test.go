package autocomplete

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGenerator struct {
	calls []string
}

func (g *recordingGenerator) Generate(w io.Writer, shell Shell, _ *cobra.Command, name string) error {
	g.calls = append(g.calls, shell.String()+":"+name)
	_, err := fmt.Fprintf(w, "script for %s (%s)\n", name, shell)
	return err
}

type resolveFixture struct {
	root       *cobra.Command
	resolver   *Resolver
	generator  *recordingGenerator
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	installDir string
	configHome string
}

func newResolveFixture(t *testing.T, platform Platform, detector Detector) *resolveFixture {
	t.Helper()

	f := &resolveFixture{
		root:       Register(createTestRootCmd(), WithPlatform(platform)),
		generator:  &recordingGenerator{},
		stdout:     new(bytes.Buffer),
		stderr:     new(bytes.Buffer),
		installDir: t.TempDir(),
		configHome: t.TempDir(),
	}

	installer := NewInstaller(f.stderr)
	installer.Root = f.installDir
	installer.configHome = func() (string, error) { return f.configHome, nil }

	f.resolver = &Resolver{
		Detector:  detector,
		Generator: f.generator,
		Installer: installer,
		Platform:  platform,
		Stdout:    f.stdout,
		Stderr:    f.stderr,
	}
	return f
}

func (f *resolveFixture) run(t *testing.T, args ...string) (bool, error) {
	t.Helper()
	f.root.SetArgs(args)
	f.root.SetOut(f.stdout)
	f.root.SetErr(f.stderr)

	executed, err := f.root.ExecuteC()
	require.NoError(t, err)
	return f.resolver.Resolve(f.root, executed)
}

// installedFiles lists every regular file written below the fixture's
// install root and config home.
func (f *resolveFixture) installedFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	for _, dir := range []string{f.installDir, f.configHome} {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, path)
			}
			return nil
		})
		require.NoError(t, err)
	}
	return files
}

var installable = Platform{Installable: true}

func TestResolve_NotInvoked(t *testing.T) {
	f := newResolveFixture(t, installable, StaticDetector("bash"))

	invoked, err := f.run(t, "greet", "world")
	assert.False(t, invoked)
	assert.NoError(t, err)

	assert.Empty(t, f.stdout.String())
	assert.Empty(t, f.stderr.String())
	assert.Empty(t, f.generator.calls)
	assert.Empty(t, f.installedFiles(t))
}

func TestResolve_NilAndForeignCommands(t *testing.T) {
	f := newResolveFixture(t, installable, StaticDetector("bash"))

	invoked, err := f.resolver.Resolve(f.root, nil)
	assert.False(t, invoked)
	assert.NoError(t, err)

	other := Register(createTestRootCmd())
	foreign, _, err := other.Find([]string{"complete"})
	require.NoError(t, err)

	invoked, err = f.resolver.Resolve(f.root, foreign)
	assert.False(t, invoked)
	assert.NoError(t, err)
	assert.Empty(t, f.generator.calls)
}

func TestResolve_ExplicitShellCasing(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"BASH", "bash"},
		{"Zsh", "zsh"},
		{"fIsH", "fish"},
		{"pwsh", "powershell"},
		{"PowerShell", "powershell"},
		{"Elvish", "elvish"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			f := newResolveFixture(t, installable, nil)

			invoked, err := f.run(t, "complete", "--shell", tt.arg, "--print")
			assert.True(t, invoked)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want + ":mytool"}, f.generator.calls)
			assert.NotContains(t, f.stderr.String(), "detect")
		})
	}
}

func TestResolve_UnsupportedShell(t *testing.T) {
	for _, arg := range []string{"nu", "cmd", "", "bashh"} {
		t.Run(arg, func(t *testing.T) {
			f := newResolveFixture(t, installable, StaticDetector("bash"))

			invoked, err := f.run(t, "complete", "-s", arg)
			assert.True(t, invoked)
			require.ErrorIs(t, err, ErrUnsupportedShell)
			assert.Equal(t, "unsupported explicit shell", err.Error())

			assert.Empty(t, f.stdout.String())
			assert.Empty(t, f.generator.calls)
			assert.Empty(t, f.installedFiles(t))
		})
	}
}

func TestResolve_DetectsShell(t *testing.T) {
	f := newResolveFixture(t, installable, StaticDetector("zsh"))

	invoked, err := f.run(t, "complete", "--print")
	assert.True(t, invoked)
	require.NoError(t, err)

	assert.Equal(t, []string{"zsh:mytool"}, f.generator.calls)
	assert.Contains(t, f.stderr.String(), "Trying to detect your shell")
	assert.Equal(t, "script for mytool (zsh)\n", f.stdout.String())
	assert.NotContains(t, f.stdout.String(), "detect")
}

func TestResolve_DetectionFailed(t *testing.T) {
	for name, detector := range map[string]Detector{
		"empty":  StaticDetector(""),
		"nil":    nil,
		"failed": DetectorFunc(func() (string, error) { return "", os.ErrNotExist }),
	} {
		t.Run(name, func(t *testing.T) {
			f := newResolveFixture(t, installable, detector)

			invoked, err := f.run(t, "complete")
			assert.True(t, invoked)
			require.ErrorIs(t, err, ErrDetectionFailed)
			assert.Equal(t, "failed to detect shell, please explicitly supply it", err.Error())
			assert.Empty(t, f.stdout.String())
			assert.Empty(t, f.installedFiles(t))
		})
	}
}

func TestResolve_DetectedUnsupportedShell(t *testing.T) {
	f := newResolveFixture(t, installable, StaticDetector("tcsh"))

	invoked, err := f.run(t, "complete")
	assert.True(t, invoked)
	assert.ErrorIs(t, err, ErrUnsupportedShell)
}

func TestResolve_PrintSkipsInstall(t *testing.T) {
	f := newResolveFixture(t, installable, nil)

	invoked, err := f.run(t, "complete", "--shell", "bash", "-p")
	assert.True(t, invoked)
	require.NoError(t, err)

	assert.Equal(t, "script for mytool (bash)\n", f.stdout.String())
	assert.Empty(t, f.installedFiles(t))
	assert.Empty(t, f.resolver.Installed)
	assert.NotContains(t, f.stderr.String(), "Writing completions")
}

func TestResolve_ShellsWithoutInstallConventionPrint(t *testing.T) {
	for _, shell := range []string{"powershell", "elvish"} {
		t.Run(shell, func(t *testing.T) {
			withPrint := newResolveFixture(t, installable, nil)
			_, err := withPrint.run(t, "complete", "--shell", shell, "--print")
			require.NoError(t, err)

			without := newResolveFixture(t, installable, nil)
			invoked, err := without.run(t, "complete", "--shell", shell)
			assert.True(t, invoked)
			require.NoError(t, err)

			assert.Equal(t, withPrint.stdout.String(), without.stdout.String())
			assert.NotEmpty(t, without.stdout.String())
			assert.Empty(t, without.installedFiles(t))
		})
	}
}

func TestResolve_PlatformWithoutInstallSupportPrints(t *testing.T) {
	f := newResolveFixture(t, Platform{Installable: false}, nil)

	invoked, err := f.run(t, "complete", "--shell", "bash")
	assert.True(t, invoked)
	require.NoError(t, err)

	assert.Equal(t, "script for mytool (bash)\n", f.stdout.String())
	assert.Empty(t, f.installedFiles(t))
}

func TestResolve_InstallsBash(t *testing.T) {
	f := newResolveFixture(t, installable, nil)
	f.resolver.Generator = CobraGenerator{}

	invoked, err := f.run(t, "complete", "--shell", "bash")
	assert.True(t, invoked)
	require.NoError(t, err)
	assert.Empty(t, f.stdout.String())

	path := filepath.Join(f.installDir, "usr", "share", "bash-completion", "completions", "mytool")
	assert.Equal(t, []string{path}, f.installedFiles(t))
	assert.Equal(t, path, f.resolver.Installed)
	assert.Contains(t, f.stderr.String(), "Writing completions to "+path)

	want := new(bytes.Buffer)
	require.NoError(t, CobraGenerator{}.Generate(want, Bash, f.root, "mytool"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want.Bytes(), got)
}

func TestResolve_InstallsFishAndZsh(t *testing.T) {
	tests := []struct {
		shell string
		path  func(f *resolveFixture) string
	}{
		{"fish", func(f *resolveFixture) string {
			return filepath.Join(f.configHome, "fish", "completions", "mytool.fish")
		}},
		{"zsh", func(f *resolveFixture) string {
			return filepath.Join(f.installDir, "usr", "share", "zsh", "functions", "Completion", "Base", "_mytool")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			f := newResolveFixture(t, installable, StaticDetector(tt.shell))

			invoked, err := f.run(t, "complete")
			assert.True(t, invoked)
			require.NoError(t, err)

			data, err := os.ReadFile(tt.path(f))
			require.NoError(t, err)
			assert.Equal(t, "script for mytool ("+tt.shell+")\n", string(data))
		})
	}
}

func TestResolve_UsesBinName(t *testing.T) {
	f := newResolveFixture(t, installable, nil)
	SetBinName(f.root, "my-tool")

	_, err := f.run(t, "complete", "--shell", "zsh")
	require.NoError(t, err)

	assert.Equal(t, []string{"zsh:my-tool"}, f.generator.calls)
	_, err = os.Stat(filepath.Join(f.installDir, "usr", "share", "zsh", "functions", "Completion", "Base", "_my-tool"))
	assert.NoError(t, err)
}

func TestResolve_FishPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	f := newResolveFixture(t, installable, nil)
	dir := filepath.Join(f.configHome, "fish", "completions")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	invoked, err := f.run(t, "complete", "--shell", "fish")
	assert.True(t, invoked)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient privileges")
	assert.Empty(t, f.stdout.String())

	_, statErr := os.Stat(filepath.Join(dir, "mytool.fish"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestResolve_DefaultsWhenUnset(t *testing.T) {
	root := Register(createTestRootCmd(), WithPlatform(installable))
	root.SetArgs([]string{"complete", "--shell", "elvish"})
	root.SetOut(io.Discard)

	executed, err := root.ExecuteC()
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	r := &Resolver{Stdout: stdout, Stderr: io.Discard, Platform: installable}

	invoked, err := r.Resolve(nil, executed)
	assert.True(t, invoked)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "edit:completion:arg-completer")
}

func TestInvoked(t *testing.T) {
	root := Register(createTestRootCmd())
	complete, _, err := root.Find([]string{"complete"})
	require.NoError(t, err)
	greet, _, err := root.Find([]string{"greet"})
	require.NoError(t, err)

	assert.True(t, Invoked(root, complete))
	assert.True(t, Invoked(nil, complete))
	assert.False(t, Invoked(root, greet))
	assert.False(t, Invoked(root, root))
	assert.False(t, Invoked(root, nil))
	assert.False(t, Invoked(createTestRootCmd(), complete))
}

func TestResolve_InstalledResetsBetweenRuns(t *testing.T) {
	f := newResolveFixture(t, installable, nil)

	_, err := f.run(t, "complete", "--shell", "fish")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.configHome, "fish", "completions", "mytool.fish"), f.resolver.Installed)

	_, err = f.run(t, "complete", "--shell", "fish", "--print")
	require.NoError(t, err)
	assert.Empty(t, f.resolver.Installed)
}

func TestResolve_NoColorNotices(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })
	color.NoColor = false

	root := Register(createTestRootCmd(), WithPlatform(installable))
	root.SetArgs([]string{"complete"})
	root.SetOut(io.Discard)
	executed, err := root.ExecuteC()
	require.NoError(t, err)

	stderr := new(bytes.Buffer)
	r := &Resolver{
		Detector:  StaticDetector("fish"),
		Generator: &recordingGenerator{},
		Platform:  installable,
		Stdout:    io.Discard,
		Stderr:    stderr,
		NoColor:   true,
	}
	configHome := t.TempDir()
	r.installer().configHome = func() (string, error) { return configHome, nil }

	_, err = r.Resolve(root, executed)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "Trying to detect your shell")
	assert.Contains(t, stderr.String(), "Writing completions to")
	assert.NotContains(t, stderr.String(), "\x1b[")
}
