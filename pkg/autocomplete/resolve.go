package autocomplete

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cobra-autocomplete/internal/view"
)

// Resolver runs the complete subcommand after cobra has parsed the arguments.
type Resolver struct {
	Detector  Detector
	Generator Generator
	Installer *Installer // nil installs to the default locations, reporting to Stderr
	Platform  Platform

	// Stdout receives printed scripts; Stderr receives progress notices.
	Stdout io.Writer
	Stderr io.Writer

	// NoColor keeps progress notices plain.
	NoColor bool

	// Installed is the path written by the last Resolve. It is empty when
	// the script was printed or nothing ran.
	Installed string
}

// NewResolver creates a resolver for the running platform.
func NewResolver() *Resolver {
	return &Resolver{
		Detector:  DefaultDetector(),
		Generator: CobraGenerator{},
		Platform:  DetectPlatform(),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Resolve handles executed if it is the complete subcommand registered on
// root. It reports false when some other command ran; the caller carries on
// as usual. When it reports true the caller should exit, non-zero if the
// returned error is set.
func (r *Resolver) Resolve(root, executed *cobra.Command) (bool, error) {
	r.Installed = ""
	if !Invoked(root, executed) {
		return false, nil
	}
	if root == nil {
		root = executed.Root()
	}

	shell, err := r.shell(executed)
	if err != nil {
		return true, err
	}

	name := BinName(root)

	if r.printOnly(executed, shell) {
		return true, r.generator().Generate(r.stdout(), shell, root, name)
	}

	buf := bytes.NewBuffer(make([]byte, 0, 512))
	if err := r.generator().Generate(buf, shell, root, name); err != nil {
		return true, err
	}

	path, err := r.installer().Install(shell, buf.Bytes(), name)
	if err != nil {
		return true, err
	}
	r.Installed = path
	return true, nil
}

func (r *Resolver) shell(executed *cobra.Command) (Shell, error) {
	flags := executed.Flags()
	if flags.Changed(shellFlag) {
		name, _ := flags.GetString(shellFlag)
		return ParseShell(name)
	}

	view.NewRenderer(r.stderr(), r.NoColor).Notice("Trying to detect your shell")

	if r.Detector == nil {
		return 0, ErrDetectionFailed
	}
	name, err := r.Detector.Detect()
	if err != nil {
		return 0, ErrDetectionFailed
	}
	return ParseShell(name)
}

func (r *Resolver) printOnly(executed *cobra.Command, shell Shell) bool {
	if !r.Platform.Installable || !shell.Installable() {
		return true
	}
	if executed.Flags().Lookup(printFlag) == nil {
		return true
	}
	forced, _ := executed.Flags().GetBool(printFlag)
	return forced
}

func (r *Resolver) generator() Generator {
	if r.Generator == nil {
		return CobraGenerator{}
	}
	return r.Generator
}

func (r *Resolver) installer() *Installer {
	if r.Installer == nil {
		r.Installer = newInstaller(r.stderr(), r.NoColor)
	}
	return r.Installer
}

func (r *Resolver) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Resolver) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

// Invoked reports whether executed is the complete command registered on
// root. A nil root accepts the command under any root.
func Invoked(root, executed *cobra.Command) bool {
	if !isCompleteCmd(executed) {
		return false
	}
	return root == nil || executed.Parent() == root
}

// Resolve runs NewResolver().Resolve.
func Resolve(root, executed *cobra.Command) (bool, error) {
	return NewResolver().Resolve(root, executed)
}
