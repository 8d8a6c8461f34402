package testkit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/modelgrid/internal/cli"
)

type runnerEnv struct {
	Debug bool `env:"MODELGRID_TESTKIT_DEBUG" envDefault:"false"`
}

// Runner configures and launches builds. The With methods mutate and return
// the receiver.
type Runner struct {
	binary          string
	entry           EntryPoint
	testKitDir      string
	projectDir      string
	arguments       []string
	launchArguments []string
	classpath       []string
	debug           bool
}

// NewRunner returns a runner for the given modelgrid binary. Debug mode
// defaults to MODELGRID_TESTKIT_DEBUG.
func NewRunner(binary string) *Runner {
	cfg, err := env.ParseAs[runnerEnv]()
	if err != nil {
		cfg = runnerEnv{}
	}
	return &Runner{
		binary:     binary,
		entry:      cli.Run,
		testKitDir: filepath.Join(os.TempDir(), ".modelgrid-test-kit"),
		debug:      cfg.Debug,
	}
}

// WithProjectDir sets the directory the build runs in. Required.
func (r *Runner) WithProjectDir(dir string) *Runner {
	r.projectDir = dir
	return r
}

func (r *Runner) ProjectDir() string { return r.projectDir }

// WithArguments replaces the build arguments.
func (r *Runner) WithArguments(args ...string) *Runner {
	r.arguments = slices.Clone(args)
	return r
}

func (r *Runner) Arguments() []string { return slices.Clone(r.arguments) }

// WithLaunchArguments replaces the arguments passed ahead of the build
// arguments.
func (r *Runner) WithLaunchArguments(args ...string) *Runner {
	r.launchArguments = slices.Clone(args)
	return r
}

// WithClasspath replaces the extra model locations handed to the build.
func (r *Runner) WithClasspath(paths ...string) *Runner {
	r.classpath = slices.Clone(paths)
	return r
}

func (r *Runner) Classpath() []string { return slices.Clone(r.classpath) }

// WithDebug selects in-process execution.
func (r *Runner) WithDebug(debug bool) *Runner {
	r.debug = debug
	return r
}

func (r *Runner) IsDebug() bool { return r.debug }

// WithTestKitDir sets the working directory for build scratch files. An
// empty dir makes the next build fail with an
// *InvalidRunnerConfigurationError.
func (r *Runner) WithTestKitDir(dir string) *Runner {
	r.testKitDir = dir
	return r
}

// WithEntryPoint replaces the function debug mode calls.
func (r *Runner) WithEntryPoint(entry EntryPoint) *Runner {
	r.entry = entry
	return r
}

// Build runs the build and expects it to succeed.
func (r *Runner) Build(ctx context.Context) (*BuildResult, error) {
	result, res, err := r.run(ctx)
	if err != nil {
		return nil, err
	}
	if res.err != nil {
		return result, &UnexpectedBuildFailureError{
			Message: diagnostics("Unexpected build execution failure", r.projectDir, r.arguments, res),
			Result:  result,
		}
	}
	return result, nil
}

// BuildAndFail runs the build and expects it to fail.
func (r *Runner) BuildAndFail(ctx context.Context) (*BuildResult, error) {
	result, res, err := r.run(ctx)
	if err != nil {
		return nil, err
	}
	if res.err == nil {
		return result, &UnexpectedBuildSuccessError{
			Message: diagnostics("Unexpected build execution success", r.projectDir, r.arguments, res),
			Result:  result,
		}
	}
	return result, nil
}

func (r *Runner) run(ctx context.Context) (*BuildResult, *executionResult, error) {
	if r.projectDir == "" {
		return nil, nil, &InvalidRunnerConfigurationError{Message: "Please specify a project directory before executing the build"}
	}
	testKitDir, err := prepareTestKitDir(r.testKitDir)
	if err != nil {
		return nil, nil, err
	}
	// The child process runs inside the project directory, so every path
	// handed to it must already be absolute.
	projectDir, err := filepath.Abs(r.projectDir)
	if err != nil {
		return nil, nil, &InvalidRunnerConfigurationError{Message: "Unable to resolve project directory: " + r.projectDir}
	}
	classpath := make([]string, len(r.classpath))
	for i, p := range r.classpath {
		if classpath[i], err = filepath.Abs(p); err != nil {
			return nil, nil, &InvalidRunnerConfigurationError{Message: "Unable to resolve classpath entry: " + p}
		}
	}

	inv := invocation{
		binary:     r.binary,
		testKitDir: testKitDir,
		projectDir: projectDir,
		args:       slices.Concat(r.launchArguments, r.arguments, []string{projectDir}),
		classpath:  classpath,
	}

	var res *executionResult
	if r.debug {
		res = runInProcess(ctx, r.entry, inv)
	} else {
		res = runProcess(ctx, inv)
	}
	return &BuildResult{Output: res.stdout, Error: res.stderr, Tasks: parseTasks(res.stdout)}, res, nil
}

// prepareTestKitDir returns the absolute test-kit directory, creating it
// when missing.
func prepareTestKitDir(dir string) (string, error) {
	if dir == "" {
		return "", &InvalidRunnerConfigurationError{Message: "Please specify a test kit directory before executing the build"}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &InvalidRunnerConfigurationError{Message: fmt.Sprintf("Unable to resolve test kit directory: %s", dir)}
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		if !isWritable(abs) {
			return "", &InvalidRunnerConfigurationError{Message: "Unable to write to test kit directory: " + abs}
		}
		return abs, nil
	case err == nil:
		return "", &InvalidRunnerConfigurationError{Message: "Unable to use non-directory as test kit directory: " + abs}
	case !errors.Is(err, os.ErrNotExist):
		return "", &InvalidRunnerConfigurationError{Message: "Unable to create test kit directory: " + abs}
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", &InvalidRunnerConfigurationError{Message: "Unable to create test kit directory: " + abs}
	}
	return abs, nil
}

func isWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
