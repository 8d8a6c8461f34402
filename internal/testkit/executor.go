package testkit

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

// EntryPoint is the in-process form of the modelgrid command, as
// implemented by cli.Run.
type EntryPoint func(ctx context.Context, args []string, environ map[string]string, stdout, stderr io.Writer) error

// invocation is everything an executor needs for one build.
type invocation struct {
	binary     string
	testKitDir string
	projectDir string
	args       []string // launch arguments, then arguments, then the project dir
	classpath  []string
}

type executionResult struct {
	stdout string
	stderr string
	err    error
}

func (inv invocation) environ() map[string]string {
	env := map[string]string{"TMPDIR": inv.testKitDir}
	if len(inv.classpath) > 0 {
		env["MODELGRID_CLASSPATH"] = strings.Join(inv.classpath, ",")
	}
	return env
}

// runProcess launches the binary as a child process working in the project
// directory.
func runProcess(ctx context.Context, inv invocation) *executionResult {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, inv.binary, inv.args...)
	cmd.Dir = inv.projectDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = os.Environ()
	for k, v := range inv.environ() {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	err := cmd.Run()
	return &executionResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// runInProcess calls the entry point directly, so a debugger attached to
// the test also stops inside the build.
func runInProcess(ctx context.Context, entry EntryPoint, inv invocation) *executionResult {
	var stdout, stderr bytes.Buffer
	err := entry(ctx, inv.args, inv.environ(), &stdout, &stderr)
	return &executionResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
