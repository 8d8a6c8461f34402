// Package testkit drives modelgrid builds from tests. A Runner launches the
// modelgrid binary against a project directory (or, in debug mode, calls
// the CLI entry point in-process), captures both output streams, and parses
// the rule outcomes it printed:
//
//	result, err := testkit.NewRunner("bin/modelgrid").
//		WithProjectDir(dir).
//		WithArguments("-report", "json").
//		Build(ctx)
//
// Build fails with an *UnexpectedBuildFailureError when the build fails, and
// BuildAndFail with an *UnexpectedBuildSuccessError when it succeeds. Both
// carry the captured streams in their message.
package testkit
