package testkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseTasks(t *testing.T) {
	t.Parallel()

	output := "noise\n> Rule addCore SUCCESS\n> Rule broken FAILED\n>Rule bogus SUCCESS\n> Rule later SKIPPED\n"

	got := parseTasks(output)

	want := []BuildTask{{"addCore", Success}, {"broken", Failed}, {"later", Skipped}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildResult_Queries(t *testing.T) {
	t.Parallel()

	r := &BuildResult{Tasks: []BuildTask{{"a", Success}, {"b", Failed}, {"c", Success}}}

	assert.Equal(t, []string{"a", "c"}, r.TaskPaths(Success))
	assert.Equal(t, []BuildTask{{"b", Failed}}, r.TasksWithOutcome(Failed))
	assert.Nil(t, r.TaskPaths(Skipped))
	assert.Equal(t, Failed, r.Task("b").Outcome)
	assert.Nil(t, r.Task("missing"))
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		res  *executionResult
		want string
	}{
		{
			name: "without cause",
			res:  &executionResult{stdout: "out", stderr: "err"},
			want: "Unexpected build execution success in /work/project with arguments [-report, json]\n\n" +
				"Output:\nout\n-----\nError:\nerr\n-----",
		},
		{
			name: "reason is the root cause",
			res:  &executionResult{stdout: "", stderr: "boom", err: fmt.Errorf("rule x: %w", fmt.Errorf("append #0: %w", errors.New("disk full")))},
			want: "Unexpected build execution success in /work/project with arguments [-report, json]\n\n" +
				"Output:\n\n-----\nError:\nboom\n-----\nReason:\ndisk full\n-----",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := diagnostics("Unexpected build execution success", "/work/project", []string{"-report", "json"}, tc.res)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRootCause_FollowsJoinedErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("root")
	err := errors.Join(fmt.Errorf("rule a: %w", cause), errors.New("rule b"))

	assert.Same(t, cause, rootCause(err))
}
