package testkit

import (
	"bufio"
	"strings"
)

// TaskOutcome is the status a rule reported.
type TaskOutcome string

const (
	Success TaskOutcome = "SUCCESS"
	Failed  TaskOutcome = "FAILED"
	Skipped TaskOutcome = "SKIPPED"
)

// BuildTask is one executed rule.
type BuildTask struct {
	Path    string
	Outcome TaskOutcome
}

// BuildResult is what a build printed and which rules it ran.
type BuildResult struct {
	Output string
	Error  string
	Tasks  []BuildTask
}

// Task returns the task with the given path, or nil.
func (r *BuildResult) Task(path string) *BuildTask {
	for i := range r.Tasks {
		if r.Tasks[i].Path == path {
			return &r.Tasks[i]
		}
	}
	return nil
}

// TasksWithOutcome returns the tasks that ended with outcome, in execution
// order.
func (r *BuildResult) TasksWithOutcome(outcome TaskOutcome) []BuildTask {
	var tasks []BuildTask
	for _, t := range r.Tasks {
		if t.Outcome == outcome {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// TaskPaths returns the paths of the tasks that ended with outcome.
func (r *BuildResult) TaskPaths(outcome TaskOutcome) []string {
	var paths []string
	for _, t := range r.TasksWithOutcome(outcome) {
		paths = append(paths, t.Path)
	}
	return paths
}

const taskPrefix = "> Rule "

// parseTasks reads `> Rule <name> <OUTCOME>` lines from build output.
func parseTasks(output string) []BuildTask {
	var tasks []BuildTask
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line, ok := strings.CutPrefix(scanner.Text(), taskPrefix)
		if !ok {
			continue
		}
		i := strings.LastIndexByte(line, ' ')
		if i <= 0 {
			continue
		}
		tasks = append(tasks, BuildTask{Path: line[:i], Outcome: TaskOutcome(line[i+1:])})
	}
	return tasks
}
