// Package app assembles a modelgrid run: it loads the model files, builds
// the type universe and the model graph, runs the declared rules through
// the executor and renders the resulting graph as a report. It knows nothing
// about flags or processes; internal/cli and cmd/cli sit on top of it.
package app
