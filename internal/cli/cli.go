package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/modelgrid/internal/app"
	"github.com/specialistvlad/modelgrid/internal/hcl"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// envDefaults are read from the environment before flags are parsed; a flag
// given on the command line always wins.
type envDefaults struct {
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string   `env:"LOG_FORMAT" envDefault:"text"`
	Workers      int      `env:"WORKERS" envDefault:"4"`
	ReportFormat string   `env:"REPORT_FORMAT" envDefault:"text"`
	Classpath    []string `env:"CLASSPATH" envSeparator:","`
}

// Parse processes command-line arguments on top of the MODELGRID_*
// environment. It returns a populated Config, a boolean indicating if the
// program should exit cleanly, or an ExitError.
func Parse(args []string, environ map[string]string, output io.Writer) (*app.Config, bool, error) {
	defaults, err := env.ParseAsWithOptions[envDefaults](env.Options{Prefix: "MODELGRID_", Environment: environ})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment: %v", err)}
	}

	flagSet := flag.NewFlagSet("modelgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
modelgrid - evaluates typed model graphs declared in HCL.

Usage:
  modelgrid [options] MODEL_PATH...

Arguments:
  MODEL_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", defaults.Workers, "Number of concurrent workers for rule execution.")
	reportFlag := flagSet.String("report", defaults.ReportFormat, "Report format. Options: 'text', 'json', 'yaml'.")
	describeFlag := flagSet.String("describe", "", "Print the property schema of the named type and exit.")
	classpathFlag := flagSet.String("classpath", strings.Join(defaults.Classpath, ","), "Comma-separated extra model locations.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var classpath []string
	for _, p := range strings.Split(*classpathFlag, ",") {
		if p = strings.TrimSpace(p); p != "" {
			classpath = append(classpath, p)
		}
	}

	config, err := app.NewConfig(app.Config{
		ModelPaths:   flagSet.Args(),
		Classpath:    classpath,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		WorkerCount:  *workersFlag,
		ReportFormat: strings.ToLower(*reportFlag),
		Describe:     *describeFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}

// Run parses args against environ, builds the application and runs it.
// Reports go to stdout; logs and usage go to stderr.
func Run(ctx context.Context, args []string, environ map[string]string, stdout, stderr io.Writer) error {
	cfg, shouldExit, err := Parse(args, environ, stderr)
	if err != nil || shouldExit {
		return err
	}

	a, err := app.NewApp(stdout, stderr, cfg, hcl.NewLoader())
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
