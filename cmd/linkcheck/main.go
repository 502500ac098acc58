// Command linkcheck validates the link registries of stored experiment
// containers: every registry entry must address a known collection and its
// matrix must stay within the current sample count and collection length.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"msexperiment/internal/infra/persistence/sqlite"
	"msexperiment/pkg/experiment"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("linkcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var storePath string
	var snapshotPath string
	var name string
	fs.StringVar(&storePath, "store", "", "path to a sqlite store file")
	fs.StringVar(&snapshotPath, "snapshot", "", "path to a JSON snapshot of named experiments")
	fs.StringVar(&name, "experiment", "", "check a single experiment by name")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if (storePath == "") == (snapshotPath == "") {
		fmt.Fprintln(stderr, "linkcheck: exactly one of -store or -snapshot is required")
		return 2
	}

	experiments, err := loadExperiments(storePath, snapshotPath)
	if err != nil {
		fmt.Fprintf(stderr, "linkcheck: %v\n", err)
		return 2
	}
	if name != "" {
		exp, ok := experiments[name]
		if !ok {
			fmt.Fprintf(stderr, "linkcheck: experiment %q not found\n", name)
			return 2
		}
		experiments = map[string]experiment.Experiment{name: exp}
	}

	violations := 0
	names := make([]string, 0, len(experiments))
	for n := range experiments {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		exp := experiments[n]
		errs := exp.CheckLinks()
		if len(errs) == 0 {
			fmt.Fprintf(stdout, "%s: ok (%d links)\n", n, len(exp.LinkedTargets()))
			continue
		}
		violations += len(errs)
		for _, err := range errs {
			fmt.Fprintf(stderr, "%s: %v\n", n, err)
		}
	}
	if violations > 0 {
		fmt.Fprintf(stderr, "linkcheck: %d violation(s)\n", violations)
		return 1
	}
	return 0
}

func loadExperiments(storePath, snapshotPath string) (map[string]experiment.Experiment, error) {
	if storePath != "" {
		store, err := sqlite.NewStore(storePath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = store.Close() }()
		out := make(map[string]experiment.Experiment)
		for _, named := range store.ListExperiments() {
			out[named.Name] = named.Experiment
		}
		return out, nil
	}
	payload, err := os.ReadFile(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var out map[string]experiment.Experiment
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return out, nil
}
