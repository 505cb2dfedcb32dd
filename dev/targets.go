//go:build targ

package main

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/fatih/color"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/file"
	"github.com/toejough/targ/sh"
)

// Check tidies, formats, tests and lints the module.
func Check() error {
	announce("full check")

	return summarize(targ.Deps(Tidy, ReorderDecls, Coverage, Lint))
}

// CheckForFail runs the read-only checks, cheapest first.
func CheckForFail() error {
	announce("read-only check")

	return summarize(targ.Deps(ReorderDeclsCheck, Lint, Coverage))
}

// Coverage runs Test and fails when any function is below the coverage floor.
func Coverage() error {
	if err := targ.Deps(Test); err != nil {
		return err
	}

	announce("coverage floor")

	report, err := capture("go", "tool", "cover", "-func="+coverProfile)
	if err != nil {
		return err
	}

	worst, err := leastCovered(report)
	if err != nil {
		return err
	}

	if worst.percent < coverageFloor {
		return fmt.Errorf("%s is at %.1f%%, below the %.1f%% floor", worst.name, worst.percent, coverageFloor)
	}

	return nil
}

// Fuzz gives each delimiter fuzz target a short run.
func Fuzz() error {
	for _, target := range fuzzTargets {
		announce("fuzz " + target)

		if err := sh.Run("go", "test", "-run=^$", "-fuzz=^"+target+"$", "-fuzztime=30s", "./internal/delim"); err != nil {
			return fmt.Errorf("fuzzing %s: %w", target, err)
		}
	}

	return nil
}

// Lint runs golangci-lint with the module's config.
func Lint() error {
	announce("lint")

	return sh.Run("golangci-lint", "run", "-c", "dev/golangci.toml")
}

// Mutate runs the ooze mutation suite once the plain tests pass.
func Mutate() error {
	if err := targ.Deps(Test); err != nil {
		return err
	}

	announce("mutation")

	return sh.Run("go", "test", "-tags=mutation", "-timeout=20m", "-run=^TestMutation$", ".", "-ooze.v")
}

// ReorderDecls rewrites source files into the conventional declaration order.
func ReorderDecls() error {
	announce("reorder declarations")

	changed, err := reorderSources(func(path, before, after string) error {
		return os.WriteFile(path, []byte(after), 0o600)
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d file(s) rewritten\n", len(changed))

	return nil
}

// ReorderDeclsCheck prints a diff for every file out of declaration order.
func ReorderDeclsCheck() error {
	announce("declaration order")

	changed, err := reorderSources(func(path, before, after string) error {
		fmt.Println(textdiff.Unified(path, path+" (reordered)", before, after))

		return nil
	})
	if err != nil {
		return err
	}

	if len(changed) > 0 {
		return fmt.Errorf("out of declaration order: %s", strings.Join(changed, ", "))
	}

	return nil
}

// Test runs every package under the race detector and records coverage.
func Test() error {
	announce("tests")

	return sh.Run("go", "test", "-race", "-count=1", "-timeout=2m",
		"-coverpkg=./...", "-coverprofile="+coverProfile, "./...")
}

// Tidy prunes go.mod.
func Tidy() error {
	announce("tidy")

	return sh.Run("go", "mod", "tidy")
}

// Watch reruns Check on every source change until ctx is cancelled.
func Watch(ctx context.Context) error {
	announce("watch")

	return file.Watch(ctx, []string{"**/*.go", "**/*.toml"}, file.WatchOptions{}, func(changes file.ChangeSet) error {
		touched := slices.Concat(changes.Added, changes.Removed, changes.Modified)
		if !slices.ContainsFunc(touched, func(path string) bool { return !strings.HasSuffix(path, coverProfile) }) {
			return nil
		}

		targ.ResetDeps()

		if err := Check(); err != nil {
			fmt.Println("still watching")
		}

		return nil
	})
}

// unexported constants.
const (
	coverProfile  = "coverage.out"
	coverageFloor = 80.0
)

// unexported variables.
var (
	//nolint:gochecknoglobals // fixed list of fuzz targets
	fuzzTargets = []string{"FuzzParse", "FuzzSplit"}
)

type funcCoverage struct {
	name    string
	percent float64
}

func announce(step string) {
	color.New(color.Bold).Printf("==> %s\n", step)
}

// capture runs a command and returns its trimmed stdout; stderr passes through.
func capture(command string, args ...string) (string, error) {
	var stdout bytes.Buffer

	cmd := exec.Command(command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()

	return strings.TrimSpace(stdout.String()), err
}

// goSources lists .go files below the module root. Directories starting with "."
// or "_" are skipped, as the go tool skips them.
func goSources() ([]string, error) {
	var sources []string

	err := filepath.WalkDir(".", func(path string, entry fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case entry.IsDir() && path != "." && strings.IndexAny(entry.Name()[:1], "._") == 0:
			return filepath.SkipDir
		case !entry.IsDir() && strings.HasSuffix(path, ".go"):
			sources = append(sources, path)
		}

		return nil
	})

	return sources, err
}

// leastCovered parses `go tool cover -func` output and returns its lowest entry.
func leastCovered(report string) (funcCoverage, error) {
	worst := funcCoverage{name: "(none)", percent: 100}

	for line := range strings.SplitSeq(report, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] == "total:" {
			continue
		}

		percent, err := strconv.ParseFloat(strings.TrimSuffix(fields[len(fields)-1], "%"), 64)
		if err != nil {
			return worst, fmt.Errorf("parsing coverage line %q: %w", line, err)
		}

		if percent < worst.percent {
			worst = funcCoverage{name: fields[0] + " " + fields[1], percent: percent}
		}
	}

	return worst, nil
}

// reorderSources calls onChange for each file whose reordered text differs and
// returns the paths of those files.
func reorderSources(onChange func(path, before, after string) error) ([]string, error) {
	sources, err := goSources()
	if err != nil {
		return nil, err
	}

	var changed []string

	for _, path := range sources {
		before, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		after, err := reorder.Source(string(before))
		if err != nil {
			color.Yellow("skipping %s: %v", path, err)

			continue
		}

		if after == string(before) {
			continue
		}

		if err := onChange(path, string(before), after); err != nil {
			return nil, err
		}

		changed = append(changed, path)
	}

	return changed, nil
}

// summarize prints a coloured verdict and passes err through.
func summarize(err error) error {
	if err != nil {
		color.Red("FAIL: %v", err)

		return err
	}

	color.Green("PASS")

	return nil
}
