// Package cmd wires the dirtree CLI: flag parsing, index lifecycle
// (cache load, seed, save) and the choice between the interactive
// browser and the non-interactive dump formats.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/oakwood-commons/dirtree/internal/cel"
	"github.com/oakwood-commons/dirtree/internal/fileops"
	"github.com/oakwood-commons/dirtree/internal/nav"
	"github.com/oakwood-commons/dirtree/internal/tree"
	"github.com/oakwood-commons/dirtree/internal/ui"
	"github.com/oakwood-commons/dirtree/pkg/logger"
	"github.com/oakwood-commons/dirtree/pkg/settings"
)

const defaultTermWidth = 80

var (
	flagCache       string
	flagPath        string
	flagNavigation  string
	flagOutput      string
	flagFilter      string
	flagNoColor     bool
	flagLogLevel    int8
	flagInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Browse a cached directory tree",
	Long: `dirtree keeps an index of discovered directories and lets you walk it
as a tree: linear or hierarchical navigation, incremental search, and
copy/move/delete on the selected directory. Without a terminal (or with
--output) it prints the index instead.`,
	Version:       settings.VersionInformation.BuildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	registerFlags(rootCmd.Flags())
}

func registerFlags(f *pflag.FlagSet) {
	f.StringVar(&flagCache, "cache", "", "path cache file (default: user cache dir)")
	f.StringVarP(&flagPath, "path", "p", "", "directory to select at startup (default: working directory)")
	f.StringVarP(&flagNavigation, "navigation", "n", "linear", "navigation mode: linear or hierarchical")
	f.StringVarP(&flagOutput, "output", "o", "", "non-interactive output: tree, paths, json, yaml or toml")
	f.StringVar(&flagFilter, "filter", "", "CEL expression selecting entries for non-interactive output (vars: path, name, depth)")
	f.BoolVar(&flagNoColor, "no-color", false, "disable styling")
	f.Int8Var(&flagLogLevel, "log-level", 0, "minimum zap log level (negative is more verbose)")
	f.BoolVarP(&flagInteractive, "interactive", "i", false, "force the interactive browser even when stdout is not a terminal")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, _ []string) error {
	params := runParams()
	log := logger.Get(params.MinLogLevel)

	mode, err := nav.ParseMode(params.NavigationMode)
	if err != nil {
		return err
	}

	store := tree.NewStore()
	if err := store.LoadFile(params.CachePath); err != nil {
		// A missing or corrupt cache is the normal first run; start
		// from an empty index and rebuild it below.
		log.V(1).Info("tree cache not loaded", "cache", params.CachePath, "reason", err.Error())
	}
	seedIndex(store, params.StartPath)

	if flagOutput != "" || (!flagInteractive && !stdoutIsTerminal()) {
		// An explicit --path narrows the dump to that subtree.
		err := dump(cmd.OutOrStdout(), store, flagOutput, flagFilter, flagPath)
		saveIndex(cmd, store, params.CachePath)
		return err
	}

	model := ui.NewModel(ui.Options{
		Store:     store,
		Operator:  fileops.OS{},
		Mode:      mode,
		NoColor:   params.NoColor,
		StartPath: params.StartPath,
	})
	defer model.Close()

	ctx := settings.IntoContext(cmd.Context(), params)
	ctx = logger.WithLogger(ctx, log)
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
	)
	final, err := prog.Run()
	saveIndex(cmd, store, params.CachePath)
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	if m, ok := final.(*ui.Model); ok && params.PrintSelection && m.Result() != "" {
		fmt.Fprintln(cmd.OutOrStdout(), m.Result())
	}
	return nil
}

// runParams folds the flag values into one Run settings value.
func runParams() *settings.Run {
	params := settings.NewCliParams()
	params.MinLogLevel = flagLogLevel
	params.NavigationMode = flagNavigation
	params.NoColor = flagNoColor

	params.CachePath = flagCache
	if params.CachePath == "" {
		params.CachePath = defaultCachePath()
	}

	params.StartPath = flagPath
	if params.StartPath == "" {
		if wd, err := os.Getwd(); err == nil {
			params.StartPath = wd
		} else {
			params.StartPath = "/"
		}
	}
	return params
}

// saveIndex persists the cache at teardown on every exit path.
// Surfaced to the operator, never fatal.
func saveIndex(cmd *cobra.Command, store *tree.Store, path string) {
	if err := store.SaveFile(path); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
}

// seedIndex makes sure the start directory and its ancestors are
// indexed so a first run shows something useful, then refreshes the
// start directory's children.
func seedIndex(store *tree.Store, startPath string) {
	abs, err := filepath.Abs(startPath)
	if err != nil {
		return
	}
	abs = filepath.ToSlash(abs)
	store.Add(abs)
	// Best effort: an unreadable start directory still browses fine.
	_ = store.Rescan(abs)
}

func defaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), settings.CliBinaryName, "tree")
	}
	return filepath.Join(base, settings.CliBinaryName, "tree")
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// compileFilter turns the --filter flag into an entry predicate; an
// empty expression keeps every entry.
func compileFilter(expr string) (func(*tree.Entry) bool, error) {
	if expr == "" {
		return nil, nil
	}
	f, err := cel.NewFilter(expr)
	if err != nil {
		return nil, err
	}
	return f.Predicate(), nil
}
