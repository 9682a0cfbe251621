package cmd

import (
	"fmt"
	"io"

	"github.com/Iron-Ham/tasker/internal/config"
	"github.com/Iron-Ham/tasker/internal/errors"
	"github.com/Iron-Ham/tasker/internal/registry"
	"github.com/Iron-Ham/tasker/internal/styles"
	"github.com/Iron-Ham/tasker/internal/task"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var showMatch string

var showCmd = &cobra.Command{
	Use:   "show <filename>",
	Short: "Print the tasks stored in a file",
	Long: `Load <filename>.json from the storage directory and print its tasks
without starting the interactive menu.

Use --match to print only tasks whose name matches a glob pattern, e.g.:
  tasker show work --match 'release *'
  tasker show home --match '{buy,order} *'`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showMatch, "match", "m", "", "only show tasks whose name matches this glob pattern")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var matcher glob.Glob
	if showMatch != "" {
		g, err := glob.Compile(showMatch)
		if err != nil {
			return errors.Wrapf(err, "invalid match pattern %q", showMatch)
		}
		matcher = g
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	reg := registry.New(afero.NewOsFs(), cfg.Storage.ResolveDir(), logger)
	if _, err := reg.Load(args[0]); err != nil {
		return err
	}

	var shown []task.Task
	for _, t := range reg.Tasks() {
		if matcher == nil || matcher.Match(t.Name()) {
			shown = append(shown, t)
		}
	}

	out := cmd.OutOrStdout()
	for _, t := range shown {
		fmt.Fprintln(out, t.Describe())
	}
	printSummary(out, styles.New(out, cfg.Console.Color), shown, reg.Len())
	return nil
}

// printSummary writes a one-line count of the shown tasks per priority.
func printSummary(w io.Writer, st *styles.Styles, shown []task.Task, total int) {
	counts := make(map[task.Priority]int)
	for _, t := range shown {
		counts[t.Priority()]++
	}

	fmt.Fprintf(w, "%d of %d tasks", len(shown), total)
	for _, p := range task.Priorities() {
		fmt.Fprintf(w, " | %s: %d", st.Priority(p), counts[p])
	}
	fmt.Fprintln(w)
}
