package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/tasker/internal/config"
	"github.com/Iron-Ham/tasker/internal/errors"
	"github.com/Iron-Ham/tasker/internal/registry"
	"github.com/Iron-Ham/tasker/internal/task"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	if args == nil {
		args = []string{}
	}
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// setupTestEnvironment isolates config lookup and global state and returns
// a fresh storage directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	viper.Reset()
	showMatch = ""
	t.Cleanup(func() {
		viper.Reset()
		showMatch = ""
		rootCmd.SetIn(nil)
	})

	dir := t.TempDir()
	viper.Set("storage.dir", dir)
	return dir
}

func seedFile(t *testing.T, dir, filename string, tasks ...task.Task) {
	t.Helper()
	reg := registry.New(afero.NewOsFs(), dir, nil)
	for _, tk := range tasks {
		reg.Add(tk)
	}
	if _, err := reg.Save(filename); err != nil {
		t.Fatalf("Save(%q) error = %v", filename, err)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "tasker" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "tasker")
	}

	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range []string{"show", "config"} {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestRootCommand_InteractiveSession(t *testing.T) {
	dir := setupTestEnvironment(t)

	rootCmd.SetIn(strings.NewReader("1\nBuy milk\n2%\nhigh\n6\nshopping\nq\n"))
	output, err := executeCommand(rootCmd)
	if err != nil {
		t.Fatalf("interactive session failed: %v\n%s", err, output)
	}

	if !strings.Contains(output, "1. Add task\n") {
		t.Errorf("output missing menu:\n%s", output)
	}
	if !strings.Contains(output, "Data saved\n") {
		t.Errorf("output missing save confirmation:\n%s", output)
	}

	reg := registry.New(afero.NewOsFs(), dir, nil)
	if _, err := reg.Load("shopping"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, ok := reg.Get(0)
	if !ok || got.Name() != "Buy milk" || got.Priority() != task.PriorityHigh {
		t.Errorf("saved task = %+v", got)
	}
}

func TestRootCommand_RejectsArguments(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := executeCommand(rootCmd, "unexpected"); err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestRootCommand_WritesLogFile(t *testing.T) {
	setupTestEnvironment(t)
	logFile := filepath.Join(t.TempDir(), "logs", "tasker.log")
	viper.Set("logging.enabled", true)
	viper.Set("logging.file", logFile)

	rootCmd.SetIn(strings.NewReader("4\nGhost\n"))
	if output, err := executeCommand(rootCmd); err != nil {
		t.Fatalf("interactive session failed: %v\n%s", err, output)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	for _, want := range []string{`"msg":"console session started"`, `"msg":"command failed"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %s:\n%s", want, data)
		}
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	setupTestEnvironment(t)
	viper.Set("logging.level", "loud")

	rootCmd.SetIn(strings.NewReader(""))
	if _, err := executeCommand(rootCmd); err == nil {
		t.Error("expected error for invalid logging level")
	}
}

func TestShowCommand(t *testing.T) {
	created := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.Local)
	tasks := []task.Task{
		task.NewAt("Buy milk", "2%", task.PriorityHigh, created),
		task.NewAt("Walk dog", "", task.PriorityLow, created),
		task.NewAt("Buy bread", "rye", task.PriorityMedium, created),
	}

	tests := []struct {
		name     string
		match    string
		contains []string
		absent   []string
	}{
		{
			name: "all tasks",
			contains: []string{
				"Name: Buy milk | Priority: High | Added: 02.01.2024 at 03:04:05\nDescription: 2%\n\n",
				"Name: Walk dog",
				"Name: Buy bread",
				"3 of 3 tasks | Low: 1 | Medium: 1 | High: 1\n",
			},
		},
		{
			name:     "glob filter",
			match:    "Buy *",
			contains: []string{"Name: Buy milk", "Name: Buy bread", "2 of 3 tasks | Low: 0 | Medium: 1 | High: 1\n"},
			absent:   []string{"Walk dog"},
		},
		{
			name:     "alternatives",
			match:    "{Walk,Run} *",
			contains: []string{"Name: Walk dog", "1 of 3 tasks"},
			absent:   []string{"Buy milk"},
		},
		{
			name:     "no match",
			match:    "Sleep*",
			contains: []string{"0 of 3 tasks"},
			absent:   []string{"Name: "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupTestEnvironment(t)
			seedFile(t, dir, "home", tasks...)

			args := []string{"show", "home"}
			if tt.match != "" {
				args = append(args, "--match", tt.match)
			}
			output, err := executeCommand(rootCmd, args...)
			if err != nil {
				t.Fatalf("show failed: %v\n%s", err, output)
			}

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(output, unwanted) {
					t.Errorf("output unexpectedly contains %q:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestShowCommand_InvalidPattern(t *testing.T) {
	dir := setupTestEnvironment(t)
	seedFile(t, dir, "home")

	_, err := executeCommand(rootCmd, "show", "home", "--match", "[a")
	if err == nil || !strings.HasPrefix(err.Error(), `invalid match pattern "[a": `) {
		t.Errorf("show error = %v, want invalid match pattern", err)
	}
}

func TestRootCommand_UnwritableLogFile(t *testing.T) {
	setupTestEnvironment(t)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	viper.Set("logging.enabled", true)
	viper.Set("logging.file", filepath.Join(blocker, "tasker.log"))

	rootCmd.SetIn(strings.NewReader(""))
	_, err := executeCommand(rootCmd)
	if err == nil || !strings.HasPrefix(err.Error(), "failed to start logging: ") {
		t.Errorf("error = %v, want failed to start logging", err)
	}
}

func TestShowCommand_MissingFile(t *testing.T) {
	setupTestEnvironment(t)

	_, err := executeCommand(rootCmd, "show", "nope")
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("show error = %v, want ErrFileNotFound", err)
	}
}

func TestShowCommand_RequiresFilename(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := executeCommand(rootCmd, "show"); err == nil {
		t.Error("expected error without filename")
	}
}

func TestConfigCommands(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if !strings.Contains(output, "Default path: "+config.ConfigFile()) {
		t.Errorf("config path output = %q", output)
	}

	output, err = executeCommand(rootCmd, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"Config file: (none - using defaults)", "storage:", "show_menu_after_command: false", "max_backups: 3"} {
		if !strings.Contains(output, want) {
			t.Errorf("config show output missing %q:\n%s", want, output)
		}
	}

	if output, err = executeCommand(rootCmd, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v\n%s", err, output)
	}
	data, err := os.ReadFile(config.ConfigFile())
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	var written config.Config
	if err := yaml.Unmarshal(data, &written); err != nil {
		t.Fatalf("config file is not valid YAML: %v", err)
	}
	if written != *config.Default() {
		t.Errorf("config file = %+v, want defaults %+v", written, *config.Default())
	}

	if _, err := executeCommand(rootCmd, "config", "init"); err == nil {
		t.Error("expected config init to refuse overwriting")
	}
}
