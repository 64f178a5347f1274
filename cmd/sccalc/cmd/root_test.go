package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type result struct {
	stdout string
	stderr string
	code   int
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// TestMain points HOME at a temp directory so history and config discovery
// never touch the real home.
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "sccalc-home")
	if err != nil {
		panic(err)
	}
	os.Setenv("HOME", home)
	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

// execute runs the command tree and captures its output
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	color.NoColor = true
	stdinIsTerminal = func() bool { return false }

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))

	code := ExecuteArgs(args)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.calc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestRoot_Dispatch(t *testing.T) {
	script := writeScript(t, "x = 2\n!print done\n!exit x\n")

	tests := []struct {
		name   string
		stdin  string
		args   []string
		stdout string
		code   int
	}{
		{"expression argument", "", []string{"--no-history", "1 + 2"}, "3\n", 0},
		{"expression words", "", []string{"--no-history", "2", "*", "21"}, "42\n", 0},
		{"script file", "", []string{script}, "2\ndone\n", 2},
		{"stdin script", "!print hi\ny = 5\n", []string{}, "hi\n5\n", 0},
		{"bare version", "", []string{"__VERSION__"}, "sccalc v1.0.0\n", 0},
		{"no echo", "", []string{"--no-history", "--no-echo", "7"}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.stdin, tt.args...)
			if res.code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr %q)", res.code, tt.code, res.stderr)
			}
			if res.stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.stdout)
			}
		})
	}
}

func TestRoot_NegativeExpressions(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stdout string
	}{
		{"root", []string{"--no-history", "-3^2"}, "9\n"},
		{"root without flags", []string{"-3^2"}, "9\n"},
		{"eval", []string{"--no-history", "eval", "-3^2"}, "9\n"},
		{"eval words", []string{"--no-history", "eval", "-2", "*", "-3"}, "6\n"},
		{"group", []string{"--no-history", "-(2+3)"}, "-5\n"},
		{"decimal", []string{"--no-history", "-.5"}, "-0.5\n"},
		{"explicit separator kept", []string{"--no-history", "eval", "--", "-3^2"}, "9\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			if res.code != 0 {
				t.Errorf("exit code = %d, want 0 (stderr %q)", res.code, res.stderr)
			}
			if res.stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.stdout)
			}
		})
	}
}

func TestProtectExpressions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"negative number", []string{"-3^2"}, []string{"--", "-3^2"}},
		{"after flags", []string{"--no-history", "eval", "-3"}, []string{"--no-history", "eval", "--", "-3"}},
		{"negated name", []string{"-x"}, []string{"--", "-x"}},
		{"shorthand flag", []string{"-v"}, []string{"-v"}},
		{"long flag value", []string{"--config", "-1.toml"}, []string{"--config", "-1.toml"}},
		{"shorthand flag value", []string{"history", "list", "-n", "5"}, []string{"history", "list", "-n", "5"}},
		{"stdin dash", []string{"run", "-"}, []string{"run", "-"}},
		{"already separated", []string{"--", "-3"}, []string{"--", "-3"}},
		{"plain expression", []string{"1 + 2"}, []string{"1 + 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := protectExpressions(tt.args)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") || len(got) != len(tt.want) {
				t.Errorf("protectExpressions(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestEval(t *testing.T) {
	res := execute(t, "", "--no-history", "eval", "2", "^", "10")
	if res.code != 0 || res.stdout != "1024\n" {
		t.Errorf("eval = %+v, want 1024", res)
	}
}

func TestEval_Error(t *testing.T) {
	res := execute(t, "", "--no-history", "eval", "1 / 0")

	if res.code != 1 {
		t.Errorf("exit code = %d, want 1", res.code)
	}
	if res.stdout != "" {
		t.Errorf("stdout = %q, want empty", res.stdout)
	}
	if !strings.HasPrefix(res.stderr, "Input had errors, no value returned\nError: ") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestEval_RequiresArgument(t *testing.T) {
	res := execute(t, "", "eval")
	if res.code != 1 || !strings.Contains(res.stderr, "Error:") {
		t.Errorf("eval without args = %+v", res)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		args     []string
		code     int
		contains string
		absent   string
	}{
		{"errors give exit 1", "1 / 0\n!print after\n", nil, 1, "after", ""},
		{"strict stops", "1 / 0\n!print after\n", []string{"--strict"}, 1, "", "after"},
		{"explicit exit", "!exit 4\n", nil, 4, "", ""},
		{"step limit", "i = 0\n!while i < 10\ni = i + 1\n!endwhile\n", []string{"--max-steps", "5"}, 1, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, tt.source)
			args := append([]string{"run", path}, tt.args...)
			res := execute(t, "", args...)

			if res.code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr %q)", res.code, tt.code, res.stderr)
			}
			if tt.contains != "" && !strings.Contains(res.stdout, tt.contains) {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.contains)
			}
			if tt.absent != "" && strings.Contains(res.stdout, tt.absent) {
				t.Errorf("stdout = %q, must not contain %q", res.stdout, tt.absent)
			}
		})
	}
}

func TestRun_StepLimitMessage(t *testing.T) {
	path := writeScript(t, "!while 1 > 0\n!endwhile\n")
	res := execute(t, "", "run", path, "--max-steps", "3")
	if !strings.Contains(res.stderr+res.stdout, "step limit of 3 exceeded") {
		t.Errorf("output = %q / %q", res.stdout, res.stderr)
	}
}

func TestRun_Stdin(t *testing.T) {
	res := execute(t, "!print from stdin\n", "run", "-")
	if res.code != 0 || res.stdout != "from stdin\n" {
		t.Errorf("run - = %+v", res)
	}
}

func TestRun_MissingFile(t *testing.T) {
	res := execute(t, "", "run", filepath.Join(t.TempDir(), "missing.calc"))
	if res.code != 1 || !strings.Contains(res.stderr, "failed to read script") {
		t.Errorf("run missing = %+v", res)
	}
}

func TestRun_WatchRequiresFile(t *testing.T) {
	res := execute(t, "1+1\n", "run", "--watch", "-")
	if res.code != 1 || !strings.Contains(res.stderr, "--watch requires a script file") {
		t.Errorf("run --watch - = %+v", res)
	}
}

func TestVersion(t *testing.T) {
	res := execute(t, "", "version")
	if !strings.Contains(res.stdout, "sccalc v") || !strings.Contains(res.stdout, "Script Version: 1") {
		t.Errorf("version = %q", res.stdout)
	}

	res = execute(t, "", "--version")
	if !strings.Contains(res.stdout, "Script Version: 1") {
		t.Errorf("--version = %q", res.stdout)
	}
}

func TestReference(t *testing.T) {
	res := execute(t, "", "reference")
	for _, want := range []string{"Constants:", "Unary Functions", "Script commands", "!while"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("reference missing %q", want)
		}
	}
}

func TestHistory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if res := execute(t, "", "eval", "6 * 7"); res.code != 0 {
		t.Fatalf("eval = %+v", res)
	}
	if res := execute(t, "", "eval", "1 / 0"); res.code != 1 {
		t.Fatalf("eval = %+v", res)
	}

	res := execute(t, "", "history", "list")
	if !strings.Contains(res.stdout, "6 * 7") || !strings.Contains(res.stdout, "= 42") {
		t.Errorf("history list = %q", res.stdout)
	}
	if !strings.Contains(res.stdout, "Error: [") {
		t.Errorf("history list missing failed entry: %q", res.stdout)
	}

	res = execute(t, "", "history", "list", "--errors")
	if strings.Contains(res.stdout, "6 * 7") {
		t.Errorf("history list --errors = %q", res.stdout)
	}

	res = execute(t, "", "history", "stats")
	for _, want := range []string{"Evaluations: 2", "Errors:      1", "Sessions:    2", "Database:    ", "eval   2"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("history stats missing %q in %q", want, res.stdout)
		}
	}

	res = execute(t, "", "history", "prune", "--older-than", "1ns")
	if !strings.Contains(res.stdout, "Pruned 2 evaluation(s)") {
		t.Errorf("history prune = %q", res.stdout)
	}

	res = execute(t, "", "history", "list")
	if !strings.Contains(res.stdout, "No evaluations recorded.") {
		t.Errorf("history list after prune = %q", res.stdout)
	}
}

func TestNoHistory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	execute(t, "", "--no-history", "eval", "1 + 1")
	if _, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".sccalc", "history.db")); !os.IsNotExist(err) {
		t.Errorf("history database created despite --no-history: %v", err)
	}
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sccalc.toml")

	res := execute(t, "", "config", "init", path)
	if res.code != 0 || !strings.Contains(res.stdout, "Wrote "+path) {
		t.Fatalf("config init = %+v", res)
	}

	res = execute(t, "", "config", "init", path)
	if res.code != 1 || !strings.Contains(res.stderr, "already exists") {
		t.Errorf("second config init = %+v", res)
	}

	res = execute(t, "", "--config", path, "config", "show")
	if !strings.Contains(res.stdout, "# loaded from "+path) || !strings.Contains(res.stdout, "max_steps = 0") {
		t.Errorf("config show = %q", res.stdout)
	}

	res = execute(t, "", "--config", path, "--strict", "config", "show")
	if !strings.Contains(res.stdout, "strict = true") {
		t.Errorf("--strict not reflected: %q", res.stdout)
	}
}

func TestConfig_MissingFile(t *testing.T) {
	res := execute(t, "", "--config", filepath.Join(t.TempDir(), "none.toml"), "1")
	if res.code != 1 || !strings.Contains(res.stderr, "failed to load config") {
		t.Errorf("missing config = %+v", res)
	}
}

func TestExitError(t *testing.T) {
	if exitWith(0) != nil {
		t.Error("exitWith(0) should be nil")
	}
	err := exitWith(3)
	if err == nil || err.Error() != "exit status 3" {
		t.Errorf("exitWith(3) = %v", err)
	}
}
