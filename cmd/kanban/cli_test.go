package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"kanban/internal/board"
	"kanban/internal/models"
	"kanban/internal/persist"
	"kanban/internal/storage"
)

func openTestStore(t *testing.T, ids ...string) *board.Store {
	t.Helper()
	next := 0
	s, err := board.Open(context.Background(), persist.New(storage.NewMemory(), persist.BoardKeys, nil), board.Options{
		Scoped: true,
		NewID: func() string {
			id := ids[next%len(ids)]
			next++
			return id
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFindProjectByPrefix(t *testing.T) {
	s := openTestStore(t, "abc123", "abd456", "xyz789")
	s.AddProject("one", "")
	s.AddProject("two", "")
	s.AddProject("three", "")

	tests := []struct {
		ref     string
		want    string
		wantErr string
	}{
		{ref: "abc123", want: "one"},
		{ref: "abd", want: "two"},
		{ref: "x", want: "three"},
		{ref: "ab", wantErr: "ambiguous"},
		{ref: "nope", wantErr: "no project"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			p, err := findProject(s, tt.ref)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if p.Name != tt.want {
				t.Errorf("got %q, want %q", p.Name, tt.want)
			}
		})
	}
}

func TestFindTaskExactIDWins(t *testing.T) {
	s := openTestStore(t, "p1", "aa", "aab")
	s.AddProject("home", "")
	s.AddTask("short", models.PriorityLow)
	s.AddTask("long", models.PriorityLow)

	got, err := findTask(s, "aa")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "short" {
		t.Errorf("exact id resolved to %q", got.Text)
	}
}

var idPattern = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

// resetFlags restores every flag of the shared command tree to its default
// so one run does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func drain(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		data, _ := io.ReadAll(r)
		_ = r.Close()
		ch <- string(data)
	}()
	return ch
}

// captureOutput runs fn with the process stdout and stderr redirected.
func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()
	outR, outW, perr := os.Pipe()
	if perr != nil {
		t.Fatal(perr)
	}
	errR, errW, perr := os.Pipe()
	if perr != nil {
		t.Fatal(perr)
	}
	outCh, errCh := drain(outR), drain(errR)

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	err = fn()
	os.Stdout, os.Stderr = origOut, origErr

	_ = outW.Close()
	_ = errW.Close()
	return <-outCh, <-errCh, err
}

// execute runs the kanban command line against db and returns what it wrote
// to the real stdout and stderr.
func execute(t *testing.T, db string, args ...string) (stdout, stderr string) {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetArgs(append(args, "--db", db))
	stdout, stderr, err := captureOutput(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("kanban %s: %v\n%s", strings.Join(args, " "), err, stderr)
	}
	return stdout, stderr
}

func TestCommandsRoundTrip(t *testing.T) {
	t.Setenv("KANBAN_LOG_LEVEL", "")
	db := filepath.Join(t.TempDir(), "kanban.db")

	run := func(args ...string) string {
		t.Helper()
		out, _ := execute(t, db, args...)
		return out
	}

	out := run("project", "add", "Home")
	m := idPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no project id in %q", out)
	}
	projectID := m[1]

	out = run("task", "add", "buy", "milk", "-P", "alta")
	fields := strings.Fields(out)
	if len(fields) < 4 || fields[3] != "[alta]" {
		t.Fatalf("task add output %q", out)
	}
	taskID := fields[2]

	run("task", "move", taskID[:8], "doing")

	out = run("board")
	for _, want := range []string{"Home", "buy milk", "Doing (1)", "To Do (0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("board missing %q:\n%s", want, out)
		}
	}

	out = run("project", "list")
	if !strings.Contains(out, "*") || !strings.Contains(out, projectID) {
		t.Errorf("project list:\n%s", out)
	}

	var snap persist.Snapshot
	if err := json.Unmarshal([]byte(run("export", "--format", "json")), &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Projects) != 1 || len(snap.Tasks) != 1 {
		t.Fatalf("export = %+v", snap)
	}
	if got := snap.Tasks[0]; got.Status != models.StatusDoing || got.ProjectID != projectID || got.Priority != models.PriorityHigh {
		t.Errorf("exported task = %+v", got)
	}

	out = run("project", "rm", projectID)
	if !strings.Contains(out, "1 task(s)") {
		t.Errorf("project rm output %q", out)
	}
	if err := json.Unmarshal([]byte(run("export")), &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Projects) != 0 || len(snap.Tasks) != 0 {
		t.Errorf("cascade left %+v", snap)
	}
}

func TestDataCommandsLogToStderr(t *testing.T) {
	t.Setenv("KANBAN_LOG_LEVEL", "info")
	db := filepath.Join(t.TempDir(), "kanban.db")
	execute(t, db, "project", "add", "Home")

	stdout, stderr := execute(t, db, "export")
	var snap persist.Snapshot
	if err := json.Unmarshal([]byte(stdout), &snap); err != nil {
		t.Fatalf("export stdout does not parse as JSON: %v\n%s", err, stdout)
	}
	if len(snap.Projects) != 1 {
		t.Errorf("export = %+v", snap)
	}
	if !strings.Contains(stderr, `msg="board loaded"`) {
		t.Errorf("stderr = %q, want the load log line", stderr)
	}

	for _, args := range [][]string{{"board"}, {"project", "list"}, {"export", "--format", "yaml"}} {
		stdout, _ := execute(t, db, args...)
		if strings.Contains(stdout, "level=") {
			t.Errorf("kanban %s wrote log lines to stdout:\n%s", strings.Join(args, " "), stdout)
		}
	}
}

func TestLogConsole(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{Use: "export"}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if logConsole(cmd) != io.Writer(&errOut) {
		t.Error("data command logs somewhere other than stderr")
	}

	cmd.Annotations = map[string]string{logsToStdout: "true"}
	if logConsole(cmd) != io.Writer(&out) {
		t.Error("annotated command does not log to stdout")
	}
	if serveCmd.Annotations[logsToStdout] == "" {
		t.Error("serve is not annotated to log to stdout")
	}
}

func TestExportKeys(t *testing.T) {
	t.Setenv("KANBAN_LOG_LEVEL", "")
	db := filepath.Join(t.TempDir(), "kanban.db")
	execute(t, db, "project", "add", "Home")
	execute(t, db, "task", "add", "--flat", "loose", "end")

	stdout, _ := execute(t, db, "export", "--keys")
	for _, want := range []string{"kanban-projects\tin use\n", "kanban-tasks\tin use\n", "todo-tasks\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("keys output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "todo-tasks\tin use") {
		t.Errorf("flat list key marked in use by the board:\n%s", stdout)
	}
}

type readOnlyMedium struct{ storage.Memory }

func (*readOnlyMedium) Set(context.Context, string, []byte) error {
	return errors.New("attempt to write a readonly database")
}

func TestRunReportsUnsavedChanges(t *testing.T) {
	s, err := board.Open(context.Background(), persist.New(&readOnlyMedium{}, persist.BoardKeys, nil), board.Options{Scoped: true})
	if err != nil {
		t.Fatal(err)
	}
	a := &app{store: s}

	err = a.run(func(a *app) error {
		a.store.AddProject("Home", "")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "not saved") || !strings.Contains(err.Error(), "readonly") {
		t.Fatalf("run = %v, want an unsaved-changes error", err)
	}

	fnErr := errors.New("bad input")
	if err := a.run(func(*app) error { return fnErr }); !errors.Is(err, fnErr) {
		t.Fatalf("run = %v, want the command error first", err)
	}
}
