package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
		wantErr bool
	}{
		{"default base", "", []string{"svg"}, map[string]string{"svg": "sparkline.svg"}, false},
		{"explicit file", "trend.svg", []string{"svg"}, map[string]string{"svg": "trend.svg"}, false},
		{"base for many", "out/trend", []string{"svg", "png"}, map[string]string{"svg": "out/trend.svg", "png": "out/trend.png"}, false},
		{"extension dropped for many", "trend.svg", []string{"svg", "json"}, map[string]string{"svg": "trend.svg", "json": "trend.json"}, false},
		{"stdout", "-", []string{"json"}, nil, false},
		{"stdout needs one format", "-", []string{"svg", "json"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPaths(tt.output, tt.formats)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("path[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend")
	out, err := execute(t, "", "render", "--no-cache", "--values", "1,3,,-4,2", "--format", "svg,json", "-o", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Rendered 2 artifact(s)", path + ".svg", "points", "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output %q missing %q", out, want)
		}
	}

	svg, err := os.ReadFile(path + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg = %s", svg)
	}
	data, err := os.ReadFile(path + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("json artifact is not valid JSON")
	}
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := execute(t, "[1, 2, 3]", "render", "-", "--no-cache", "--preset", "column", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, "<rect") {
		t.Errorf("stdout = %s", out)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no values", []string{"render", "--no-cache"}, "no values"},
		{"bad format", []string{"render", "--no-cache", "--values", "1,2", "--format", "gif"}, "invalid format"},
		{"bad value", []string{"render", "--no-cache", "--values", "1,abc", "-o", "-"}, "abc"},
		{"preset and settings", []string{"render", "--values", "1", "--preset", "graph", "--settings", "x.json"}, "none of the others"},
		{"no-cache and redis", []string{"render", "--values", "1", "--no-cache", "--redis", "localhost:6379"}, "none of the others"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "", "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, "sparklines") {
				t.Errorf("script does not mention the program: %.80q", out)
			}
		})
	}
	if _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}
