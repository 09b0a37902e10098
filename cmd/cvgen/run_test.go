package main

// Notes:
// - run is exercised end to end with an injected Environment: buffers for
//   stdout/stderr, a map-backed getenv, a temp dir, and a LookPath that never
//   finds a browser. Real browser runs live in the integration-tagged tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	tmp    string
}

func newTestEnv(t *testing.T, vars map[string]string) *testEnv {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	tmp := t.TempDir()
	return &testEnv{
		Environment: &Environment{
			Stdout:   stdout,
			Stderr:   stderr,
			Getenv:   mapGetenv(vars),
			Environ:  func() []string { return nil },
			TempDir:  func() string { return tmp },
			LookPath: func(string) (string, error) { return "", errors.New("not found") },
			BrowserFallback: func() (string, bool) {
				return "", false
			},
		},
		stdout: stdout,
		stderr: stderr,
		tmp:    tmp,
	}
}

// writeInputs creates a template and data file and returns their paths.
func writeInputs(t *testing.T, tpl, data string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template.html")
	dataPath := filepath.Join(dir, "resume.yaml")
	if err := os.WriteFile(tplPath, []byte(tpl), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dataPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return tplPath, dataPath
}

// ---------------------------------------------------------------------------
// TestRun - Exit codes and output streams
// ---------------------------------------------------------------------------

func TestRun_HTMLOnly(t *testing.T) {
	t.Parallel()

	tpl, data := writeInputs(t, "<h1>{{ name }}</h1>", "name: Ada\n")
	env := newTestEnv(t, nil)

	code := run([]string{"cvgen", "-t", tpl, "-d", data}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("run() = %d, want 0; stderr: %s", code, env.stderr)
	}
	want := filepath.Join(env.tmp, "cv_generation", "resume.html")
	if got := strings.TrimSpace(env.stdout.String()); got != "HTML saved to: "+want {
		t.Errorf("stdout = %q, want %q", got, "HTML saved to: "+want)
	}
	html, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if string(html) != "<h1>Ada</h1>" {
		t.Errorf("HTML = %q, want <h1>Ada</h1>", html)
	}
}

func TestRun_NoBrowserStillSucceeds(t *testing.T) {
	t.Parallel()

	tpl, data := writeInputs(t, "<p>{{ name }}</p>", "name: Ada\n")
	env := newTestEnv(t, nil)
	out := filepath.Join(env.tmp, "cv.html")
	pdf := filepath.Join(env.tmp, "export", "cv.pdf")

	code := run([]string{"cvgen", "-t", tpl, "-d", data, "-o", out, "--pdf", pdf}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("run() = %d, want 0 even without a browser", code)
	}
	if !strings.Contains(env.stderr.String(), "install chromium") {
		t.Errorf("stderr %q should warn about the missing browser", env.stderr)
	}
	if strings.Contains(env.stdout.String(), "PDF saved to") {
		t.Error("stdout should not report a PDF")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("HTML should exist: %v", err)
	}
	if _, err := os.Stat(pdf); !os.IsNotExist(err) {
		t.Error("PDF should not exist")
	}
}

func TestRun_RodRendererNoBrowser(t *testing.T) {
	t.Parallel()

	tpl, data := writeInputs(t, "x", "name: Ada\n")
	env := newTestEnv(t, map[string]string{"CVGEN_RENDERER": "rod"})

	code := run([]string{"cvgen", "-t", tpl, "-d", data, "--pdf=" + filepath.Join(env.tmp, "cv.pdf")}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("run() = %d, want 0", code)
	}
	if !strings.Contains(env.stderr.String(), "not found") {
		t.Errorf("stderr %q should report the missing browser", env.stderr)
	}
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	tpl, data := writeInputs(t, "{{ name }}", "name: Ada\n")
	badTpl, badData := writeInputs(t, "{% for %}", "name: [unclosed\n")

	tests := []struct {
		name       string
		args       []string
		env        map[string]string
		wantCode   int
		wantStderr string
	}{
		{"no flags", []string{"cvgen"}, nil, ExitUsage, "missing required flag"},
		{"missing data flag", []string{"cvgen", "-t", tpl}, nil, ExitUsage, "-d/--data"},
		{"unknown flag", []string{"cvgen", "--bogus"}, nil, ExitUsage, "invalid flag"},
		{"bad syntax flag", []string{"cvgen", "-t", tpl, "-d", data, "--syntax", "mustache"}, nil, ExitUsage, "template.syntax"},
		{"bad env timeout", []string{"cvgen", "-t", tpl, "-d", data}, map[string]string{"CVGEN_TIMEOUT": "soon"}, ExitUsage, "browser.timeout"},
		{"config not found", []string{"cvgen", "-t", tpl, "-d", data, "-c", "no-such-config-name"}, nil, ExitUsage, "hint:"},
		{"missing data file", []string{"cvgen", "-t", tpl, "-d", "/nonexistent.yaml"}, nil, ExitGeneral, "data file not found"},
		{"invalid YAML", []string{"cvgen", "-t", tpl, "-d", badData}, nil, ExitGeneral, "failed to parse data file"},
		{"template error", []string{"cvgen", "-t", badTpl, "-d", data}, nil, ExitGeneral, "template rendering failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tt.env)
			code := run(tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d; stderr: %s", code, tt.wantCode, env.stderr)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantStderr)
			}
			if env.stdout.Len() != 0 {
				t.Errorf("stdout should be empty on failure, got %q", env.stdout)
			}
		})
	}
}

func TestRun_MissingDataWritesNothing(t *testing.T) {
	t.Parallel()

	tpl, _ := writeInputs(t, "{{ name }}", "")
	env := newTestEnv(t, nil)

	run([]string{"cvgen", "-t", tpl, "-d", filepath.Join(env.tmp, "missing.yaml"), "--pdf"}, env.Environment)

	entries, err := os.ReadDir(env.tmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir has %d entries, want none", len(entries))
	}
}

func TestRun_QuietSuppressesSuccessLines(t *testing.T) {
	t.Parallel()

	tpl, data := writeInputs(t, "x", "name: Ada\n")
	env := newTestEnv(t, nil)

	code := run([]string{"cvgen", "-q", "-t", tpl, "-d", data}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("run() = %d, want 0", code)
	}
	if env.stdout.Len() != 0 || env.stderr.Len() != 0 {
		t.Errorf("quiet run printed stdout=%q stderr=%q", env.stdout, env.stderr)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	tpl, data := writeInputs(t, "<p>{{ .name }}</p>", "name: Ada\n")
	env := newTestEnv(t, nil)
	cfgPath := filepath.Join(t.TempDir(), "cvgen.yaml")
	cfg := "template:\n  syntax: go\noutput:\n  workDirName: resumes\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	code := run([]string{"cvgen", "-c", cfgPath, "-t", tpl, "-d", data}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("run() = %d, want 0; stderr: %s", code, env.stderr)
	}
	html, err := os.ReadFile(filepath.Join(env.tmp, "resumes", "resume.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(html) != "<p>Ada</p>" {
		t.Errorf("HTML = %q, want <p>Ada</p>", html)
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want string
	}{
		{"--help", "Usage: cvgen"},
		{"-h", "Usage: cvgen"},
		{"--version", "cvgen " + Version},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			if code := run([]string{"cvgen", tt.arg}, env.Environment); code != ExitSuccess {
				t.Errorf("run(%s) = %d, want 0", tt.arg, code)
			}
			if !strings.Contains(env.stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout, tt.want)
			}
		})
	}
}
