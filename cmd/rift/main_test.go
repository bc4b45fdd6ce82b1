package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestDebugFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	expectedFlags := []string{"dtokens", "dparse", "dsexpr", "watch"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag --%s to exist", flagName)
		}
	}

	// Options the repl subcommand honors too
	persistentFlags := []string{"config", "max-depth", "max-errors", "color", "verbose"}
	for _, flagName := range persistentFlags {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected persistent flag --%s to exist", flagName)
		}
	}
}

// writeSource writes content to name inside a fresh temp dir
func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetDebugFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNoArgsShowsHelp(t *testing.T) {
	out, _, err := execute(t)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("expected usage text, got %q", out)
	}
}

func TestParseValidFile(t *testing.T) {
	testFile := writeSource(t, "ok.rift", "print 1 + 2;\n3 * 4;\n")

	out, errOut, err := execute(t, testFile)
	if err != nil {
		t.Fatalf("expected no error, got %v (stderr %q)", err, errOut)
	}
	if !strings.Contains(out, "2 statements") {
		t.Errorf("expected statement count, got %q", out)
	}
}

func TestParseErrorsReported(t *testing.T) {
	testFile := writeSource(t, "bad.rift", "1 +;\nprint 3;\n")

	_, errOut, err := execute(t, testFile)
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
	if !strings.Contains(errOut, testFile+":1:4: error: expected expression, got ';'") {
		t.Errorf("expected located diagnostic, got %q", errOut)
	}
	if !strings.Contains(errOut, "1 error") {
		t.Errorf("expected summary, got %q", errOut)
	}
	if strings.Contains(errOut, "\x1b[") {
		t.Errorf("expected no color on a buffer, got %q", errOut)
	}
}

func TestDSexprFlag(t *testing.T) {
	testFile := writeSource(t, "s.rift", "print 1 + 2 * 3;")

	out, _, err := execute(t, "--dsexpr", testFile)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "(print (+ 1 (* 2 3)))\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDSexprShowsPartialProgram(t *testing.T) {
	testFile := writeSource(t, "p.rift", "1 +; print 3;")

	out, _, err := execute(t, "--dsexpr", testFile)
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
	if out != "(print 3)\n" {
		t.Errorf("expected the surviving statement, got %q", out)
	}
}

func TestDTokensFlag(t *testing.T) {
	testFile := writeSource(t, "t.rift", "print 1;")

	if _, _, err := execute(t, "-dtokens", testFile); err == nil {
		t.Fatal("expected single-dash flag to be rejected without normalization")
	}

	out, _, err := execute(t, normalizeFlags([]string{"-dtokens", testFile})...)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{
		`1:1 print "print"`,
		`1:7 NUMBER "1"`,
		`1:8 ; ";"`,
		`1:9 EOF`,
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestDParseFlag(t *testing.T) {
	testFile := writeSource(t, "d.rift", "print   (1+2)*3 ;\n!true;")

	out, _, err := execute(t, "--dparse", testFile)
	if err != nil {
		t.Fatalf("expected no error for -dparse, got %v", err)
	}
	if out != "print (1 + 2) * 3;\n!true;\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDParseCreatesOutputFile(t *testing.T) {
	testFile := writeSource(t, "test.rift", "print 42;")
	expectedOutputFile := filepath.Join(filepath.Dir(testFile), "test.parsed.rift")

	out, _, err := execute(t, "--dparse", testFile)
	if err != nil {
		t.Errorf("expected no error for -dparse, got %v", err)
	}

	fileContent, err := os.ReadFile(expectedOutputFile)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if out != string(fileContent) {
		t.Errorf("output file content doesn't match stdout\nStdout:\n%s\nFile:\n%s", out, string(fileContent))
	}
	if !strings.Contains(string(fileContent), "print 42;") {
		t.Errorf("expected output file to contain 'print 42;'")
	}
}

func TestDParseSkippedOnErrors(t *testing.T) {
	testFile := writeSource(t, "e.rift", "print ;")

	_, _, err := execute(t, "--dparse", testFile)
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
	if _, err := os.Stat(parsedOutputFilename(testFile)); !os.IsNotExist(err) {
		t.Errorf("expected no .parsed.rift file, stat returned %v", err)
	}
}

func TestFileNotFound(t *testing.T) {
	_, errOut, err := execute(t, filepath.Join(t.TempDir(), "nonexistent.rift"))
	if err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
	if !strings.Contains(errOut, "rift: error reading") {
		t.Errorf("expected read error message, got %q", errOut)
	}
}

func TestMaxErrorsFlag(t *testing.T) {
	testFile := writeSource(t, "m.rift", "+; +; +;")

	_, errOut, _ := execute(t, "--max-errors", "2", testFile)
	if strings.Count(errOut, "error:") != 2 {
		t.Errorf("expected 2 diagnostics, got %q", errOut)
	}
	if !strings.Contains(errOut, "2 errors") {
		t.Errorf("expected summary, got %q", errOut)
	}
}

func TestMaxDepthFlag(t *testing.T) {
	testFile := writeSource(t, "n.rift", "((((1))));")

	_, errOut, err := execute(t, "--max-depth", "3", testFile)
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
	if !strings.Contains(errOut, "expression nested too deeply") {
		t.Errorf("expected nesting error, got %q", errOut)
	}

	if _, _, err := execute(t, "--max-depth", "-1", testFile); err != nil {
		t.Errorf("expected no error with unlimited depth, got %v", err)
	}
}

func TestConfigFileDiscovered(t *testing.T) {
	testFile := writeSource(t, "c.rift", "+; +; +;")
	cfgFile := filepath.Join(filepath.Dir(testFile), "rift.toml")
	if err := os.WriteFile(cfgFile, []byte("[parser]\nmax_errors = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, errOut, _ := execute(t, testFile)
	if strings.Count(errOut, "error:") != 1 {
		t.Errorf("expected config to cap diagnostics at 1, got %q", errOut)
	}

	// Flags override the file
	_, errOut, _ = execute(t, "--max-errors", "0", testFile)
	if strings.Count(errOut, "error:") != 3 {
		t.Errorf("expected flag to lift the cap, got %q", errOut)
	}
}

func TestConfigFlag(t *testing.T) {
	testFile := writeSource(t, "c.rift", "print 1;")
	cfgFile := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(cfgFile, []byte("output:\n  color: purple\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, errOut, err := execute(t, "--config", cfgFile, testFile)
	if err == nil {
		t.Fatal("expected invalid config to fail")
	}
	if !strings.Contains(errOut, "invalid configuration") {
		t.Errorf("expected config error, got %q", errOut)
	}
}

func TestInvalidColorFlag(t *testing.T) {
	testFile := writeSource(t, "c.rift", "print 1;")

	_, errOut, err := execute(t, "--color", "rainbow", testFile)
	if err == nil {
		t.Fatal("expected invalid color to fail")
	}
	if !strings.Contains(errOut, "output.color") {
		t.Errorf("expected color validation message, got %q", errOut)
	}
}

func TestVerboseLogging(t *testing.T) {
	testFile := writeSource(t, "v.rift", "1 +; print 2;")

	_, errOut, _ := execute(t, "-v", testFile)
	for _, want := range []string{"level=DEBUG", "component=parser", "synchronized"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("expected %q in verbose output, got %q", want, errOut)
		}
	}
}

func TestParsedOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"test.rift", "test.parsed.rift"},
		{"path/to/file.rift", "path/to/file.parsed.rift"},
		{"/absolute/path.rift", "/absolute/path.parsed.rift"},
		{"no_extension", "no_extension.parsed.rift"},
		{"multiple.dots.rift", "multiple.dots.parsed.rift"},
	}

	for _, tc := range tests {
		result := parsedOutputFilename(tc.input)
		if result != tc.expected {
			t.Errorf("parsedOutputFilename(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func resetDebugFlags() {
	dTokens = false
	dParse = false
	dSexpr = false
	configPath = ""
	maxDepth = 0
	maxErrors = 0
	colorMode = "auto"
	watchMode = false
	verbose = false
}

func TestNormalizeFlags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "single-dash dparse",
			input:    []string{"-dparse", "test.rift"},
			expected: []string{"--dparse", "test.rift"},
		},
		{
			name:     "double-dash dparse unchanged",
			input:    []string{"--dparse", "test.rift"},
			expected: []string{"--dparse", "test.rift"},
		},
		{
			name:     "mixed flags",
			input:    []string{"test.rift", "-dsexpr", "-dtokens"},
			expected: []string{"test.rift", "--dsexpr", "--dtokens"},
		},
		{
			name:     "no flags",
			input:    []string{"test.rift"},
			expected: []string{"test.rift"},
		},
		{
			name:     "other flags unchanged",
			input:    []string{"-v", "-w", "test.rift"},
			expected: []string{"-v", "-w", "test.rift"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := normalizeFlags(tc.input)
			if len(result) != len(tc.expected) {
				t.Errorf("normalizeFlags(%v) = %v, want %v", tc.input, result, tc.expected)
				return
			}
			for i := range result {
				if result[i] != tc.expected[i] {
					t.Errorf("normalizeFlags(%v) = %v, want %v", tc.input, result, tc.expected)
					return
				}
			}
		})
	}
}
