package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args, feeding stdin and capturing
// stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRepair_FromStdin(t *testing.T) {
	raw := "Here you go:\n```sparql\nSELECT ?d WHERE { ?d a Dataset\n```"

	out, err := execute(t, raw, "repair")
	if err != nil {
		t.Fatalf("repair: %v", err)
	}

	if !strings.Contains(out, "SELECT ?d WHERE { ?d a Dataset }") {
		t.Errorf("repaired output missing query:\n%s", out)
	}
	if strings.Contains(out, "```") {
		t.Errorf("code fences survived repair:\n%s", out)
	}
}

func TestRepair_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.txt")
	if err := os.WriteFile(path, []byte("SELECT ?s WHERE { ?s ?p ?o }\nLIMIT 5"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	out, err := execute(t, "", "repair", path)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}

	if !strings.Contains(out, "PREFIX dcat:") {
		t.Errorf("default prefixes missing:\n%s", out)
	}
	if !strings.Contains(out, "LIMIT 5") {
		t.Errorf("limit clause missing:\n%s", out)
	}
}

func TestRepair_MissingFile(t *testing.T) {
	_, err := execute(t, "", "repair", filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}

	if !strings.Contains(out, "sparqlcat") {
		t.Errorf("version output missing binary name: %q", out)
	}
	if !strings.Contains(out, AppVersion) {
		t.Errorf("version output missing version %q: %q", AppVersion, out)
	}
}
