package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns a valid command
// tree with both subcommands registered.
func TestGetRootCmd_Exists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "gntax", cmd.Use)

	names := make([]string, 0, 2)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "dump")
	assert.Contains(t, names, "ingest")
}

// writeDmp writes a minimal three-node NCBI taxdump (root, a
// superkingdom, a species) to dir.
func writeDmp(t *testing.T, dir string) {
	t.Helper()
	nodes := "1\t|\t1\t|\tno rank\t|\n" +
		"2\t|\t1\t|\tsuperkingdom\t|\n" +
		"562\t|\t2\t|\tspecies\t|\n"
	names := "1\t|\troot\t|\t\t|\tscientific name\t|\n" +
		"2\t|\tBacteria\t|\t\t|\tscientific name\t|\n" +
		"562\t|\tEscherichia coli\t|\t\t|\tscientific name\t|\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodes.dmp"), []byte(nodes), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.dmp"), []byte(names), 0o644))
}

// TestDumpCmd_NCBIRoundTrip drives the dump subcommand end to end
// against a real taxdump directory.
func TestDumpCmd_NCBIRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := t.TempDir()
	out := t.TempDir()
	writeDmp(t, in)

	cmd := getRootCmd()
	cmd.SetArgs([]string{
		"dump",
		"--path", in,
		"--taxonomy-format", "NCBI",
		"--root-taxon-id", "562",
		"--base-taxon-id", "1",
		"--out", out,
	})

	require.NoError(t, cmd.Execute())

	namesData, err := os.ReadFile(filepath.Join(out, "names.dmp"))
	require.NoError(t, err)
	assert.Contains(t, string(namesData), "root")
	assert.Contains(t, string(namesData), "Bacteria")
	assert.Contains(t, string(namesData), "Escherichia coli")

	nodesData, err := os.ReadFile(filepath.Join(out, "nodes.dmp"))
	require.NoError(t, err)
	assert.Equal(t, 3, countLines(string(nodesData)))
}

func countLines(s string) int {
	n := 0
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}

// TestDumpCmd_MissingPath verifies the required-option error path
// (errcode.NotDefined) rather than a panic or a cryptic downstream
// failure.
func TestDumpCmd_MissingPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cmd := getRootCmd()
	cmd.SetArgs([]string{"dump", "--out", t.TempDir(), "--root-taxon-id", "1"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path")
}
