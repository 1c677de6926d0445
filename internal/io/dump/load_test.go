package dump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blobtoolkit/core/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTaxonomyMergesSubTaxonomiesInOrder(t *testing.T) {
	base := t.TempDir()
	writeDmpFile(t, base, "nodes.dmp", []string{
		dmpLine("1", "1", "no rank"),
		dmpLine("2", "1", "superkingdom"),
	})
	writeDmpFile(t, base, "names.dmp", []string{
		dmpLine("1", "root", "", "scientific name"),
		dmpLine("2", "Bacteria", "", "scientific name"),
	})

	extra := t.TempDir()
	writeDmpFile(t, extra, "nodes.dmp", []string{
		dmpLine("1", "1", "no rank"),
		dmpLine("3", "1", "superkingdom"),
	})
	writeDmpFile(t, extra, "names.dmp", []string{
		dmpLine("1", "root", "", "scientific name"),
		dmpLine("3", "Archaea", "", "scientific name"),
	})

	opts := config.New()
	opts.Path = base
	opts.TaxonomyFormat = "NCBI"
	opts.Taxonomies = []config.Options{
		{Path: extra, TaxonomyFormat: "NCBI"},
	}

	tr, err := LoadTaxonomy(opts)
	require.NoError(t, err)

	_, ok := tr.Get("2")
	assert.True(t, ok, "base tree's own taxon survives the merge")
	_, ok = tr.Get("3")
	assert.True(t, ok, "merged taxonomy's taxon is folded in")
}

func TestLoadTaxonomyAttachesENAAgainstAccumulatedTree(t *testing.T) {
	base := t.TempDir()
	writeDmpFile(t, base, "nodes.dmp", []string{
		dmpLine("1", "1", "no rank"),
		dmpLine("9604", "1", "family"),
	})
	writeDmpFile(t, base, "names.dmp", []string{
		dmpLine("1", "root", "", "scientific name"),
		dmpLine("9604", "Hominidae", "", "scientific name"),
	})

	enaDir := t.TempDir()
	enaPath := filepath.Join(enaDir, "ena.jsonl")
	require.NoError(t, os.WriteFile(enaPath, []byte(
		`{"taxId":"9605","scientificName":"Homo","rank":"genus","lineage":"root;Hominidae"}`+"\n",
	), 0o644))

	opts := config.New()
	opts.Path = base
	opts.TaxonomyFormat = "NCBI"
	opts.Taxonomies = []config.Options{
		{Path: enaPath, TaxonomyFormat: "ENA"},
	}

	tr, err := LoadTaxonomy(opts)
	require.NoError(t, err)

	n, ok := tr.Get("9605")
	require.True(t, ok)
	assert.Equal(t, "9604", n.ParentTaxID)
}

func TestLoadTaxonomyRejectsENAAsTopLevelPath(t *testing.T) {
	opts := config.New()
	opts.Path = "ena.jsonl"
	opts.TaxonomyFormat = "ENA"

	_, err := LoadTaxonomy(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no base tree")
}
