package graft

import (
	"testing"

	"github.com/blobtoolkit/core/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFelidaeTree() *taxon.Tree {
	tr := taxon.New()
	tr.Insert(&taxon.Node{TaxID: "1", ParentTaxID: "1", Rank: "no rank"})
	tr.Insert(&taxon.Node{TaxID: "9681", ParentTaxID: "1", Rank: "family"})
	tr.AddName("9681", taxon.NewName("9681", "Felidae", taxon.ClassScientificName, ""))
	return tr
}

func TestGraftOnPutativeHigherMatch(t *testing.T) {
	tr := buildFelidaeTree()
	e := New(tr, "")

	n, err := e.Graft(Request{
		AltTaxonID:     "X:123",
		ParentTaxID:    "9681",
		Rank:           "species",
		ScientificName: "Novel species",
	})
	require.NoError(t, err)
	assert.Equal(t, "X:123", n.TaxID)
	assert.Equal(t, "9681", n.ParentTaxID)
	assert.Equal(t, "species", n.Rank)
	assert.Equal(t, "Novel species", n.ScientificName)
	assert.Contains(t, tr.Children("9681"), "X:123")
	assert.True(t, e.Dirty())
}

func TestGraftEmitsXrefName(t *testing.T) {
	tr := buildFelidaeTree()
	e := New(tr, "GenomeHubs")

	_, err := e.Graft(Request{
		AltTaxonID:     "X:456",
		ParentTaxID:    "9681",
		Rank:           "species",
		ScientificName: "Another species",
	})
	require.NoError(t, err)

	n, ok := tr.Get("X:456")
	require.True(t, ok)
	var xref *taxon.Name
	for i := range n.Names {
		if n.Names[i].Class == "GenomeHubs" {
			xref = &n.Names[i]
		}
	}
	require.NotNil(t, xref)
	assert.Equal(t, "X:456", xref.Name)
	assert.Equal(t, "GenomeHubs:X:456", xref.UniqueName)
}

func TestGraftRejectsUnknownParent(t *testing.T) {
	tr := buildFelidaeTree()
	e := New(tr, "")

	_, err := e.Graft(Request{AltTaxonID: "X:1", ParentTaxID: "missing", Rank: "species"})
	assert.Error(t, err)
	assert.False(t, e.Dirty())
}

func TestGraftRejectsDuplicateTaxID(t *testing.T) {
	tr := buildFelidaeTree()
	e := New(tr, "")

	_, err := e.Graft(Request{AltTaxonID: "9681", ParentTaxID: "9681", Rank: "species"})
	assert.Error(t, err)
}
