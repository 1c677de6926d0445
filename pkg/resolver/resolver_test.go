package resolver

import (
	"testing"

	"github.com/blobtoolkit/core/pkg/index"
	"github.com/blobtoolkit/core/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildHominidResolver() *Resolver {
	tr := taxon.New()
	tr.Insert(&taxon.Node{TaxID: "1", ParentTaxID: "1", Rank: "no rank"})
	tr.Insert(&taxon.Node{TaxID: "9604", ParentTaxID: "1", Rank: "family"})
	tr.Insert(&taxon.Node{TaxID: "9605", ParentTaxID: "9604", Rank: "genus"})
	tr.Insert(&taxon.Node{TaxID: "9606", ParentTaxID: "9605", Rank: "species"})
	tr.AddNames(map[string][]taxon.Name{
		"9604": {taxon.NewName("9604", "Hominidae", taxon.ClassScientificName, "")},
		"9605": {taxon.NewName("9605", "Homo", taxon.ClassScientificName, "")},
		"9606": {taxon.NewName("9606", "Homo sapiens", taxon.ClassScientificName, "")},
	})
	li, fz := index.Build(tr, []string{taxon.ClassScientificName}, index.NoOpReporter{})
	return New(tr, li, fz)
}

func TestUnambiguousLineageMatch(t *testing.T) {
	r := buildHominidResolver()

	m := r.Resolve(map[string]string{"species": "Homo sapiens", "family": "Hominidae"})

	require.NotNil(t, m.Assigned)
	assert.Equal(t, "9606", m.Assigned.TaxID)
	assert.Equal(t, PutativeMatch, m.Status)
	assert.Equal(t, PutativeMatch, m.HigherStatus)
	require.NotNil(t, m.HigherCandidate)
	assert.Equal(t, "9604", m.HigherCandidate.TaxID)
}

func TestMergedIDResolution(t *testing.T) {
	tr := taxon.New()
	tr.Insert(&taxon.Node{TaxID: "1", ParentTaxID: "1", Rank: "no rank"})
	tr.Insert(&taxon.Node{TaxID: "100", ParentTaxID: "1", Rank: "species"})
	tr.AddName("100", taxon.NewName("100", "A", taxon.ClassScientificName, ""))
	tr.AddName("100", taxon.NewName("100", "99", taxon.ClassMergedTaxonID, ""))
	li, fz := index.Build(tr, []string{taxon.ClassScientificName}, index.NoOpReporter{})
	r := New(tr, li, fz)

	m := r.Resolve(map[string]string{"taxon_id": "99", "species": "A"})

	require.NotNil(t, m.Assigned)
	assert.Equal(t, "100", m.Assigned.TaxID)
	assert.Equal(t, MergeMatch, m.Status)
}

func TestDirectTaxonIDShortCircuits(t *testing.T) {
	tr := taxon.New()
	tr.Insert(&taxon.Node{TaxID: "1", ParentTaxID: "1", Rank: "no rank"})
	tr.Insert(&taxon.Node{TaxID: "562", ParentTaxID: "1", Rank: "species"})
	li, fz := index.Build(tr, []string{taxon.ClassScientificName}, index.NoOpReporter{})
	r := New(tr, li, fz)

	m := r.Resolve(map[string]string{"taxon_id": "562"})

	require.NotNil(t, m.Assigned)
	assert.Equal(t, "562", m.Assigned.TaxID)
	assert.Equal(t, Match, m.Status)
}

func TestFuzzySpellcheckDoesNotAutoAccept(t *testing.T) {
	tr := taxon.New()
	tr.Insert(&taxon.Node{TaxID: "1", ParentTaxID: "1", Rank: "no rank"})
	tr.Insert(&taxon.Node{TaxID: "9703", ParentTaxID: "1", Rank: "species"})
	tr.AddName("9703", taxon.NewName("9703", "Panthera leo", taxon.ClassScientificName, ""))
	li, fz := index.Build(tr, []string{taxon.ClassScientificName}, index.NoOpReporter{})
	r := New(tr, li, fz)

	m := r.Resolve(map[string]string{"species": "Panthera Ieo"})

	assert.Nil(t, m.Assigned)
	require.Len(t, m.RankOptions, 1)
	assert.Equal(t, "9703", m.RankOptions[0].TaxID)
}

func TestMultiMatchWithoutIDIsAmbiguousUntilHigherRank(t *testing.T) {
	tr := taxon.New()
	tr.Insert(&taxon.Node{TaxID: "1", ParentTaxID: "1", Rank: "no rank"})
	tr.Insert(&taxon.Node{TaxID: "10", ParentTaxID: "1", Rank: "family"})
	tr.Insert(&taxon.Node{TaxID: "20", ParentTaxID: "1", Rank: "family"})
	tr.Insert(&taxon.Node{TaxID: "100", ParentTaxID: "10", Rank: "species"})
	tr.Insert(&taxon.Node{TaxID: "200", ParentTaxID: "20", Rank: "species"})
	tr.AddNames(map[string][]taxon.Name{
		"10":  {taxon.NewName("10", "FamilyA", taxon.ClassScientificName, "")},
		"20":  {taxon.NewName("20", "FamilyB", taxon.ClassScientificName, "")},
		"100": {taxon.NewName("100", "Ambigua species", taxon.ClassScientificName, "")},
		"200": {taxon.NewName("200", "Ambigua species", taxon.ClassScientificName, "")},
	})
	li, fz := index.Build(tr, []string{taxon.ClassScientificName}, index.NoOpReporter{})
	r := New(tr, li, fz)

	m := r.Resolve(map[string]string{"species": "Ambigua species", "family": "FamilyB"})

	assert.Equal(t, MultiMatch, m.Status)
	require.NotNil(t, m.Assigned)
	assert.Equal(t, "200", m.Assigned.TaxID)
}

func TestLineagePairDisambiguatesAmbiguousHigherName(t *testing.T) {
	// Two families share a name, so the higher rank alone never yields
	// a single candidate; only the (species, family) pair in the
	// rank-lineage multimap does.
	tr := taxon.New()
	tr.Insert(&taxon.Node{TaxID: "1", ParentTaxID: "1", Rank: "no rank"})
	tr.Insert(&taxon.Node{TaxID: "10", ParentTaxID: "1", Rank: "family"})
	tr.Insert(&taxon.Node{TaxID: "20", ParentTaxID: "1", Rank: "family"})
	tr.Insert(&taxon.Node{TaxID: "100", ParentTaxID: "10", Rank: "species"})
	tr.Insert(&taxon.Node{TaxID: "200", ParentTaxID: "20", Rank: "species"})
	tr.AddNames(map[string][]taxon.Name{
		"10":  {taxon.NewName("10", "Shared family", taxon.ClassScientificName, "")},
		"20":  {taxon.NewName("20", "Shared family", taxon.ClassScientificName, "")},
		"100": {taxon.NewName("100", "Ambigua species", taxon.ClassScientificName, "")},
		"200": {taxon.NewName("200", "Altera species", taxon.ClassScientificName, "")},
	})
	li, fz := index.Build(tr, []string{taxon.ClassScientificName}, index.NoOpReporter{})
	r := New(tr, li, fz)

	m := r.Resolve(map[string]string{"species": "Ambigua species", "family": "Shared family"})

	assert.Equal(t, PutativeMatch, m.Status)
	assert.Nil(t, m.HigherCandidate, "ambiguous higher name must not be singled out")
	require.NotNil(t, m.Assigned)
	assert.Equal(t, "100", m.Assigned.TaxID)
}

func TestNoRanksYieldsNone(t *testing.T) {
	r := buildHominidResolver()
	m := r.Resolve(map[string]string{})
	assert.Equal(t, None, m.Status)
	assert.Nil(t, m.Assigned)
}
