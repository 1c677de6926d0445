// Package index builds the two lookup structures derived from a
// taxon.Tree: a rank-lineage multimap for ancestor-constrained lookup,
// and a fuzzy name index supporting exact and bounded-edit-distance
// search. Both are rebuilt from scratch whenever a batch of ingests
// completes; neither owns the Tree, they only hold tax_ids into it.
package index

// TaxonInfo is the metadata carried by one fuzzy-index entry.
type TaxonInfo struct {
	TaxID          string
	ScientificName string
	Rank           string
	// AncIDs is the set of ancestor tax_ids at the higher ranks
	// (family, order, class, phylum, kingdom) above this taxon.
	AncIDs map[string]bool
}

// Reporter receives progress updates while an index is rebuilt. The
// zero value of NoOpReporter satisfies it for callers that don't care.
type Reporter interface {
	Start(total int, label string)
	Increment(n int)
	Finish()
}

// NoOpReporter discards all progress updates.
type NoOpReporter struct{}

func (NoOpReporter) Start(int, string) {}
func (NoOpReporter) Increment(int)     {}
func (NoOpReporter) Finish()           {}
