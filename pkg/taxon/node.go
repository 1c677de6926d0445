// Package taxon implements the persistent in-memory taxonomy tree: the
// Node/Name data model, the owning Tree store, lineage walks, rank
// queries and the merge operation. It has no I/O dependencies; parsers
// and the ingest pipeline populate a Tree through its exported methods.
package taxon

// Rank letters used as index keys. Subspecies gets 'b' instead of its
// natural first letter 's' so that it never collides with species.
const subspeciesLetter = 'b'

// Ranks lists the ranks the lookup index and name resolver reason
// about, ordered from most specific to least specific.
var Ranks = []string{
	"subspecies", "species", "genus",
	"family", "order", "class", "phylum", "kingdom",
}

// HigherRanks is the subset of Ranks used to disambiguate lineages: a
// node's own name is only combined with ancestor names at these ranks.
var HigherRanks = []string{"family", "order", "class", "phylum", "kingdom"}

// LowerRanks are ranks the resolver treats as context below the
// primary rank of a record, never promoted to a Match on their own.
var LowerRanks = []string{"subspecies", "species", "genus"}

// RootMarkerRank is the rank assigned to a synthetic root node such as
// GBIF's "root".
const RootMarkerRank = "root"

// Node is a taxon: one entry in the Tree store, keyed by TaxID.
type Node struct {
	TaxID          string
	ParentTaxID    string
	Rank           string
	ScientificName string
	Names          []Name
}

// IsRoot reports whether n is self-parented, the tree's designated
// root marker.
func (n *Node) IsRoot() bool {
	return n != nil && n.TaxID == n.ParentTaxID
}

// RankLetter returns the first byte of rank, except that "subspecies"
// maps to 'b' so its index key never collides with "species" ('s').
// Rank letters are used to key the rank-lineage multimap.
func RankLetter(rank string) byte {
	if rank == "subspecies" {
		return subspeciesLetter
	}
	if rank == "" {
		return 0
	}
	return rank[0]
}

// NamesByClass returns the names on n restricted to classes, in node
// order. If classes is nil, every Name is included.
func (n *Node) NamesByClass(classes []string) []string {
	var allowed map[string]bool
	if classes != nil {
		allowed = make(map[string]bool, len(classes))
		for _, c := range classes {
			allowed[c] = true
		}
	}
	var out []string
	for _, nm := range n.Names {
		if allowed != nil && !allowed[nm.Class] {
			continue
		}
		out = append(out, nm.Name)
	}
	return out
}
