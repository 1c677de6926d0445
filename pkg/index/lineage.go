package index

import "fmt"

// LineageIndex is the rank-lineage multimap: key
// "{rankLetter}:{lcName}:{ancRankLetter}:{lcAncName}" -> candidate
// tax_ids, one entry per (node-name, ancestor-name) pair.
type LineageIndex struct {
	m map[string][]string
}

// NewLineageIndex returns an empty LineageIndex.
func NewLineageIndex() *LineageIndex {
	return &LineageIndex{m: make(map[string][]string)}
}

// key builds the composite index key for one (node, ancestor) name
// pair. rankLetter/ancRankLetter are the single-byte rank codes from
// taxon.RankLetter; lcName/lcAncName must already be lowercased.
func key(rankLetter, ancRankLetter byte, lcName, lcAncName string) string {
	return fmt.Sprintf("%c:%s:%c:%s", rankLetter, lcName, ancRankLetter, lcAncName)
}

// Add appends taxID as a candidate for the (node, ancestor) name pair,
// avoiding duplicate entries for the same tax_id under the same key.
func (li *LineageIndex) Add(rankLetter, ancRankLetter byte, lcName, lcAncName, taxID string) {
	k := key(rankLetter, ancRankLetter, lcName, lcAncName)
	for _, id := range li.m[k] {
		if id == taxID {
			return
		}
	}
	li.m[k] = append(li.m[k], taxID)
}

// Lookup returns the candidate tax_ids for a (node, ancestor) name
// pair, or nil.
func (li *LineageIndex) Lookup(rankLetter, ancRankLetter byte, lcName, lcAncName string) []string {
	return li.m[key(rankLetter, ancRankLetter, lcName, lcAncName)]
}

// Len returns the number of distinct composite keys stored.
func (li *LineageIndex) Len() int { return len(li.m) }
