package index

import (
	"slices"

	"github.com/blobtoolkit/core/pkg/taxon"
)

// Build constructs the rank-lineage multimap and the fuzzy name index
// from tr, in one O(N*L*k^2) pass over every node whose rank is one of
// taxon.Ranks (L = average lineage length, k = names per node). Every
// name is keyed by Normalize so inserts agree with query-side
// normalization. reporter is notified of progress; pass
// index.NoOpReporter{} when none is wanted.
func Build(tr *taxon.Tree, nameClasses []string, reporter Reporter) (*LineageIndex, *FuzzyIndex) {
	li := NewLineageIndex()
	fz := NewFuzzyIndex()

	root, hasRoot := tr.Root()
	rootID := ""
	if hasRoot {
		rootID = root.TaxID
	}

	candidates := make([]*taxon.Node, 0)
	for _, n := range tr.All() {
		if slices.Contains(taxon.Ranks, n.Rank) {
			candidates = append(candidates, n)
		}
	}

	reporter.Start(len(candidates), "Building lookup index")
	defer reporter.Finish()

	for _, n := range candidates {
		reporter.Increment(1)

		lineage := tr.Lineage(rootID, n.TaxID)
		ownNames := normalizedNames(n, nameClasses)
		if len(ownNames) == 0 {
			continue
		}

		ancIDs := map[string]bool{}
		nodeRankLetter := taxon.RankLetter(n.Rank)

		for _, anc := range lineage {
			if !slices.Contains(taxon.HigherRanks, anc.Rank) {
				continue
			}
			ancIDs[anc.TaxID] = true

			ancNames := normalizedNames(anc, nameClasses)
			ancRankLetter := taxon.RankLetter(anc.Rank)
			for _, own := range ownNames {
				for _, ancName := range ancNames {
					li.Add(nodeRankLetter, ancRankLetter, own, ancName, n.TaxID)
				}
			}
		}

		info := TaxonInfo{
			TaxID:          n.TaxID,
			ScientificName: n.ScientificName,
			Rank:           n.Rank,
			AncIDs:         ancIDs,
		}
		for _, own := range ownNames {
			fz.Insert(own, info)
		}
	}

	return li, fz
}

// normalizedNames returns n's names restricted to classes, each keyed
// through Normalize.
func normalizedNames(n *taxon.Node, classes []string) []string {
	raw := n.NamesByClass(classes)
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		out = append(out, Normalize(name))
	}
	return out
}

// LineageNamePairs builds the name-only lineage index the ENA parser
// uses: for every node, every normalized own-name paired with every
// normalized parent-name maps to the node's tax_id. Unlike Build, this
// ignores rank entirely -- ENA lineages give no rank per ancestor, just
// an ordered name chain.
func LineageNamePairs(tr *taxon.Tree, nameClasses []string) map[[2]string][]string {
	out := make(map[[2]string][]string)
	for _, n := range tr.All() {
		parent, ok := tr.Parent(n.TaxID)
		if !ok {
			continue
		}
		ownNames := normalizedNames(n, nameClasses)
		parentNames := normalizedNames(parent, nameClasses)
		for _, own := range ownNames {
			for _, pn := range parentNames {
				pair := [2]string{own, pn}
				ids := out[pair]
				found := false
				for _, id := range ids {
					if id == n.TaxID {
						found = true
						break
					}
				}
				if !found {
					out[pair] = append(ids, n.TaxID)
				}
			}
		}
	}
	return out
}
