package resolver

import (
	"slices"

	"github.com/blobtoolkit/core/pkg/index"
	"github.com/blobtoolkit/core/pkg/taxon"
)

// taxonIDKey and taxonKey are the taxonomy_section keys that are not
// themselves ranks: the direct identifier and the generic unranked
// primary field GenomeHubs configs may declare instead of a specific
// rank.
const (
	taxonIDKey = "taxon_id"
	taxonKey   = "taxon"
)

func isSentinel(v string) bool {
	return v == "" || v == "None" || v == "NA"
}

// Resolver resolves taxonomy sections against one tree and the two
// lookup indices built from it. It never mutates any of them.
type Resolver struct {
	tree    *taxon.Tree
	lineage *index.LineageIndex
	fuzzy   *index.FuzzyIndex
}

// New returns a Resolver bound to tree and its companion rank-lineage
// and fuzzy indices.
func New(tree *taxon.Tree, lineage *index.LineageIndex, fuzzy *index.FuzzyIndex) *Resolver {
	return &Resolver{tree: tree, lineage: lineage, fuzzy: fuzzy}
}

// rankOrder lists, in a fixed order, every key of section that the
// resolver treats as a rank: the unranked "taxon" primary field first
// if present, then every taxon.Ranks entry present, most specific first.
func rankOrder(section map[string]string) []string {
	var order []string
	if _, ok := section[taxonKey]; ok {
		order = append(order, taxonKey)
	}
	for _, r := range taxon.Ranks {
		if _, ok := section[r]; ok {
			order = append(order, r)
		}
	}
	return order
}

// Resolve decides which taxon, if any, section identifies.
func (r *Resolver) Resolve(section map[string]string) TaxonMatch {
	match := TaxonMatch{}

	taxonID, hasID := section[taxonIDKey]
	idValid := hasID && !isSentinel(taxonID)

	if idValid {
		if n, ok := r.tree.GetDirect(taxonID); ok {
			info := Candidate{TaxID: n.TaxID, ScientificName: n.ScientificName, Rank: n.Rank}
			match.Status = Match
			match.Candidates = []Candidate{info}
			match.Assigned = &info
			return match
		}
	}

	order := rankOrder(section)
	if len(order) == 0 {
		return match
	}
	match.PrimaryRank = order[0]

	for i, rank := range order {
		if i > 0 && slices.Contains(taxon.LowerRanks, rank) {
			continue // lower-rank context below the primary rank
		}

		normalized := index.Normalize(section[rank])
		exact := r.fuzzy.GetExact(normalized)

		if i == 0 {
			match.PrimaryName = normalized
			r.resolvePrimary(&match, exact, normalized, taxonID, idValid)
			if match.Status == Match || match.Status == MergeMatch || match.Status == Mismatch {
				return match
			}
			continue
		}
		if stop := r.resolveHigher(&match, exact, normalized, rank); stop {
			break
		}
	}

	r.postProcess(&match)
	return match
}

// resolvePrimary applies the primary-rank branch of the algorithm:
// exact hit with multiple entries, exact hit with one entry, or no
// exact hit (fuzzy spell-check).
func (r *Resolver) resolvePrimary(match *TaxonMatch, exact []Candidate, normalized, taxonID string, idValid bool) {
	switch {
	case len(exact) > 1:
		if !idValid {
			match.Status = MultiMatch
			match.Candidates = exact
			return
		}
		matched, merged, mismatched := r.splitByID(exact, taxonID)
		switch {
		case len(matched) == 1:
			match.Status = Match
			match.Candidates = matched
			match.Assigned = &matched[0]
		case len(merged) == 1:
			match.Status = MergeMatch
			match.Candidates = merged
			match.Assigned = &merged[0]
		default:
			match.Status = Mismatch
			match.Candidates = mismatched
		}

	case len(exact) == 1:
		c := exact[0]
		if !idValid {
			match.Status = PutativeMatch
			match.Candidates = []Candidate{c}
			return
		}
		if c.TaxID == taxonID {
			match.Status = Match
			match.Candidates = []Candidate{c}
			match.Assigned = &c
			return
		}
		if canon, ok := r.tree.ResolveID(taxonID); ok && canon == c.TaxID {
			match.Status = MergeMatch
			match.Candidates = []Candidate{c}
			match.Assigned = &c
			return
		}
		match.Status = Mismatch
		match.Candidates = []Candidate{c}

	default:
		match.RankOptions = r.spellCheck(normalized, match.PrimaryRank, true)
	}
}

// resolveHigher applies the higher-rank branch. It returns true when
// the algorithm should stop iterating further higher ranks: an exact
// hit with a single candidate is decisive and terminal. An ambiguous
// hit continues on to the next rank, but its (rank, name) pair is
// still recorded so postProcess can consult the rank-lineage multimap
// with it.
func (r *Resolver) resolveHigher(match *TaxonMatch, exact []Candidate, normalized, rank string) bool {
	if len(exact) == 0 {
		match.HigherOptions = append(match.HigherOptions, r.spellCheck(normalized, "", false)...)
		return false
	}
	if len(exact) == 1 {
		c := exact[0]
		match.HigherRank = rank
		match.HigherName = normalized
		match.HigherStatus = PutativeMatch
		match.HigherCandidate = &c
		return true
	}
	if match.HigherRank == "" {
		match.HigherRank = rank
		match.HigherName = normalized
	}
	return false
}

// splitByID partitions exact-hit candidates by how they relate to a
// supplied taxon_id: those whose own id agrees, those reachable only
// through merged-id redirection, and the rest (true disagreements).
func (r *Resolver) splitByID(exact []Candidate, taxonID string) (matched, merged, mismatched []Candidate) {
	canon, hasCanon := r.tree.ResolveID(taxonID)
	for _, c := range exact {
		switch {
		case c.TaxID == taxonID:
			matched = append(matched, c)
		case hasCanon && canon == c.TaxID:
			merged = append(merged, c)
		default:
			mismatched = append(mismatched, c)
		}
	}
	return matched, merged, mismatched
}

// spellCheck issues a bounded edit-distance query and filters the
// results to the ranks the caller is allowed to consider: exactly
// primaryRank when primaryOnly is set (rank 0), any rank otherwise.
func (r *Resolver) spellCheck(normalized, primaryRank string, primaryOnly bool) []Candidate {
	const maxEditDistance = 2
	hits := r.fuzzy.Fuzzy(normalized, maxEditDistance)
	if !primaryOnly {
		return hits
	}
	var out []Candidate
	for _, h := range hits {
		if h.Rank == primaryRank {
			out = append(out, h)
		}
	}
	return out
}

// postProcess applies the lineage-disambiguation step: a MultiMatch
// or PutativeMatch at the primary rank is promoted to an assignment
// only if exactly one of its candidates is consistent with the
// higher-rank evidence. A single higher-rank candidate is checked
// against each primary candidate's anc_ids; failing that, the
// (primary-name, higher-name) pair is looked up in the rank-lineage
// multimap, which can still single out a candidate when the higher
// name alone was ambiguous.
func (r *Resolver) postProcess(match *TaxonMatch) {
	if match.Status != MultiMatch && match.Status != PutativeMatch {
		return
	}

	if match.HigherCandidate != nil {
		higherID := match.HigherCandidate.TaxID
		var survivors []Candidate
		for _, c := range match.Candidates {
			if c.AncIDs != nil && c.AncIDs[higherID] {
				survivors = append(survivors, c)
			}
		}
		if len(survivors) == 1 {
			match.Assigned = &survivors[0]
			return
		}
	}

	if r.lineage == nil || match.HigherName == "" {
		return
	}
	ids := r.lineage.Lookup(
		taxon.RankLetter(match.PrimaryRank),
		taxon.RankLetter(match.HigherRank),
		match.PrimaryName, match.HigherName,
	)
	if len(ids) != 1 {
		return
	}
	for i := range match.Candidates {
		if match.Candidates[i].TaxID == ids[0] {
			match.Assigned = &match.Candidates[i]
			return
		}
	}
}
