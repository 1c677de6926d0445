// Package resolver implements the name resolver: given a record's
// taxonomy section (an optional tax_id plus ranked names), it decides
// which existing taxon, if any, the record identifies. The decision is
// reported as a TaxonMatch rather than collapsed to a single optional,
// since downstream ingest behavior (accept, graft, report) differs per
// variant.
package resolver

import "github.com/blobtoolkit/core/pkg/index"

// Candidate is a taxon surfaced by a lookup index query during
// resolution. It is exactly the information the fuzzy/lineage indices
// carry per entry.
type Candidate = index.TaxonInfo

// Status is the tag of the TaxonMatch union. It must never be
// collapsed to a plain boolean or optional: MergeMatch, MultiMatch and
// PutativeMatch each drive distinct ingest behavior from a plain
// Match or a Mismatch.
type Status int

const (
	// None means the primary rank had no exact hit, or the taxonomy
	// section had no rank at all. Fuzzy spell-check suggestions may
	// still be present in RankOptions.
	None Status = iota
	// Match is an unambiguous, confirmed identification.
	Match
	// MergeMatch is a confirmed identification reached through a
	// merged (retired) tax_id redirection rather than a direct hit.
	MergeMatch
	// Mismatch means the name matched one or more existing taxa but
	// none agree with the taxon_id supplied on the record.
	Mismatch
	// MultiMatch means the name matched more than one existing taxon
	// and no taxon_id was supplied to disambiguate directly.
	MultiMatch
	// PutativeMatch is a single name hit with no taxon_id to confirm
	// it; it may still be promoted by higher-rank lineage evidence.
	PutativeMatch
)

func (s Status) String() string {
	switch s {
	case None:
		return "None"
	case Match:
		return "Match"
	case MergeMatch:
		return "MergeMatch"
	case Mismatch:
		return "Mismatch"
	case MultiMatch:
		return "MultiMatch"
	case PutativeMatch:
		return "PutativeMatch"
	default:
		return "Unknown"
	}
}

// TaxonMatch carries the full resolution decision for one record,
// including the evidence gathered at the primary rank and at the
// first higher rank examined, and any spell-check suggestions.
type TaxonMatch struct {
	// PrimaryRank is the first rank key present in the taxonomy
	// section (possibly the unranked "taxon" key).
	PrimaryRank string
	// PrimaryName is the normalized name queried at the primary rank.
	PrimaryName string
	// Status is the outcome at the primary rank.
	Status Status
	// Candidates holds every candidate considered at the primary
	// rank: the single candidate for Match/MergeMatch/PutativeMatch,
	// the disagreeing set for Mismatch, or the full ambiguous set for
	// MultiMatch.
	Candidates []Candidate
	// RankOptions holds fuzzy spell-check suggestions at the primary
	// rank, present only when there was no exact hit there.
	RankOptions []Candidate

	// HigherRank is the higher rank whose name hit the index: the rank
	// of HigherCandidate when one was singled out, else the first
	// higher rank with an ambiguous hit.
	HigherRank string
	// HigherName is the normalized name queried at HigherRank, kept
	// for rank-lineage multimap lookup during post-processing.
	HigherName string
	// HigherStatus is that rank's outcome: None or PutativeMatch.
	HigherStatus Status
	// HigherCandidate is the single candidate backing HigherStatus,
	// when HigherStatus is PutativeMatch.
	HigherCandidate *Candidate
	// HigherOptions holds fuzzy spell-check suggestions at the higher
	// rank examined, present only when there was no exact hit there.
	HigherOptions []Candidate

	// Assigned is the taxon ultimately assigned to the record, set
	// either directly (a primary-rank Match/MergeMatch) or by the
	// post-processing step promoting a MultiMatch/PutativeMatch using
	// higher-rank lineage evidence. Nil when no assignment survives.
	Assigned *Candidate
}
