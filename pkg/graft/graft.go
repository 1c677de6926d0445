// Package graft implements the graft engine: it creates new taxa for
// ingest rows the name resolver could only place at a higher rank,
// hanging them off the unambiguous ancestor the resolver found.
package graft

import (
	"fmt"

	"github.com/blobtoolkit/core/pkg/taxon"
)

// Request describes one taxon to graft onto an existing tree.
type Request struct {
	// AltTaxonID becomes the new node's tax_id. When the Engine has an
	// xref label, it is also recorded as a cross-reference Name on the
	// new node, alongside the scientific-name Name.
	AltTaxonID string
	// ParentTaxID is the tax_id of the higher-rank ancestor the
	// resolver reported as an unambiguous PutativeMatch.
	ParentTaxID string
	// Rank is the primary rank of the ingest row (e.g. "species").
	Rank string
	// ScientificName is the row's primary name, recorded as both the
	// new node's ScientificName and its sole scientific-name Name.
	ScientificName string
}

// Engine grafts new taxa onto a tree, tracking whether the lookup
// indices built from that tree are now stale. The caller decides when
// to pay for a rebuild; the indices are only required to be fresh at
// batch boundaries, not after every graft.
type Engine struct {
	tree      *taxon.Tree
	xrefLabel string
	dirty     bool
}

// New returns an Engine that grafts onto tree. xrefLabel may be empty,
// in which case grafted nodes receive no cross-reference Name.
func New(tree *taxon.Tree, xrefLabel string) *Engine {
	return &Engine{tree: tree, xrefLabel: xrefLabel}
}

// Dirty reports whether any graft has happened since the last
// MarkClean, meaning the rank-lineage and fuzzy indices built from the
// tree no longer reflect it.
func (e *Engine) Dirty() bool { return e.dirty }

// XrefLabel returns the cross-reference label this Engine applies to
// grafted nodes, or "" if none was configured.
func (e *Engine) XrefLabel() string { return e.xrefLabel }

// MarkClean clears the dirty flag, to be called once the caller has
// rebuilt its indices.
func (e *Engine) MarkClean() { e.dirty = false }

// Graft creates req's taxon as a child of ParentTaxID and appends it to
// the tree store. It returns an error if the parent is unknown or
// AltTaxonID is already in use, since either would violate the tree's
// uniqueness and connectivity invariants.
func (e *Engine) Graft(req Request) (*taxon.Node, error) {
	if req.AltTaxonID == "" {
		return nil, fmt.Errorf("graft: alt_taxon_id is required")
	}
	if _, exists := e.tree.GetDirect(req.AltTaxonID); exists {
		return nil, fmt.Errorf("graft: tax_id %q already present", req.AltTaxonID)
	}
	if _, ok := e.tree.GetDirect(req.ParentTaxID); !ok {
		return nil, fmt.Errorf("graft: parent tax_id %q not found", req.ParentTaxID)
	}

	n := &taxon.Node{
		TaxID:          req.AltTaxonID,
		ParentTaxID:    req.ParentTaxID,
		Rank:           req.Rank,
		ScientificName: req.ScientificName,
	}
	e.tree.Insert(n)
	e.tree.AddName(n.TaxID, taxon.NewName(n.TaxID, req.ScientificName, taxon.ClassScientificName, ""))

	if e.xrefLabel != "" {
		xref := taxon.Name{
			TaxID:      n.TaxID,
			Name:       req.AltTaxonID,
			UniqueName: fmt.Sprintf("%s:%s", e.xrefLabel, req.AltTaxonID),
			Class:      e.xrefLabel,
		}
		e.tree.AddName(n.TaxID, xref)
	}

	e.dirty = true
	return n, nil
}
