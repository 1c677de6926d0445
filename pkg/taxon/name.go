package taxon

import "fmt"

// Name classes with defined meaning to the engine. Any other string is
// an xref label supplied by a user or an integrated source.
const (
	ClassScientificName = "scientific name"
	ClassSynonym        = "synonym"
	ClassMergedTaxonID  = "merged taxon id"
)

// Name is one alternative designation attached to a Node.
type Name struct {
	TaxID      string
	Name       string
	UniqueName string
	Class      string
}

// NewName builds a Name, defaulting UniqueName to "{xrefLabel}:{name}"
// when a label is supplied and UniqueName was not already set.
func NewName(taxID, name, class, xrefLabel string) Name {
	n := Name{TaxID: taxID, Name: name, Class: class}
	if xrefLabel != "" {
		n.UniqueName = fmt.Sprintf("%s:%s", xrefLabel, name)
	}
	return n
}
