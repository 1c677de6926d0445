package dump

import (
	"github.com/blobtoolkit/core/pkg/config"
	"github.com/blobtoolkit/core/pkg/errcode"
	"github.com/blobtoolkit/core/pkg/gnerr"
	"github.com/blobtoolkit/core/pkg/taxon"
)

// LoadTaxonomy builds a single Tree from opts: it parses opts.Path
// under opts.TaxonomyFormat, then merges in every entry of
// opts.Taxonomies, in order. An ENA entry never starts a tree of its
// own (ENA records are always attached to an existing tree) so it is
// applied by ParseENA directly against the tree accumulated so far
// rather than parsed standalone and merged.
func LoadTaxonomy(opts *config.Options) (*taxon.Tree, error) {
	tr, err := parseOne(opts.Path, opts.TaxonomyFormat, opts.NameClasses)
	if err != nil {
		return nil, err
	}

	for _, sub := range opts.Taxonomies {
		if sub.TaxonomyFormat == "ENA" {
			if err := ParseENA(sub.Path, tr, opts.NameClasses); err != nil {
				return nil, err
			}
			continue
		}
		other, err := parseOne(sub.Path, sub.TaxonomyFormat, opts.NameClasses)
		if err != nil {
			return nil, err
		}
		tr.Merge(other)
	}

	return tr, nil
}

func parseOne(path, format string, nameClasses []string) (*taxon.Tree, error) {
	switch format {
	case "GBIF":
		return ParseGBIF(path)
	case "ENA":
		return nil, &gnerr.Error{
			Code: errcode.NotDefined,
			Msg:  "ENA taxonomy <em>%s</em> has no base tree to attach to; list it under taxonomies, not as the top-level path",
			Vars: []any{path},
		}
	case "NCBI", "":
		return ParseTaxdump(path)
	default:
		return nil, &gnerr.Error{
			Code: errcode.NotDefined,
			Msg:  "Unknown taxonomy_format <em>%s</em>, expected NCBI, GBIF or ENA",
			Vars: []any{format},
		}
	}
}
