package config

import (
	"slices"

	"github.com/blobtoolkit/core/pkg/gnerr"
)

// Option mutates Options. Invalid values are rejected with a warning,
// leaving the Options in its previous, valid state.
type Option func(*Options)

// Update applies a series of Options to a config, returning the same
// pointer for chaining.
func Update(o *Options, opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OptPath sets the input taxonomy path.
func OptPath(path string) Option {
	return func(o *Options) {
		if path == "" {
			gnerr.Warn("<em>path</em> cannot be empty, ignoring")
			return
		}
		o.Path = path
	}
}

var validFormats = []string{"NCBI", "GBIF", "ENA"}

// OptTaxonomyFormat sets the taxonomy source format. Must be one of
// NCBI, GBIF or ENA (case-sensitive).
func OptTaxonomyFormat(format string) Option {
	return func(o *Options) {
		if !slices.Contains(validFormats, format) {
			gnerr.Warn("<em>taxonomy_format</em> must be one of %v, ignoring %q", validFormats, format)
			return
		}
		o.TaxonomyFormat = format
	}
}

// OptRootTaxonID appends subtree roots to emit.
func OptRootTaxonID(ids ...string) Option {
	return func(o *Options) {
		o.RootTaxonID = append(o.RootTaxonID, ids...)
	}
}

// OptBaseTaxonID sets the root for the ancestor chain on emit.
func OptBaseTaxonID(id string) Option {
	return func(o *Options) {
		o.BaseTaxonID = id
	}
}

// OptOut sets the output directory.
func OptOut(dir string) Option {
	return func(o *Options) {
		if dir == "" {
			gnerr.Warn("<em>out</em> cannot be empty, ignoring")
			return
		}
		o.Out = dir
	}
}

// OptXrefLabel sets the cross-reference label.
func OptXrefLabel(label string) Option {
	return func(o *Options) {
		o.XrefLabel = label
	}
}

// OptNameClasses sets the accepted Name classes for lookup.
func OptNameClasses(classes ...string) Option {
	return func(o *Options) {
		if len(classes) == 0 {
			gnerr.Warn("<em>name_classes</em> cannot be empty, ignoring")
			return
		}
		o.NameClasses = classes
	}
}

// OptCreateTaxa enables or disables grafting of novel taxa.
func OptCreateTaxa(create bool) Option {
	return func(o *Options) {
		o.CreateTaxa = create
	}
}

// OptGenomeHubsFiles sets the user data files to ingest.
func OptGenomeHubsFiles(files ...string) Option {
	return func(o *Options) {
		o.GenomeHubsFiles = files
	}
}

// OptSynonymField sets the attribute field used as a synonym for plot
// titles.
func OptSynonymField(field string) Option {
	return func(o *Options) {
		o.SynonymField = field
	}
}

// OptLogging sets the logging level and format. Invalid levels/formats
// are not rejected here -- pkg/logger already fails soft to Info/tint.
func OptLogging(level, format string) Option {
	return func(o *Options) {
		if level != "" {
			o.Logging.Level = level
		}
		if format != "" {
			o.Logging.Format = format
		}
	}
}
