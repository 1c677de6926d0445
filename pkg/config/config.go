// Package config provides configuration management for the taxonomy
// integration engine.
//
// This package has no I/O dependencies (no file operations, no network
// calls); that's internal/io/config's job. Validation writes
// user-facing warnings via gnerr.Warn.
//
// # Configuration sources
//
// Precedence (highest to lowest): CLI flags > config.yaml > defaults.
// Environment variables are not read.
//
// # Design principles
//
//   - Default config (from New()) is always valid - no validation needed.
//   - All mutations go through Option functions - the only way to modify Options.
//   - Invalid options are rejected with gnerr.Warn() - config remains valid.
//   - Config documents merge outer-over-inner, field by field (see
//     internal/io/config.Merge), mirroring the recursive config_file
//     loading of the original taxonomy CLI.
package config

// Options is the taxonomy CLI config: input sources, output targets,
// lookup and graft behavior, and logging.
type Options struct {
	// Path is the input taxonomy directory (NCBI) or file (GBIF/ENA).
	Path string `mapstructure:"path" yaml:"path,omitempty"`

	// TaxonomyFormat selects the parser: "NCBI", "GBIF" or "ENA".
	TaxonomyFormat string `mapstructure:"taxonomy_format" yaml:"taxonomy_format,omitempty"`

	// RootTaxonID lists the subtree roots to emit on dump.
	RootTaxonID []string `mapstructure:"root_taxon_id" yaml:"root_taxon_id,omitempty"`

	// BaseTaxonID is the root for the ancestor chain on emit.
	BaseTaxonID string `mapstructure:"base_taxon_id" yaml:"base_taxon_id,omitempty"`

	// Out is the output directory for the dump writer.
	Out string `mapstructure:"out" yaml:"out,omitempty"`

	// XrefLabel is the label applied to cross-reference names created
	// while integrating an external taxonomy or grafting novel taxa.
	XrefLabel string `mapstructure:"xref_label" yaml:"xref_label,omitempty"`

	// NameClasses lists the Name classes accepted for lookup-index
	// construction. Defaults to DefaultNameClasses.
	NameClasses []string `mapstructure:"name_classes" yaml:"name_classes,omitempty"`

	// CreateTaxa permits the graft engine to insert novel taxa.
	CreateTaxa bool `mapstructure:"create_taxa" yaml:"create_taxa,omitempty"`

	// Taxonomies lists additional taxonomies to merge in, in order,
	// after Path is loaded.
	Taxonomies []Options `mapstructure:"taxonomies" yaml:"taxonomies,omitempty"`

	// GenomeHubsFiles lists user data files to ingest.
	GenomeHubsFiles []string `mapstructure:"genomehubs_files" yaml:"genomehubs_files,omitempty"`

	// SynonymField is the attribute field used as a synonym for plot
	// titles (consumed only by the out-of-scope plotting subsystem;
	// carried here because it is part of the same config document).
	SynonymField string `mapstructure:"synonym_field" yaml:"synonym_field,omitempty"`

	// ConfigFile, when set, is loaded and merged under these options:
	// any field left unset here is filled in from the loaded file, and
	// an already-set field is never overwritten (outer wins). See
	// internal/io/config.LoadResolved.
	ConfigFile string `mapstructure:"config_file" yaml:"config_file,omitempty"`

	// Logging configures the shared slog logger.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`

	// HomeDir determines where config and cache directories reside. It
	// must be set by the CLI during init; there is no default.
	HomeDir string `yaml:"-"`
}

// LoggingConfig provides typical settings for application logs.
type LoggingConfig struct {
	// Format can be "json", "text" or "tint" (user-facing and colored).
	Format string `mapstructure:"format" yaml:"format,omitempty"`
	// Level of logging -- "error", "warn", "info", "debug".
	Level string `mapstructure:"level" yaml:"level,omitempty"`
}

// New creates Options with sensible default values. The returned
// config is always valid and ready to use. Defaults can be overridden
// with Option functions via Update.
func New() *Options {
	return &Options{
		TaxonomyFormat: "NCBI",
		NameClasses:    append([]string(nil), DefaultNameClasses...),
		Logging: LoggingConfig{
			Format: "tint",
			Level:  "info",
		},
	}
}

// Clone returns a deep-enough copy of o for safe independent mutation
// (slices are copied, nested Options are cloned recursively).
func (o *Options) Clone() *Options {
	if o == nil {
		return nil
	}
	c := *o
	c.RootTaxonID = append([]string(nil), o.RootTaxonID...)
	c.NameClasses = append([]string(nil), o.NameClasses...)
	c.GenomeHubsFiles = append([]string(nil), o.GenomeHubsFiles...)
	if o.Taxonomies != nil {
		c.Taxonomies = make([]Options, len(o.Taxonomies))
		for i := range o.Taxonomies {
			c.Taxonomies[i] = *o.Taxonomies[i].Clone()
		}
	}
	return &c
}
