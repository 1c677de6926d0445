// Package config provides I/O operations for loading the taxonomy CLI
// configuration from files and flags. This is an impure package that
// handles file system operations; pkg/config holds the Options shape
// and its pure mutators.
package config

import (
	"os"
	"path/filepath"

	"github.com/blobtoolkit/core/pkg/config"
	"github.com/blobtoolkit/core/pkg/errcode"
	"github.com/blobtoolkit/core/pkg/gnerr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Load reads a single YAML document at path into a config.New()-seeded
// Options and returns it. It does not follow ConfigFile references --
// use LoadResolved for that. An empty path is not an error: it returns
// the defaults unchanged.
func Load(path string) (*config.Options, error) {
	opts := config.New()
	if path == "" {
		return opts, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, &gnerr.Error{
				Code: errcode.FileNotFound,
				Msg:  "Config file <em>%s</em> not found",
				Vars: []any{path},
				Err:  err,
			}
		}
		return nil, &gnerr.Error{
			Code: errcode.ParseError,
			Msg:  "Cannot read config file <em>%s</em>",
			Vars: []any{path},
			Err:  err,
		}
	}

	if err := v.Unmarshal(opts); err != nil {
		return nil, &gnerr.Error{
			Code: errcode.SerdeError,
			Msg:  "Cannot parse config file <em>%s</em>",
			Vars: []any{path},
			Err:  err,
		}
	}
	return opts, nil
}

// LoadResolved reads path and recursively merges in the document named
// by its ConfigFile field, if any, with fields already set in the
// referencing document always winning over the referenced one (outer
// wins, per pkg/config's documented precedence). A ConfigFile path is
// resolved relative to the directory of the document that names it.
// Cycles (a document that, directly or transitively, references
// itself) are rejected.
func LoadResolved(path string) (*config.Options, error) {
	return loadResolved(path, map[string]bool{})
}

func loadResolved(path string, seen map[string]bool) (*config.Options, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if seen[abs] {
		return nil, &gnerr.Error{
			Code: errcode.ParseError,
			Msg:  "Config file <em>%s</em> references itself via config_file",
			Vars: []any{path},
		}
	}
	seen[abs] = true

	outer, err := Load(path)
	if err != nil {
		return nil, err
	}
	if outer.ConfigFile == "" {
		return outer, nil
	}

	refPath := outer.ConfigFile
	if !filepath.IsAbs(refPath) {
		refPath = filepath.Join(filepath.Dir(abs), refPath)
	}
	inner, err := loadResolved(refPath, seen)
	if err != nil {
		return nil, err
	}
	return Merge(outer, inner), nil
}

// Merge composes outer over inner, field by field: any field left at
// its zero value in outer is filled in from inner, and a field already
// set in outer is never overwritten. The result's ConfigFile is always
// cleared, since the reference it named has already been resolved.
func Merge(outer, inner *config.Options) *config.Options {
	if inner == nil {
		return outer.Clone()
	}
	if outer == nil {
		return inner.Clone()
	}

	merged := outer.Clone()

	if merged.Path == "" {
		merged.Path = inner.Path
	}
	if merged.TaxonomyFormat == "" {
		merged.TaxonomyFormat = inner.TaxonomyFormat
	}
	if len(merged.RootTaxonID) == 0 {
		merged.RootTaxonID = append([]string(nil), inner.RootTaxonID...)
	}
	if merged.BaseTaxonID == "" {
		merged.BaseTaxonID = inner.BaseTaxonID
	}
	if merged.Out == "" {
		merged.Out = inner.Out
	}
	if merged.XrefLabel == "" {
		merged.XrefLabel = inner.XrefLabel
	}
	if len(merged.NameClasses) == 0 {
		merged.NameClasses = append([]string(nil), inner.NameClasses...)
	}
	if !merged.CreateTaxa {
		merged.CreateTaxa = inner.CreateTaxa
	}
	if len(merged.Taxonomies) == 0 {
		merged.Taxonomies = append([]config.Options(nil), inner.Taxonomies...)
	}
	if len(merged.GenomeHubsFiles) == 0 {
		merged.GenomeHubsFiles = append([]string(nil), inner.GenomeHubsFiles...)
	}
	if merged.SynonymField == "" {
		merged.SynonymField = inner.SynonymField
	}
	if merged.Logging.Format == "" {
		merged.Logging.Format = inner.Logging.Format
	}
	if merged.Logging.Level == "" {
		merged.Logging.Level = inner.Logging.Level
	}
	if merged.HomeDir == "" {
		merged.HomeDir = inner.HomeDir
	}
	merged.ConfigFile = ""

	return merged
}

// BindFlags overlays any cobra flags the caller has marked Changed
// onto opts, giving CLI flags precedence over whatever Load/LoadResolved
// produced. Only the flags a taxonomy-engine command actually exposes
// are handled.
func BindFlags(cmd *cobra.Command, opts *config.Options) (*config.Options, error) {
	flags := cmd.Flags()

	if flags.Changed("path") {
		opts.Path, _ = flags.GetString("path")
	}
	if flags.Changed("taxonomy-format") {
		opts.TaxonomyFormat, _ = flags.GetString("taxonomy-format")
	}
	if flags.Changed("root-taxon-id") {
		opts.RootTaxonID, _ = flags.GetStringSlice("root-taxon-id")
	}
	if flags.Changed("base-taxon-id") {
		opts.BaseTaxonID, _ = flags.GetString("base-taxon-id")
	}
	if flags.Changed("out") {
		opts.Out, _ = flags.GetString("out")
	}
	if flags.Changed("xref-label") {
		opts.XrefLabel, _ = flags.GetString("xref-label")
	}
	if flags.Changed("create-taxa") {
		opts.CreateTaxa, _ = flags.GetBool("create-taxa")
	}
	if flags.Changed("log-level") {
		opts.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		opts.Logging.Format, _ = flags.GetString("log-format")
	}

	return opts, nil
}
