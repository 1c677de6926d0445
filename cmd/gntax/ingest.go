package main

import (
	"log/slog"
	"path/filepath"

	"github.com/blobtoolkit/core/internal/io/dump"
	"github.com/blobtoolkit/core/internal/io/ingest"
	"github.com/blobtoolkit/core/internal/io/progress"
	"github.com/blobtoolkit/core/pkg/errcode"
	"github.com/blobtoolkit/core/pkg/gnerr"
	"github.com/blobtoolkit/core/pkg/index"
	"github.com/blobtoolkit/core/pkg/taxon"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// getIngestCmd runs the full pipeline: load and merge the configured
// taxonomies, build the lookup indices, stream every
// cfg.GenomeHubsFiles entry through the ingest pipeline, rebuilding
// the indices between files so a graft in one file is visible to name
// resolution in the next, then, when out is set, write the merged,
// ingested tree as an NCBI-style dump.
func getIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Merge taxonomies, ingest GenomeHubs data files, and write a dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Path == "" {
				return &gnerr.Error{Code: errcode.NotDefined, Msg: "<em>path</em> is required"}
			}
			if len(cfg.GenomeHubsFiles) == 0 {
				return &gnerr.Error{Code: errcode.NotDefined, Msg: "<em>genomehubs_files</em> is required for ingest"}
			}

			slog.Info("loading taxonomy", "path", cfg.Path, "format", cfg.TaxonomyFormat, "merged", len(cfg.Taxonomies))
			tr, err := dump.LoadTaxonomy(cfg)
			if err != nil {
				return err
			}
			slog.Info("taxonomy loaded", "nodes", humanize.Comma(int64(tr.Len())))

			lineage, fuzzy := index.Build(tr, cfg.NameClasses, progress.New())

			for _, ghubsPath := range cfg.GenomeHubsFiles {
				lineage, fuzzy, err = ingestFile(tr, lineage, fuzzy, ghubsPath)
				if err != nil {
					return err
				}
			}

			if cfg.Out == "" {
				return nil
			}
			if len(cfg.RootTaxonID) == 0 {
				return &gnerr.Error{Code: errcode.NotDefined, Msg: "<em>root_taxon_id</em> is required to write <em>out</em>"}
			}
			if err := dump.WriteTaxdump(tr, cfg.Out, cfg.RootTaxonID, cfg.BaseTaxonID); err != nil {
				return err
			}
			slog.Info("dump written", "out", cfg.Out, "roots", cfg.RootTaxonID)
			return nil
		},
	}
}

// ingestFile loads the GenomeHubs config at ghubsPath, derives its
// data file from file.name (resolved relative to the config's own
// directory), ingests it into tr, and returns freshly rebuilt lookup
// indices -- a batch boundary, so a graft made while ingesting one
// file is resolvable by name when the next file is ingested.
func ingestFile(tr *taxon.Tree, lineage *index.LineageIndex, fuzzy *index.FuzzyIndex, ghubsPath string) (*index.LineageIndex, *index.FuzzyIndex, error) {
	ghCfg, err := ingest.LoadGHubsConfig(ghubsPath)
	if err != nil {
		return nil, nil, err
	}
	if ghCfg.File.Name == "" {
		return nil, nil, &gnerr.Error{
			Code: errcode.NotDefined,
			Msg:  "GenomeHubs config <em>%s</em> has no file.name",
			Vars: []any{ghubsPath},
		}
	}
	dataPath := filepath.Join(filepath.Dir(ghubsPath), ghCfg.File.Name)

	pipeline := ingest.NewPipeline(tr, lineage, fuzzy, ghCfg, cfg.NameClasses, cfg.XrefLabel,
		ingest.WithCreateTaxa(cfg.CreateTaxa),
		ingest.WithReporter(progress.New()),
	)

	stats, err := pipeline.IngestFile(dataPath, nil)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("ingested GenomeHubs file",
		"config", ghubsPath, "data", dataPath,
		"rows", stats.Rows, "matched", stats.Matched,
		"grafted", stats.Grafted, "unresolved", stats.Unresolved)

	pipeline.Rebuild(index.NoOpReporter{})
	return pipeline.Lineage(), pipeline.Fuzzy(), nil
}
