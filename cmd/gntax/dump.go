package main

import (
	"log/slog"

	"github.com/blobtoolkit/core/internal/io/dump"
	"github.com/blobtoolkit/core/pkg/errcode"
	"github.com/blobtoolkit/core/pkg/gnerr"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// getDumpCmd merges cfg.Path plus cfg.Taxonomies and writes the
// result as an NCBI-style dump, without touching any GenomeHubs data
// file.
func getDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Merge configured taxonomies and write an NCBI-style dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Path == "" {
				return &gnerr.Error{Code: errcode.NotDefined, Msg: "<em>path</em> is required"}
			}
			if cfg.Out == "" {
				return &gnerr.Error{Code: errcode.NotDefined, Msg: "<em>out</em> is required"}
			}
			if len(cfg.RootTaxonID) == 0 {
				return &gnerr.Error{Code: errcode.NotDefined, Msg: "<em>root_taxon_id</em> is required"}
			}

			slog.Info("loading taxonomy", "path", cfg.Path, "format", cfg.TaxonomyFormat, "merged", len(cfg.Taxonomies))
			tr, err := dump.LoadTaxonomy(cfg)
			if err != nil {
				return err
			}
			slog.Info("taxonomy loaded", "nodes", humanize.Comma(int64(tr.Len())))

			if err := dump.WriteTaxdump(tr, cfg.Out, cfg.RootTaxonID, cfg.BaseTaxonID); err != nil {
				return err
			}
			slog.Info("dump written", "out", cfg.Out, "roots", cfg.RootTaxonID)
			return nil
		},
	}
}
