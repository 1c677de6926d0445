package main

import (
	"fmt"
	"log/slog"
	"os"

	ioconfig "github.com/blobtoolkit/core/internal/io/config"
	"github.com/blobtoolkit/core/pkg/config"
	"github.com/blobtoolkit/core/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Options
	log     *slog.Logger
)

// getRootCmd builds the gntax command tree. Extracted as a function
// so tests can construct a fresh tree per case.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gntax",
		Short: "gntax merges taxonomies and ingests GenomeHubs data files",
		Long: `gntax ingests heterogeneous taxonomy sources (NCBI taxdump, GBIF
backbone, ENA JSONL) into one consistent tree, resolves GenomeHubs
data-file taxa against it by name and lineage, grafts novel taxa when
asked to, and emits a normalized NCBI-style dump.

Configuration is read from a YAML document (--config), recursively
merged through any config_file it names, then overlaid with whatever
flags were actually passed on the command line.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				if home, herr := os.UserHomeDir(); herr == nil {
					if exists, existsErr := ioconfig.ConfigFileExists(home); existsErr == nil && !exists {
						if path, genErr := ioconfig.GenerateDefaultConfig(home); genErr == nil {
							fmt.Fprintf(cmd.ErrOrStderr(), "Generated default config at %s\n", path)
							cfgFile = path
						}
					} else if existsErr == nil && exists {
						cfgFile = config.ConfigFilePath(home)
					}
				}
			}

			loaded, err := ioconfig.LoadResolved(cfgFile)
			if err != nil {
				return err
			}
			cfg, err = ioconfig.BindFlags(cmd, loaded)
			if err != nil {
				return err
			}

			log = logger.New(&cfg.Logging)
			slog.SetDefault(log)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"taxonomy CLI config YAML (default: ~/.config/gntax/config.yaml, generated if missing)")
	rootCmd.PersistentFlags().String("path", "", "input taxonomy directory (NCBI) or file (GBIF/ENA)")
	rootCmd.PersistentFlags().String("taxonomy-format", "", "NCBI, GBIF or ENA")
	rootCmd.PersistentFlags().StringSlice("root-taxon-id", nil, "subtree root(s) to emit")
	rootCmd.PersistentFlags().String("base-taxon-id", "", "root for the ancestor chain on emit")
	rootCmd.PersistentFlags().String("out", "", "output directory for the dump writer")
	rootCmd.PersistentFlags().String("xref-label", "", "label applied to cross-reference names")
	rootCmd.PersistentFlags().Bool("create-taxa", false, "permit grafting novel taxa during ingest")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "json, text or tint")

	rootCmd.AddCommand(getDumpCmd(), getIngestCmd())

	return rootCmd
}
