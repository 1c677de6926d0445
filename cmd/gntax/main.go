// Package main provides the gntax CLI: the command-line front end for
// the taxonomy integration engine, merging NCBI/GBIF/ENA taxonomies
// and ingesting GenomeHubs data files. Flag parsing itself is a thin
// cobra/viper shell; the engine logic lives in pkg/* and
// internal/io/*.
package main

import "os"

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
