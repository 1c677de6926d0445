package dump

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blobtoolkit/core/pkg/taxon"
)

// WriteTaxdump emits rootIDs' subtrees (and, if baseTaxonID is set,
// every deduplicated ancestor from baseTaxonID down to each root) to
// nodes.dmp and names.dmp under outDir, in the NCBI taxdump line
// syntax. Every node is written at most once even if it is an
// ancestor of more than one root.
func WriteTaxdump(tr *taxon.Tree, outDir string, rootIDs []string, baseTaxonID string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return openErr(outDir, err)
	}

	nodesFile, err := os.Create(filepath.Join(outDir, "nodes.dmp"))
	if err != nil {
		return openErr(outDir, err)
	}
	defer nodesFile.Close()
	namesFile, err := os.Create(filepath.Join(outDir, "names.dmp"))
	if err != nil {
		return openErr(outDir, err)
	}
	defer namesFile.Close()

	nodesW := bufio.NewWriter(nodesFile)
	namesW := bufio.NewWriter(namesFile)

	emitted := make(map[string]bool)

	if baseTaxonID != "" {
		if base, ok := tr.Get(baseTaxonID); ok {
			if err := writeNode(nodesW, namesW, base, emitted); err != nil {
				return err
			}
		}
		for _, rootID := range rootIDs {
			for _, anc := range tr.Lineage(baseTaxonID, rootID) {
				if err := writeNode(nodesW, namesW, anc, emitted); err != nil {
					return err
				}
			}
		}
	}

	for _, rootID := range rootIDs {
		if err := writeSubtree(tr, nodesW, namesW, rootID, emitted); err != nil {
			return err
		}
	}

	if err := nodesW.Flush(); err != nil {
		return err
	}
	return namesW.Flush()
}

func writeSubtree(tr *taxon.Tree, nodesW, namesW *bufio.Writer, taxID string, emitted map[string]bool) error {
	n, ok := tr.Get(taxID)
	if !ok {
		return nil
	}
	if err := writeNode(nodesW, namesW, n, emitted); err != nil {
		return err
	}
	for _, childID := range tr.Children(taxID) {
		if err := writeSubtree(tr, nodesW, namesW, childID, emitted); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(nodesW, namesW *bufio.Writer, n *taxon.Node, emitted map[string]bool) error {
	if emitted[n.TaxID] {
		return nil
	}
	emitted[n.TaxID] = true

	if _, err := fmt.Fprintf(nodesW, "%s%s%s%s%s%s\n", n.TaxID, fieldSep, n.ParentTaxID, fieldSep, n.Rank, lineSuffix); err != nil {
		return err
	}
	for _, nm := range scientificNamePriority(n.Names) {
		if _, err := fmt.Fprintf(namesW, "%s%s%s%s%s%s%s%s\n", n.TaxID, fieldSep, nm.Name, fieldSep, nm.UniqueName, fieldSep, nm.Class, lineSuffix); err != nil {
			return err
		}
	}
	return nil
}

// scientificNamePriority reorders names so the scientific-name class,
// if present, is written first.
func scientificNamePriority(names []taxon.Name) []taxon.Name {
	out := make([]taxon.Name, 0, len(names))
	for _, nm := range names {
		if nm.Class == taxon.ClassScientificName {
			out = append(out, nm)
		}
	}
	for _, nm := range names {
		if nm.Class != taxon.ClassScientificName {
			out = append(out, nm)
		}
	}
	return out
}
