// Package dump reads and writes the NCBI taxdump line format, and
// parses the GBIF backbone TSV and ENA JSONL feeds into a taxon.Tree.
// It is the impure counterpart to pkg/taxon: every function here opens
// files and returns gnerr.Error-shaped failures for I/O and parse
// problems.
package dump

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/blobtoolkit/core/pkg/errcode"
	"github.com/blobtoolkit/core/pkg/gnerr"
	"github.com/blobtoolkit/core/pkg/taxon"
)

// fieldSep and lineSuffix are the NCBI taxdump's literal delimiters:
// fields are separated by "\t|\t" and each line ends with "\t|" before
// the newline.
const (
	fieldSep   = "\t|\t"
	lineSuffix = "\t|"
)

func openErr(path string, err error) error {
	return &gnerr.Error{
		Code: errcode.FileNotFound,
		Msg:  "Cannot open <em>%s</em>",
		Vars: []any{path},
		Err:  err,
	}
}

func parseErr(path string, line int, reason string) error {
	return &gnerr.Error{
		Code: errcode.ParseError,
		Msg:  "Malformed record in <em>%s</em> at line %d: %s",
		Vars: []any{path, line, reason},
	}
}

func splitDmpLine(line string) []string {
	line = strings.TrimSuffix(line, lineSuffix)
	return strings.Split(line, fieldSep)
}

// ParseTaxdump reads nodes.dmp, names.dmp and, if present, merged.dmp
// from dir into a fresh Tree.
func ParseTaxdump(dir string) (*taxon.Tree, error) {
	tr := taxon.New()

	if err := parseNodesDmp(filepath.Join(dir, "nodes.dmp"), tr); err != nil {
		return nil, err
	}
	if err := parseNamesDmp(filepath.Join(dir, "names.dmp"), tr); err != nil {
		return nil, err
	}

	mergedPath := filepath.Join(dir, "merged.dmp")
	if _, err := os.Stat(mergedPath); err == nil {
		if err := parseMergedDmp(mergedPath, tr); err != nil {
			return nil, err
		}
	}

	return tr, nil
}

func parseNodesDmp(path string, tr *taxon.Tree) error {
	f, err := os.Open(path)
	if err != nil {
		return openErr(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitDmpLine(line)
		if len(fields) < 3 {
			return parseErr(path, lineNo, "expected at least 3 fields")
		}
		tr.Insert(&taxon.Node{
			TaxID:       strings.TrimSpace(fields[0]),
			ParentTaxID: strings.TrimSpace(fields[1]),
			Rank:        strings.TrimSpace(fields[2]),
		})
	}
	return scanner.Err()
}

func parseNamesDmp(path string, tr *taxon.Tree) error {
	f, err := os.Open(path)
	if err != nil {
		return openErr(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitDmpLine(line)
		if len(fields) < 4 {
			return parseErr(path, lineNo, "expected at least 4 fields")
		}
		taxID := strings.TrimSpace(fields[0])
		nm := taxon.Name{
			TaxID:      taxID,
			Name:       strings.TrimSpace(fields[1]),
			UniqueName: strings.TrimSpace(fields[2]),
			Class:      strings.TrimSpace(fields[3]),
		}
		tr.AddName(taxID, nm)
	}
	return scanner.Err()
}

func parseMergedDmp(path string, tr *taxon.Tree) error {
	f, err := os.Open(path)
	if err != nil {
		return openErr(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitDmpLine(line)
		if len(fields) < 2 {
			return parseErr(path, lineNo, "expected 2 fields")
		}
		oldID := strings.TrimSpace(fields[0])
		newID := strings.TrimSpace(fields[1])
		tr.AddName(newID, taxon.Name{TaxID: newID, Name: oldID, Class: taxon.ClassMergedTaxonID})
	}
	return scanner.Err()
}
