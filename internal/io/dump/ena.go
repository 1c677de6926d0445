package dump

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"github.com/blobtoolkit/core/pkg/index"
	"github.com/blobtoolkit/core/pkg/taxon"
)

// enaRecord is one line of an ENA taxonomy JSONL feed.
type enaRecord struct {
	TaxID          string `json:"taxId"`
	ScientificName string `json:"scientificName"`
	Rank           string `json:"rank"`
	Lineage        string `json:"lineage"`
}

// ParseENA attaches an ENA JSONL feed's records onto an existing tree.
// Unlike ParseTaxdump/ParseGBIF, ENA never stands alone: each record's
// parent is found by walking its semicolon-delimited, root-first
// lineage string from the tip toward the root, matching adjacent
// (child_name, parent_name) pairs against pairs, a name-only lineage
// index built once from tr before the pass begins. The first pair
// yielding a unique existing tax_id determines the parent; a record
// with no unique pair is skipped.
func ParseENA(path string, tr *taxon.Tree, nameClasses []string) error {
	f, err := os.Open(path)
	if err != nil {
		return openErr(path, err)
	}
	defer f.Close()

	pairs := index.LineageNamePairs(tr, nameClasses)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec enaRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return parseErr(path, lineNo, "invalid JSON: "+err.Error())
		}

		parentID, ok := resolveENAParent(rec, pairs)
		if !ok {
			continue
		}

		tr.Insert(&taxon.Node{TaxID: rec.TaxID, ParentTaxID: parentID, Rank: rec.Rank})
		tr.AddName(rec.TaxID, taxon.NewName(rec.TaxID, rec.ScientificName, taxon.ClassScientificName, ""))
	}
	return scanner.Err()
}

func resolveENAParent(rec enaRecord, pairs map[[2]string][]string) (string, bool) {
	names := splitLineage(rec.Lineage)
	if len(names) == 0 {
		return "", false
	}
	for i := len(names) - 1; i > 0; i-- {
		child := index.Normalize(names[i])
		parent := index.Normalize(names[i-1])
		ids := pairs[[2]string{child, parent}]
		if len(ids) == 1 {
			return ids[0], true
		}
	}
	return "", false
}

func splitLineage(lineage string) []string {
	var out []string
	for _, part := range strings.Split(lineage, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
