package dump

import (
	"bufio"
	"os"
	"strings"

	"github.com/blobtoolkit/core/pkg/gnerr"
	"github.com/blobtoolkit/core/pkg/taxon"
)

// GBIF backbone column indices, 0-based.
const (
	gbifColTaxID       = 0
	gbifColParentTaxID = 1
	gbifColStatus      = 4
	gbifColRank        = 5
	gbifColName        = 19
)

const gbifMinCols = gbifColName + 1

// rootTaxID is the synthetic root GBIF rows with parent "\N" reparent
// to, and which this parser always inserts.
const rootTaxID = "root"

var gbifSynonymStatuses = map[string]bool{
	"SYNONYM":             true,
	"HOMOTYPIC_SYNONYM":   true,
	"HETEROTYPIC_SYNONYM": true,
	"PROPARTE_SYNONYM":    true,
	"MISAPPLIED":          true,
}

// ParseGBIF reads a headerless, unquoted GBIF backbone TSV export into
// a fresh Tree, always seeding a synthetic root. Rows whose status is
// neither ACCEPTED nor a recognized synonym status (DOUBTFUL included)
// are skipped entirely -- no node is created for them.
func ParseGBIF(path string) (*taxon.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openErr(path, err)
	}
	defer f.Close()

	tr := taxon.New()
	tr.Insert(&taxon.Node{TaxID: rootTaxID, ParentTaxID: rootTaxID, Rank: taxon.RootMarkerRank})

	scanner := bufio.NewScanner(f)
	// GBIF rows can carry long free-text columns; grow past the
	// default 64KiB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < gbifMinCols {
			gnerr.Warn("skipping malformed GBIF row %d in <em>%s</em>: expected %d columns, got %d", lineNo, path, gbifMinCols, len(fields))
			continue
		}

		status := fields[gbifColStatus]
		accepted := status == "ACCEPTED"
		synonym := gbifSynonymStatuses[status]
		if !accepted && !synonym {
			continue
		}

		taxID := fields[gbifColTaxID]
		parentID := fields[gbifColParentTaxID]
		if parentID == `\N` {
			parentID = rootTaxID
		}
		rank := strings.ToLower(fields[gbifColRank])
		name := fields[gbifColName]

		tr.Insert(&taxon.Node{TaxID: taxID, ParentTaxID: parentID, Rank: rank})

		class := taxon.ClassSynonym
		if accepted {
			class = taxon.ClassScientificName
		}
		tr.AddName(taxID, taxon.NewName(taxID, name, class, ""))
	}
	if err := scanner.Err(); err != nil {
		return nil, openErr(path, err)
	}
	return tr, nil
}
