package ingest

import (
	"io"
	"log/slog"

	"github.com/blobtoolkit/core/pkg/errcode"
	"github.com/blobtoolkit/core/pkg/ghubs"
	"github.com/blobtoolkit/core/pkg/gnerr"
	"github.com/blobtoolkit/core/pkg/graft"
	"github.com/blobtoolkit/core/pkg/index"
	"github.com/blobtoolkit/core/pkg/resolver"
	"github.com/blobtoolkit/core/pkg/taxon"
)

// Reporter is the narrow row-progress interface IngestFile drives,
// structurally compatible with internal/io/progress.Bar and
// pkg/index.Reporter without importing either.
type Reporter interface {
	Start(total int, label string)
	Increment(n int)
	Finish()
}

type noOpReporter struct{}

func (noOpReporter) Start(int, string) {}
func (noOpReporter) Increment(int)     {}
func (noOpReporter) Finish()           {}

// Stats summarizes one file's ingest pass.
type Stats struct {
	Rows       int
	Matched    int
	Grafted    int
	Unresolved int
}

// RowResult carries one row's processed attribute values and the
// resolution decision made for it, for a caller that wants to inspect
// or re-emit them (e.g. a downstream export); the pipeline itself only
// mutates the Tree, it never persists attributes anywhere.
type RowResult struct {
	LineNo     int
	Attributes map[string]string
	Match      resolver.TaxonMatch
	Grafted    bool
}

// Pipeline drives one Tree's worth of GenomeHubs ingest: resolving
// each row's taxonomy section and, depending on the outcome, extending
// an existing node's names or grafting a new one.
type Pipeline struct {
	tree       *taxon.Tree
	resolver   *resolver.Resolver
	lineage    *index.LineageIndex
	fuzzy      *index.FuzzyIndex
	graft      *graft.Engine
	cfg        *ghubs.Config
	nameClass  []string
	createTaxa bool
	reporter   Reporter
}

// Option configures a Pipeline at construction.
type Option func(*Pipeline)

// WithReporter sets the progress reporter driven during IngestFile.
func WithReporter(r Reporter) Option {
	return func(p *Pipeline) { p.reporter = r }
}

// WithCreateTaxa enables grafting unresolved-but-placeable rows into
// the tree. Disabled by default: an ingest run that only wants
// to attach attributes/names to an existing taxonomy should not grow
// new nodes unexpectedly.
func WithCreateTaxa(create bool) Option {
	return func(p *Pipeline) { p.createTaxa = create }
}

// NewPipeline builds a Pipeline over tree, bound to cfg's field
// declarations, using lineage and fuzzy (already built by index.Build)
// for name resolution and xrefLabel for any grafted node's
// cross-reference Name.
func NewPipeline(tree *taxon.Tree, lineage *index.LineageIndex, fuzzy *index.FuzzyIndex, cfg *ghubs.Config, nameClasses []string, xrefLabel string, opts ...Option) *Pipeline {
	p := &Pipeline{
		tree:      tree,
		resolver:  resolver.New(tree, lineage, fuzzy),
		lineage:   lineage,
		fuzzy:     fuzzy,
		graft:     graft.New(tree, xrefLabel),
		cfg:       cfg,
		nameClass: nameClasses,
		reporter:  noOpReporter{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rebuild discards the pipeline's lookup indices and rebuilds them
// from the current tree state, clearing the graft engine's dirty flag.
// Callers are expected to invoke this at batch boundaries, not after
// every row.
func (p *Pipeline) Rebuild(reporter index.Reporter) {
	if reporter == nil {
		reporter = index.NoOpReporter{}
	}
	lineage, fuzzy := index.Build(p.tree, p.nameClass, reporter)
	p.lineage = lineage
	p.fuzzy = fuzzy
	p.resolver = resolver.New(p.tree, lineage, fuzzy)
	p.graft = graft.New(p.tree, p.graft.XrefLabel())
	p.graft.MarkClean()
}

// Lineage and Fuzzy return the indices this Pipeline currently
// resolves against, so a caller chaining several files can carry the
// post-Rebuild indices into the next Pipeline without rebuilding
// twice.
func (p *Pipeline) Lineage() *index.LineageIndex { return p.lineage }

func (p *Pipeline) Fuzzy() *index.FuzzyIndex { return p.fuzzy }

// IngestFile streams path's rows through cfg's field pipeline, row by
// row, calling onRow (if non-nil) with each row's processed attributes
// and resolution outcome. Per-record errors are logged and skip the
// row rather than aborting the file; per-file I/O errors abort and are
// returned.
func (p *Pipeline) IngestFile(path string, onRow func(RowResult)) (Stats, error) {
	cr, closer, err := openRows(path, p.cfg.File.Format)
	if err != nil {
		return Stats{}, err
	}
	defer closer.Close()

	lineNo := 0
	if p.cfg.File.Header {
		header, err := cr.Read()
		if err != nil {
			return Stats{}, err
		}
		if err := p.resolveHeaders(header); err != nil {
			return Stats{}, err
		}
		lineNo = 1
	}

	var stats Stats
	p.reporter.Start(0, "Ingesting "+path)
	defer p.reporter.Finish()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("skipping malformed row", "path", path, "line", lineNo+1, "error", err)
			lineNo++
			continue
		}
		lineNo++
		stats.Rows++

		result := p.processRow(lineNo, row)
		switch {
		case result.Match.Assigned != nil:
			stats.Matched++
		case result.Grafted:
			stats.Grafted++
		default:
			stats.Unresolved++
		}
		if onRow != nil {
			onRow(result)
		}
		p.reporter.Increment(1)
	}

	return stats, nil
}

func (p *Pipeline) resolveHeaders(header []string) error {
	for _, group := range []map[string]ghubs.Field{p.cfg.Attributes, p.cfg.Taxonomy, p.cfg.TaxonNames} {
		for key, f := range group {
			if err := ghubs.ResolveHeaderNames(&f, header); err != nil {
				return &gnerr.Error{
					Code: errcode.IndexError,
					Msg:  "Cannot resolve column headers",
					Err:  err,
				}
			}
			group[key] = f
		}
	}
	return nil
}

func (p *Pipeline) processRow(lineNo int, row []string) RowResult {
	attrs := make(map[string]string, len(p.cfg.Attributes))
	for key, f := range p.cfg.Attributes {
		v, err := ghubs.Process(f, row)
		if err != nil {
			slog.Warn("attribute processing failed", "field", key, "line", lineNo, "error", err)
			continue
		}
		attrs[key] = v
	}

	section := make(map[string]string, len(p.cfg.Taxonomy))
	for key, f := range p.cfg.Taxonomy {
		v, err := ghubs.Process(f, row)
		if err != nil {
			slog.Warn("taxonomy field processing failed", "field", key, "line", lineNo, "error", err)
			continue
		}
		section[key] = v
	}

	match := p.resolver.Resolve(section)
	result := RowResult{LineNo: lineNo, Attributes: attrs, Match: match}

	if match.Assigned != nil {
		p.attachTaxonNames(match.Assigned.TaxID, row)
		return result
	}

	if p.createTaxa && match.HigherStatus == resolver.PutativeMatch && match.HigherCandidate != nil {
		altID := section["alt_taxon_id"]
		if altID != "" {
			req := graft.Request{
				AltTaxonID:     altID,
				ParentTaxID:    match.HigherCandidate.TaxID,
				Rank:           match.PrimaryRank,
				ScientificName: section[match.PrimaryRank],
			}
			n, err := p.graft.Graft(req)
			if err != nil {
				slog.Warn("graft failed", "line", lineNo, "error", err)
			} else {
				result.Grafted = true
				p.attachTaxonNames(n.TaxID, row)
			}
		}
	}

	return result
}

func (p *Pipeline) attachTaxonNames(taxID string, row []string) {
	for _, f := range p.cfg.TaxonNames {
		v, err := ghubs.Process(f, row)
		if err != nil || v == "" || v == "None" || v == "NA" {
			continue
		}
		if len(p.fuzzy.GetExact(index.Normalize(v))) > 0 {
			continue
		}
		p.tree.AddName(taxID, taxon.NewName(taxID, v, taxon.ClassSynonym, ""))
	}
}
