// Package progress adapts github.com/cheggaaa/pb/v3 progress bars to
// the index.Reporter / ingest reporter interfaces. This is an impure,
// terminal-writing package; pure packages only depend on the narrow
// Reporter interface they define.
package progress

import (
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
)

// Bar wraps a pb.ProgressBar so it satisfies index.Reporter (and any
// other {Start(int,string); Increment(int); Finish()} shaped
// interface) without this package depending on pkg/index.
type Bar struct {
	bar *pb.ProgressBar
}

// New returns a Bar ready for Start.
func New() *Bar {
	return &Bar{}
}

// Start begins a new progress bar for total items, captioned with
// label and a humanized total count.
func (b *Bar) Start(total int, label string) {
	b.bar = pb.Full.Start(total)
	b.bar.Set("prefix", label+" ("+humanize.Comma(int64(total))+"): ")
	b.bar.Set(pb.CleanOnFinish, true)
}

// Increment advances the bar by n.
func (b *Bar) Increment(n int) {
	if b.bar != nil {
		b.bar.Add(n)
	}
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	if b.bar != nil {
		b.bar.Finish()
	}
}
