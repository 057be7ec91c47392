package finder

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress receives coarse status updates while a search runs. The CLI shows
// a bar; the HTTP server passes NopProgress.
type Progress interface {
	Describe(status string)
	Set(percent int)
	Clear()
}

type NopProgress struct{}

func (NopProgress) Describe(string) {}
func (NopProgress) Set(int)         {}
func (NopProgress) Clear()          {}

// BarProgress renders search progress as a terminal bar.
type BarProgress struct {
	bar *progressbar.ProgressBar
}

func NewBarProgress(w io.Writer) *BarProgress {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("Starting search..."),
	)
	return &BarProgress{bar: bar}
}

func (b *BarProgress) Describe(status string) { b.bar.Describe(status) }
func (b *BarProgress) Set(percent int)        { _ = b.bar.Set(percent) }
func (b *BarProgress) Clear()                 { _ = b.bar.Clear() }
