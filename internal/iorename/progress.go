package iorename

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(
	w io.Writer,
	total int,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.New(total)
	bar.SetWriter(w)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar.Start()
}
