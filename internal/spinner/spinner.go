// Package spinner draws a single-line progress indicator on a terminal.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Interval is how often the spinner redraws.
const Interval = 80 * time.Millisecond

// Start redraws an animated spinner followed by status() on w until the
// returned stop function is called. status is polled on every frame, so it
// can report live progress. stop clears the line and is safe to call twice.
func Start(w io.Writer, status func() string) (stop func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})
	var stopOnce sync.Once

	go func() {
		ticker := time.NewTicker(Interval)
		defer ticker.Stop()

		width := 0
		for i := 0; ; i++ {
			line := frames[i%len(frames)] + " " + status()
			width = max(width, runewidth.StringWidth(line))
			fmt.Fprintf(w, "\r%s", padRight(line, width)) //nolint:errcheck

			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", width)) //nolint:errcheck
				close(cleared)
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		stopOnce.Do(func() {
			close(done)
		})
		<-cleared
	}
}

// padRight pads s with spaces so its terminal display width reaches width,
// erasing leftovers from a longer previous frame.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
