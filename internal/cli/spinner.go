package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

const spinnerInterval = 100 * time.Millisecond

// spinner animates one status line while a pipeline stage runs. The
// animation also ends when the context passed to [console.spin] is done.
type spinner struct {
	con     console
	label   string
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// spin starts a spinner labelled label on the console writer.
func (c console) spin(ctx context.Context, label string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		con:     c,
		label:   label,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.stopped)
	t := time.NewTicker(spinnerInterval)
	defer t.Stop()
	for i := 0; ; i++ {
		s.draw(s.con.w, spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-s.ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (s *spinner) draw(w io.Writer, frame string) {
	fmt.Fprintf(w, "\r%s %s", styleSpinner.Render(frame), styleDim.Render(s.label))
}

// stop ends the animation and blanks its line. Calling stop again is a no-op.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
		fmt.Fprint(s.con.w, eraseLine(s.label))
	})
}

// fail stops the spinner and leaves msg as a failure line in its place.
func (s *spinner) fail(msg string) {
	s.stop()
	s.con.failure("%s", msg)
}

// eraseLine blanks a spinner line holding label. The width is measured in
// terminal cells so labels with multibyte text are fully covered.
func eraseLine(label string) string {
	return "\r" + strings.Repeat(" ", lipgloss.Width(label)+2) + "\r"
}
