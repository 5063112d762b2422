package ui

import (
	"fmt"
	"sync"
	"time"
)

// Spinner holds spinner animation frames
type Spinner struct {
	Frames   []string
	Interval time.Duration
}

var (
	dotsSpinner = Spinner{
		Frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		Interval: 80 * time.Millisecond,
	}
	lineSpinner = Spinner{
		Frames:   []string{"-", "\\", "|", "/"},
		Interval: 100 * time.Millisecond,
	}
)

// DefaultSpinner returns a braille-dot spinner on Unicode terminals and
// the ASCII line spinner otherwise.
func DefaultSpinner() Spinner {
	if UnicodeTerminal() {
		return dotsSpinner
	}
	return lineSpinner
}

// Activity shows that a long step is running. On a terminal it animates a
// spinner next to the message; otherwise the message is printed once.
type Activity struct {
	message string
	spinner Spinner
	animate bool
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// StartActivity begins an activity with message.
func StartActivity(message string) *Activity {
	a := &Activity{
		message: message,
		spinner: DefaultSpinner(),
		animate: StderrIsTerminal() && !IsSilent() && !IsNoColor(),
		done:    make(chan struct{}),
	}
	if !a.animate {
		PrintInfo(message + "...")
		return a
	}

	a.wg.Add(1)
	go a.run()
	return a
}

func (a *Activity) run() {
	defer a.wg.Done()
	ticker := time.NewTicker(a.spinner.Interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := a.spinner.Frames[i%len(a.spinner.Frames)]
		fmt.Fprintf(out(), "\r  %s %s", SpinnerStyle.Render(frame), a.message)
		select {
		case <-a.done:
			fmt.Fprint(out(), "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the activity. It is safe to call more than once.
func (a *Activity) Stop() {
	a.once.Do(func() {
		close(a.done)
		a.wg.Wait()
	})
}
