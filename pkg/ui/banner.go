package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Version information - these can be overridden at build time via ldflags:
// go build -ldflags "-X github.com/Wardens-OSS-Club/compiloor/pkg/ui.Version=1.0.0"
var (
	Version   = "0.4.0"
	BuildDate = "unknown"
	Commit    = "dev"
)

const (
	Author  = "Wardens OSS Club"
	Website = "https://github.com/Wardens-OSS-Club/compiloor"
)

// UserAgent returns the User-Agent sent when fetching report assets.
func UserAgent() string {
	return fmt.Sprintf("compiloor/%s", Version)
}

// Global UI state
var (
	silentMode  bool
	noColorMode bool
	output      io.Writer = os.Stderr
	uiMu        sync.RWMutex
)

// SetSilent enables or disables silent mode (suppresses informational output)
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// IsSilent returns whether silent mode is enabled
func IsSilent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor returns whether color is disabled
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

// SetOutput redirects console output, stderr by default. It returns the
// previous writer.
func SetOutput(w io.Writer) io.Writer {
	uiMu.Lock()
	defer uiMu.Unlock()
	prev := output
	output = w
	return prev
}

func out() io.Writer {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return output
}

const bannerArt = `
                          _ __
  _________  ____ ___  ____  (_) /___  ____  _____
 / ___/ __ \/ __ ` + "`" + `__ \/ __ \/ / / __ \/ __ \/ ___/
/ /__/ /_/ / / / / / / /_/ / / / /_/ / /_/ / /
\___/\____/_/ /_/ /_/ .___/_/_/\____/\____/_/
                   /_/
`

const bannerSeparator = "________________________________________________"

// PrintBanner prints the application banner with version info
func PrintBanner() {
	if IsSilent() {
		return
	}
	w := out()
	for _, line := range strings.Split(bannerArt, "\n") {
		if line != "" {
			fmt.Fprintln(w, BannerStyle.Render(line))
		}
	}
	fmt.Fprintf(w, "                       v%s\n\n", VersionStyle.Render(Version))
}

// PrintDivider prints a stylized divider
func PrintDivider() {
	fmt.Fprintln(out(), DividerStyle.Render(strings.Repeat("-", 60)))
}

// PrintSection prints a section header
func PrintSection(title string) {
	if IsSilent() {
		return
	}
	w := out()
	fmt.Fprintln(w)
	fmt.Fprintln(w, SectionStyle.Render("> "+title))
	PrintDivider()
}

// PrintConfigLine prints a single labelled value
func PrintConfigLine(key, value string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(out(), "  %s %s\n",
		ConfigLabelStyle.Render(key+":"),
		ConfigValueStyle.Render(value),
	)
}

// PrintHelp prints contextual help
func PrintHelp(text string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(out(), HelpStyle.Render("  [i] "+SanitizeString(text)))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(out(), SuccessStyle.Render("  [+] "+SanitizeString(message)))
}

// PrintError prints an error message. Errors are printed in silent mode too.
func PrintError(message string) {
	fmt.Fprintln(out(), ErrorStyle.Render("  [X] "+SanitizeString(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintln(out(), WarningStyle.Render("  [!] "+SanitizeString(message)))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(out(), "  %s %s\n", SpinnerStyle.Render("*"), SanitizeString(message))
}

// PrintPath prints a labelled file path
func PrintPath(label, path string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(out(), "  %s %s\n", ConfigLabelStyle.Render(label+":"), PathStyle.Render(path))
}

// VersionString returns the one-line version description.
func VersionString() string {
	return fmt.Sprintf("compiloor %s (commit %s, built %s)", Version, Commit, BuildDate)
}
