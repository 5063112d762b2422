package browser

import (
	"errors"
	"os"
	"os/exec"
)

// ErrNoBrowser indicates no Chrome or Chromium installation was found.
var ErrNoBrowser = errors.New("browser: chrome not found")

var browserNames = []string{"chrome", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"}

// FindChrome returns the path of a Chrome or Chromium executable, looking
// in PATH first and then in the usual install locations.
func FindChrome() (string, error) {
	for _, name := range browserNames {
		if path, err := exec.LookPath(name); err == nil && path != "" {
			return path, nil
		}
	}

	chromePaths := []string{
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		os.Getenv("LOCALAPPDATA") + `\Google\Chrome\Application\chrome.exe`,
		`/usr/bin/google-chrome`,
		`/usr/bin/chromium-browser`,
		`/usr/bin/chromium`,
		`/snap/bin/chromium`,
		`/Applications/Google Chrome.app/Contents/MacOS/Google Chrome`,
		`/Applications/Chromium.app/Contents/MacOS/Chromium`,
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNoBrowser
}
