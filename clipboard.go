package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/atotto/clipboard"
)

var (
	clipOnce  sync.Once
	clipReady bool
)

// clipboardAvailable reports whether image copies can work on this
// host. Probed once; text copies go through the clipboard package and
// report their own errors.
func clipboardAvailable() bool {
	clipOnce.Do(func() {
		switch runtime.GOOS {
		case "darwin":
			_, err := exec.LookPath("osascript")
			clipReady = err == nil
		case "linux":
			if _, err := exec.LookPath("xclip"); err == nil {
				clipReady = true
				return
			}
			_, err := exec.LookPath("wl-copy")
			clipReady = err == nil
		default:
			clipReady = false
		}
	})
	return clipReady
}

func writeTextToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not available on this system")
	}
	return clipboard.WriteAll(text)
}

// writeImageToClipboard places PNG bytes on the system clipboard using
// platform tools. macOS needs the data on disk for osascript to read.
func writeImageToClipboard(data []byte) error {
	switch runtime.GOOS {
	case "darwin":
		tmp, err := os.CreateTemp("", "diaterm-*.png")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return err
		}
		tmp.Close()
		script := fmt.Sprintf(`set the clipboard to (read (POSIX file %q) as «class PNGf»)`, tmp.Name())
		return exec.Command("osascript", "-e", script).Run()
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd := exec.Command("xclip", "-selection", "clipboard", "-t", "image/png")
			cmd.Stdin = bytes.NewReader(data)
			return cmd.Run()
		}
		if _, err := exec.LookPath("wl-copy"); err == nil {
			cmd := exec.Command("wl-copy", "--type", "image/png")
			cmd.Stdin = bytes.NewReader(data)
			return cmd.Run()
		}
		return fmt.Errorf("no clipboard tool found (install xclip or wl-copy)")
	default:
		return fmt.Errorf("image clipboard not supported on %s", runtime.GOOS)
	}
}
