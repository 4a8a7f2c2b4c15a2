package player

import (
	"fmt"
	"os"
	"os/exec"
)

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv with the embed URL. mpv resolves most embed pages
// through yt-dlp when it is installed.
func (m *MPV) Play(url, title string) error {
	args := []string{
		url,
		"--force-media-title=" + title,
		"--really-quiet",
	}

	cmd := exec.Command("mpv", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		// mpv returns non-zero on user quit, which is normal
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return fmt.Errorf("running mpv: %w", err)
	}
	return nil
}
