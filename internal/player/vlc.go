package player

import (
	"fmt"
	"os"
	"os/exec"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

// Play launches VLC with the embed URL.
func (v *VLC) Play(url, title string) error {
	args := []string{
		url,
		"--meta-title", title,
		"--play-and-exit",
	}

	cmd := exec.Command("vlc", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// VLC exits non-zero on user close
			return nil
		}
		return fmt.Errorf("running vlc: %w", err)
	}
	return nil
}
