// Package player provides a secure interface for launching media players.
// All player invocations use exec.Command with explicit argument slices;
// the embed URL is passed as a single argument, never through a shell.
package player

// Player is the interface for media player implementations.
type Player interface {
	// Play opens the embed URL and blocks until the player exits.
	Play(url, title string) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{} // Default to mpv
	}
}
