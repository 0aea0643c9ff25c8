package shared

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

var startCommand = func(cmd *exec.Cmd) error { return cmd.Start() }

// Reveal opens the system file manager at the given path, selecting the
// file where the platform supports it.
//
// Supports macOS, Linux, and Windows platforms.
func Reveal(path string) error {
	var cmd *exec.Cmd
	rt := getRuntime()
	switch rt {
	case "darwin":
		cmd = exec.Command("open", "-R", path)
	case "linux":
		// xdg-open has no select flag, so open the containing directory.
		cmd = exec.Command("xdg-open", filepath.Dir(path))
	case "windows":
		cmd = exec.Command("explorer", "/select,", path)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, rt)
	}

	if err := startCommand(cmd); err != nil {
		return fmt.Errorf("failed to open file manager: %w", err)
	}

	return nil
}
