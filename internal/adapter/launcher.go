package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens preview streams and store pages in an external program
type Launcher struct {
	command string   // configured opener, empty for auto-detect
	args    []string // additional arguments for the opener
	logger  *slog.Logger

	// process hooks, replaced in tests
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // Command path: "mpv", "vlc", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command
	extraArgs []string // Args that make the player behave for a short preview
}

// players registry for audio/video previews
var players = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv", extraArgs: []string{"--force-window=immediate"}}},
		"linux":   {{path: "mpv", extraArgs: []string{"--force-window=immediate"}}},
		"windows": {{path: "mpv", extraArgs: []string{"--force-window=immediate"}}},
	},
	"vlc": {
		"darwin": {
			{path: "vlc"},
			{path: "open-a:VLC"},
		},
		"linux":   {{path: "vlc"}},
		"windows": {{path: "vlc"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"ffplay": {
		"darwin":  {{path: "ffplay", extraArgs: []string{"-autoexit"}}},
		"linux":   {{path: "ffplay", extraArgs: []string{"-autoexit"}}},
		"windows": {{path: "ffplay", extraArgs: []string{"-autoexit"}}},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "vlc", "mpv"},
	"linux":   {"mpv", "vlc", "ffplay"},
	"windows": {"vlc", "mpv"},
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Launch opens a URL. Previews go to the configured or detected player;
// store pages (and previews when nothing is installed) go to the system
// default handler.
func (l *Launcher) Launch(url string, isPreview bool) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}

	if l.command != "" {
		return l.launchConfigured(url)
	}

	if isPreview {
		if name, err := l.detectAndLaunch(url, runtime.GOOS); err == nil {
			l.logger.Info("launched with detected player", "player", name)
			return nil
		}
		l.logger.Info("no candidate players found, using system default")
	}

	return l.launchDefault(url, runtime.GOOS)
}

// detectAndLaunch tries candidate players in order for the platform
func (l *Launcher) detectAndLaunch(url, goos string) (string, error) {
	candidates, ok := candidatePlayers[goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		paths, ok := players[name][goos]
		if !ok {
			continue
		}
		for _, lp := range paths {
			var err error
			if strings.HasPrefix(lp.path, "open-a:") {
				appName := strings.TrimPrefix(lp.path, "open-a:")
				args := append(append([]string{}, lp.openFlags...), "-a", appName, url)
				err = l.start("open", args...)
			} else {
				if _, lookErr := l.lookPath(lp.path); lookErr != nil {
					l.logger.Debug("launch path not available", "player", name, "path", lp.path)
					continue
				}
				args := append(append([]string{}, lp.extraArgs...), url)
				err = l.start(lp.path, args...)
			}
			if err == nil {
				return name, nil
			}
			l.logger.Debug("launch failed", "player", name, "path", lp.path, "error", err)
		}
	}

	return "", fmt.Errorf("no candidate players found")
}

// launchConfigured runs the configured command with the URL last
func (l *Launcher) launchConfigured(url string) error {
	args := append(append([]string{}, l.args...), url)
	l.logger.Info("launching configured opener", "command", l.command, "args", args)
	if err := l.start(l.command, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", l.command, err)
	}
	return nil
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(url, goos string) error {
	var name string
	var args []string

	switch goos {
	case "darwin":
		name, args = "open", []string{url}
	case "windows":
		name, args = "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		name, args = "xdg-open", []string{url}
	}

	l.logger.Info("launching with system default", "os", goos, "url", url)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
