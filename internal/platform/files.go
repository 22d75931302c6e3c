package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Default download location below the user's home directory
const (
	DownloadsDirName = "Downloads"
	YouTubeDirName   = "YouTube"
	FallbackDir      = "downloads"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// execCommand is swapped in tests
var execCommand = exec.Command

// DefaultOutputDir returns ~/Downloads/YouTube, or ./downloads when the home
// directory cannot be resolved
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return FallbackDir
	}
	return filepath.Join(home, DownloadsDirName, YouTubeDirName)
}

// ResolveOutputDir returns dir, or the default location when dir is blank
func ResolveOutputDir(dir string) string {
	if dir == "" {
		return DefaultOutputDir()
	}
	return dir
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// OpenFolder opens the directory in the system file manager
func OpenFolder(dir string) error {
	if dir == "" {
		return fmt.Errorf("folder path is empty")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("folder does not exist: %w", err)
	}
	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return execCommand(OpenCommand, absPath).Run()
	case OSWindows:
		return execCommand(ExplorerCommand, absPath).Run()
	case OSLinux:
		return openFolderLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFolderLinux tries xdg-open first, then common file managers
func openFolderLinux(dir string) error {
	if err := execCommand(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return execCommand(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
