package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

// AppDataDir returns the per-user directory for appName's data:
//  Linux/BSD: ~/.appname
//  Mac OS:    ~/Library/Application Support/Appname
//  Windows:   %LOCALAPPDATA%\Appname, %APPDATA% when roaming
//  Plan 9:    $home/appname
// An empty appName or "." yields ".", as does a platform whose base
// directory cannot be found.
func AppDataDir(appName string, roaming bool) string {
	return appDataDir(runtime.GOOS, appName, roaming, homeDir(), os.Getenv)
}

func homeDir() string {
	if u, err := user.Current(); err == nil && u.HomeDir != "" {
		return u.HomeDir
	}
	return os.Getenv("HOME")
}

func appDataDir(goos, appName string, roaming bool, home string, getenv func(string) string) string {
	appName = strings.TrimPrefix(appName, ".")
	if appName == "" {
		return "."
	}
	lower := strings.ToLower(appName[:1]) + appName[1:]
	upper := strings.ToUpper(appName[:1]) + appName[1:]

	switch goos {
	case "windows":
		base := getenv("LOCALAPPDATA")
		if roaming || base == "" {
			base = getenv("APPDATA")
		}
		if base != "" {
			return filepath.Join(base, upper)
		}
		return "."
	}

	if home == "" {
		return "."
	}
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", upper)
	case "plan9":
		return filepath.Join(home, lower)
	default:
		return filepath.Join(home, "."+lower)
	}
}
