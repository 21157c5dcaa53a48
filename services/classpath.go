package services

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/fileutils"
)

// BuildClasspath extracts the version's native libraries into nativesDir and
// returns the classpath: launcherPath first (when known), then every
// compatible non-native library in declared order, then the version jar.
func BuildClasspath(workDir string, ver *util.Version, nativesDir string, launcherPath string, console util.Console) string {
	separator := string(os.PathListSeparator)
	var libraries strings.Builder

	if launcherPath != "" {
		libraries.WriteString(absolute(launcherPath) + separator)
	}

	console.Info("Extracting natives.")
	for _, lib := range ver.Libraries {
		if !lib.Compatible {
			continue
		}

		if lib.Native {
			if nativesDir == "" {
				console.Error("Failed to extract native: " + lib.Name + " (no natives dir)")
				continue
			}
			archive := filepath.Join(workDir, lib.RelativeNativePath)
			if err := fileutils.ExtractNatives(archive, nativesDir, lib.ExtractExclusions); err != nil {
				console.Error("Failed to extract native: " + lib.Name + " (" + err.Error() + ")")
			}
			continue
		}
		libraries.WriteString(absolute(filepath.Join(workDir, lib.RelativePath)) + separator)
	}

	libraries.WriteString(absolute(filepath.Join(workDir, ver.RelativeJar)))
	return libraries.String()
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// launcherExecutable is where the bootstrap entry point is loaded from.
func launcherExecutable(console util.Console) string {
	path, err := os.Executable()
	if err != nil {
		console.Error("Failed to locate launcher executable.")
		return ""
	}
	return path
}
