package util

import (
	"runtime"

	"github.com/pterm/pterm"
)

func Contains(list []string, str string) bool {
	for _, v := range list {
		if v == str {
			return true
		}
	}
	return false
}

func Fatal(err error) {
	if err != nil {
		pterm.Fatal.Println(err)
	}
}

// 32-bit class architectures get a smaller default heap.
var legacyArchs = []string{"386", "arm", "mips", "mipsle"}

func IsLegacyArch() bool {
	return Contains(legacyArchs, runtime.GOARCH)
}

// OSName returns the operating system name used by version descriptors.
func OSName() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	default:
		return runtime.GOOS
	}
}

// ArchBits returns the value substituted for ${arch} in native classifiers.
func ArchBits() string {
	if IsLegacyArch() {
		return "32"
	}
	return "64"
}
