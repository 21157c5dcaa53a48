package services

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mrnavastar/mclaunch/util"
)

// nativesDir is the per-launch scratch directory natives are extracted into.
// It is removed exactly once, by whichever path finishes the session.
type nativesDir struct {
	path    string
	console util.Console
	once    sync.Once
}

// acquireNatives removes natives directories left behind by earlier launches
// of the version and creates a fresh, uniquely named one.
func acquireNatives(workDir string, verID string, console util.Console) (*nativesDir, error) {
	root := filepath.Join(workDir, "versions", verID)

	console.Info("Deleting old natives.")
	if entries, err := os.ReadDir(root); err == nil {
		for _, entry := range entries {
			if entry.IsDir() && strings.Contains(entry.Name(), "natives") {
				if err1 := os.RemoveAll(filepath.Join(root, entry.Name())); err1 != nil {
					console.Error("Failed to delete old natives dir " + entry.Name() + ": " + err1.Error())
				}
			}
		}
	}

	path := filepath.Join(root, verID + "-natives-" + strconv.FormatInt(time.Now().UnixNano(), 10))
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	return &nativesDir{path: path, console: console}, nil
}

// Release removes the directory. A nativesDir with no path was never
// created and is left alone.
func (n *nativesDir) Release() {
	if n.path == "" {
		return
	}
	n.once.Do(func() {
		n.console.Info("Deleting natives dir.")
		if err := os.RemoveAll(n.path); err != nil {
			n.console.Error("Failed to delete natives dir: " + err.Error())
		}
	})
}
