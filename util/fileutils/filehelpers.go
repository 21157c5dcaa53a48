package fileutils

import (
	"archive/zip"
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/mrnavastar/mclaunch/util"
)

// ExtractNatives copies every file entry of the archive at path into dest,
// skipping entries whose name starts with one of the exclusion prefixes.
func ExtractNatives(path string, dest string, exclude []string) error {
	reader, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return err
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.FileInfo().IsDir() || excluded(file.Name, exclude) {
			continue
		}

		target, err1 := SafeJoin(dest, file.Name)
		if err1 != nil {
			continue
		}

		if err := extractEntry(file, target); err != nil {
			return fmt.Errorf("extract %s: %w", file.Name, err)
		}
	}
	return nil
}

var ErrEscapesDir = errors.New("path escapes directory")

// SafeJoin joins a slash-separated name onto dir, refusing names that would
// resolve outside of it.
func SafeJoin(dir string, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(dir) + string(os.PathSeparator)) {
		return "", fmt.Errorf("%s: %w", name, ErrEscapesDir)
	}
	return target, nil
}

func excluded(name string, exclude []string) bool {
	for _, e := range exclude {
		if strings.HasPrefix(name, e) {
			return true
		}
	}
	return false
}

func extractEntry(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
		return err
	}

	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	if _, err := io.Copy(w, in); err != nil {
		out.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// FileMatches reports whether the file at path has exactly size bytes and
// the given SHA-1 checksum.
func FileMatches(path string, size int64, hash string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() != size {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	h := sha1.New()
	if _, err := io.Copy(h, file); err != nil {
		return false
	}
	return strings.EqualFold(hex.EncodeToString(h.Sum(nil)), hash)
}

// CopyFile copies src to dst, creating dst's parent directories and replacing
// any existing file.
func CopyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

var ErrProfileNotFound = errors.New("failed to find profile")

func readProfiles(dotMinecraft string) ([]byte, error) {
	return os.ReadFile(filepath.Join(dotMinecraft, "launcher_profiles.json"))
}

// GetProfile reads the named profile from launcher_profiles.json. An empty
// name selects the file's selectedProfile.
func GetProfile(dotMinecraft string, name string) (util.Profile, error) {
	profiles, err := readProfiles(dotMinecraft)
	if err != nil {
		return util.Profile{}, err
	}

	if name == "" {
		selected, err1 := jsonparser.GetString(profiles, "selectedProfile")
		if err1 != nil {
			return util.Profile{}, ErrProfileNotFound
		}
		name = selected
	}

	data, _, _, err2 := jsonparser.Get(profiles, "profiles", name)
	if err2 != nil {
		return util.Profile{}, ErrProfileNotFound
	}
	return parseProfile(name, data), nil
}

// ListProfiles returns every profile in launcher_profiles.json.
func ListProfiles(dotMinecraft string) ([]util.Profile, error) {
	profiles, err := readProfiles(dotMinecraft)
	if err != nil {
		return nil, err
	}

	var list []util.Profile
	err1 := jsonparser.ObjectEach(profiles, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		if dataType == jsonparser.Object {
			list = append(list, parseProfile(string(key), value))
		}
		return nil
	}, "profiles")
	if err1 != nil && !errors.Is(err1, jsonparser.KeyPathNotFoundError) {
		return nil, err1
	}
	return list, nil
}

func parseProfile(key string, data []byte) util.Profile {
	profile := util.Profile{Name: key}
	if name, err := jsonparser.GetString(data, "name"); err == nil && name != "" {
		profile.Name = name
	}
	profile.VersionID, _ = jsonparser.GetString(data, "lastVersionId")
	profile.GameDir, _ = jsonparser.GetString(data, "gameDir")
	profile.JavaDir, _ = jsonparser.GetString(data, "javaDir")
	profile.JavaArgs, _ = jsonparser.GetString(data, "javaArgs")

	width, err := jsonparser.GetInt(data, "resolution", "width")
	height, err1 := jsonparser.GetInt(data, "resolution", "height")
	if err == nil && err1 == nil {
		profile.Resolution = &util.Resolution{Width: int(width), Height: int(height)}
	}
	return profile
}
