package services

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/mrnavastar/mclaunch/util"
	"golang.org/x/mod/semver"
)

var ErrNoVersions = errors.New("no versions installed")

// LoadVersion reads versions/<id>/<id>.json and evaluates library
// compatibility for the running platform.
func LoadVersion(workDir string, id string) (*util.Version, error) {
	data, err := os.ReadFile(filepath.Join(workDir, "versions", id, id + ".json"))
	if err != nil {
		return nil, fmt.Errorf("load version %s: %w", id, err)
	}
	return ParseVersion(data)
}

func ParseVersion(data []byte) (*util.Version, error) {
	id, err := jsonparser.GetString(data, "id")
	if err != nil {
		return nil, fmt.Errorf("version id: %w", err)
	}
	mainClass, err1 := jsonparser.GetString(data, "mainClass")
	if err1 != nil {
		return nil, fmt.Errorf("version %s: mainClass: %w", id, err1)
	}

	ver := &util.Version{
		ID: id,
		MainClass: mainClass,
		Type: util.Release,
		RelativeJar: path.Join("versions", id, id + ".jar"),
	}
	ver.Assets, _ = jsonparser.GetString(data, "assets")
	ver.MinecraftArguments, _ = jsonparser.GetString(data, "minecraftArguments")
	if t, err := jsonparser.GetString(data, "type"); err == nil && t != "" {
		ver.Type = util.VersionType(t)
	}

	var parseErr error
	_, err2 := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if parseErr != nil {
			return
		}
		lib, err3 := parseLibrary(value)
		if err3 != nil {
			parseErr = err3
			return
		}
		ver.Libraries = append(ver.Libraries, lib)
	}, "libraries")
	if parseErr != nil {
		return nil, fmt.Errorf("version %s: %w", id, parseErr)
	}
	if err2 != nil && !errors.Is(err2, jsonparser.KeyPathNotFoundError) {
		return nil, fmt.Errorf("version %s: libraries: %w", id, err2)
	}
	return ver, nil
}

func parseLibrary(data []byte) (util.Library, error) {
	name, err := jsonparser.GetString(data, "name")
	if err != nil {
		return util.Library{}, fmt.Errorf("library name: %w", err)
	}

	lib := util.Library{Name: name, Compatible: allowed(data)}
	lib.RelativePath, err = mavenPath(name, "")
	if err != nil {
		return util.Library{}, err
	}

	if _, _, _, err1 := jsonparser.Get(data, "natives"); err1 == nil {
		lib.Native = true
		classifier, err2 := jsonparser.GetString(data, "natives", util.OSName())
		if err2 != nil {
			lib.Compatible = false
		} else {
			classifier = strings.ReplaceAll(classifier, "${arch}", util.ArchBits())
			lib.RelativeNativePath, _ = mavenPath(name, classifier)
		}
	}

	jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if dataType == jsonparser.String {
			if e, err := jsonparser.ParseString(value); err == nil {
				lib.ExtractExclusions = append(lib.ExtractExclusions, e)
			}
		}
	}, "extract", "exclude")
	return lib, nil
}

// mavenPath turns group:artifact:version into its path below libraries/.
func mavenPath(name string, classifier string) (string, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 {
		return "", fmt.Errorf("invalid library name %q", name)
	}
	group, artifact, version := parts[0], parts[1], parts[2]

	file := artifact + "-" + version
	if classifier != "" {
		file += "-" + classifier
	}
	return path.Join("libraries", strings.ReplaceAll(group, ".", "/"), artifact, version, file + ".jar"), nil
}

// allowed evaluates a library's rules. Without rules a library is allowed;
// otherwise the last matching rule decides.
func allowed(data []byte) bool {
	if _, _, _, err := jsonparser.Get(data, "rules"); err != nil {
		return true
	}

	result := false
	jsonparser.ArrayEach(data, func(rule []byte, dataType jsonparser.ValueType, offset int, err error) {
		action, _ := jsonparser.GetString(rule, "action")
		if osName, err := jsonparser.GetString(rule, "os", "name"); err == nil && osName != util.OSName() {
			return
		}
		result = action == "allow"
	}, "rules")
	return result
}

// InstalledVersions lists the ids of every version with a descriptor on disk.
func InstalledVersions(workDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(workDir, "versions"))
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(workDir, "versions", entry.Name(), entry.Name() + ".json")); err == nil {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// LatestVersion picks the highest release-style version number installed.
func LatestVersion(workDir string) (string, error) {
	ids, err := InstalledVersions(workDir)
	if err != nil {
		return "", err
	}

	latest := ""
	for _, id := range ids {
		if !semver.IsValid("v" + id) {
			continue
		}
		if latest == "" || semver.Compare("v" + id, "v" + latest) > 0 {
			latest = id
		}
	}
	if latest == "" {
		return "", ErrNoVersions
	}
	return latest, nil
}
