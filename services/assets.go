package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buger/jsonparser"
	"github.com/mrnavastar/mclaunch/util/fileutils"
	"golang.org/x/text/encoding/charmap"
)

const LegacyAssets = "legacy"

type AssetObject struct {
	Name string
	Size int64
	Hash string
}

type AssetStats struct {
	Copied  int
	Skipped int
}

// AssetsDir returns the directory substituted for ${assets_root}. Versions
// without assets use the legacy virtual directory by convention.
func AssetsDir(workDir string, assets string) string {
	root := filepath.Join(workDir, "assets")
	if assets == "" || assets == LegacyAssets {
		return filepath.Join(root, "virtual", LegacyAssets)
	}
	return root
}

// ReadAssetIndex parses assets/indexes/<id>.json. Index files are Latin-1.
func ReadAssetIndex(workDir string, id string) ([]AssetObject, error) {
	raw, err := os.ReadFile(filepath.Join(workDir, "assets", "indexes", id + ".json"))
	if err != nil {
		return nil, err
	}

	data, err1 := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err1 != nil {
		return nil, err1
	}

	var objects []AssetObject
	err2 := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		size, err := jsonparser.GetInt(value, "size")
		if err != nil {
			return fmt.Errorf("asset %s: size: %w", name, err)
		}
		hash, err := jsonparser.GetString(value, "hash")
		if err != nil {
			return fmt.Errorf("asset %s: hash: %w", name, err)
		}
		if len(hash) < 2 {
			return fmt.Errorf("asset %s: invalid hash %q", name, hash)
		}
		objects = append(objects, AssetObject{Name: name, Size: size, Hash: hash})
		return nil
	}, "objects")
	if err2 != nil {
		return nil, err2
	}
	return objects, nil
}

// MaterializeAssets rebuilds the legacy virtual asset folder from the
// content-addressed object store. Files already matching the index by size
// and checksum are left alone. The first failing entry aborts the build, as
// does cancelling ctx.
func MaterializeAssets(ctx context.Context, workDir string, id string) (AssetStats, error) {
	var stats AssetStats
	virtual := AssetsDir(workDir, LegacyAssets)
	if err := os.MkdirAll(virtual, 0700); err != nil {
		return stats, err
	}

	objects, err := ReadAssetIndex(workDir, id)
	if err != nil {
		return stats, fmt.Errorf("read asset index %s: %w", id, err)
	}

	objectsDir := filepath.Join(workDir, "assets", "objects")
	for _, object := range objects {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		target, err := fileutils.SafeJoin(virtual, object.Name)
		if err != nil {
			return stats, fmt.Errorf("asset %s: %w", object.Name, err)
		}
		if fileutils.FileMatches(target, object.Size, object.Hash) {
			stats.Skipped++
			continue
		}

		source := filepath.Join(objectsDir, object.Hash[:2], object.Hash)
		if err := fileutils.CopyFile(source, target); err != nil {
			return stats, fmt.Errorf("copy asset %s: %w", object.Name, err)
		}
		stats.Copied++
	}
	return stats, nil
}
