package util

import "github.com/google/uuid"

type VersionType string

const (
	Release  VersionType = "release"
	Snapshot VersionType = "snapshot"
	OldBeta  VersionType = "old_beta"
	OldAlpha VersionType = "old_alpha"
)

type Library struct {
	Name string
	RelativePath string
	RelativeNativePath string
	Compatible bool
	Native bool
	ExtractExclusions []string
}

type Version struct {
	ID string
	MainClass string
	Libraries []Library
	Assets string
	MinecraftArguments string
	Type VersionType
	RelativeJar string
}

func (v Version) HasAssets() bool {
	return v.Assets != ""
}

type Resolution struct {
	Width int
	Height int
}

type Profile struct {
	Name string
	VersionID string
	JavaDir string
	JavaArgs string
	GameDir string
	Resolution *Resolution
}

func (p Profile) HasVersion() bool {
	return p.VersionID != ""
}

func (p Profile) HasJavaDir() bool {
	return p.JavaDir != ""
}

func (p Profile) HasJavaArgs() bool {
	return p.JavaArgs != ""
}

func (p Profile) HasGameDir() bool {
	return p.GameDir != ""
}

func (p Profile) HasResolution() bool {
	return p.Resolution != nil
}

type User struct {
	DisplayName string
	ProfileID uuid.UUID
	AccessToken string
	Properties map[string]string
}

func (u User) HasProperties() bool {
	return len(u.Properties) > 0
}
