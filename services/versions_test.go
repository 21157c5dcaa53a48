package services

import (
	"path/filepath"
	"testing"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionJSON = `{
  "id": "1.5.2",
  "mainClass": "net.minecraft.client.Minecraft",
  "minecraftArguments": "${auth_player_name} ${auth_session}",
  "assets": "legacy",
  "type": "release",
  "libraries": [
    {"name": "net.sf.jopt-simple:jopt-simple:4.5"},
    {
      "name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.0",
      "natives": {"linux": "natives-linux", "windows": "natives-windows-${arch}", "osx": "natives-osx"},
      "extract": {"exclude": ["META-INF/"]}
    },
    {
      "name": "ca.weblite:java-objc-bridge:1.0.0",
      "rules": [{"action": "allow", "os": {"name": "osx"}}]
    },
    {
      "name": "org.lwjgl.lwjgl:lwjgl:2.9.0",
      "rules": [{"action": "allow"}, {"action": "disallow", "os": {"name": "osx"}}]
    }
  ]
}`

func TestParseVersion(t *testing.T) {
	ver, err := ParseVersion([]byte(versionJSON))
	require.NoError(t, err)

	assert.Equal(t, "1.5.2", ver.ID)
	assert.Equal(t, "net.minecraft.client.Minecraft", ver.MainClass)
	assert.Equal(t, "legacy", ver.Assets)
	assert.Equal(t, util.Release, ver.Type)
	assert.Equal(t, "versions/1.5.2/1.5.2.jar", ver.RelativeJar)
	require.Len(t, ver.Libraries, 4)

	jopt := ver.Libraries[0]
	assert.True(t, jopt.Compatible)
	assert.False(t, jopt.Native)
	assert.Equal(t, "libraries/net/sf/jopt-simple/jopt-simple/4.5/jopt-simple-4.5.jar", jopt.RelativePath)

	natives := ver.Libraries[1]
	assert.True(t, natives.Native)
	assert.Equal(t, []string{"META-INF/"}, natives.ExtractExclusions)
	switch util.OSName() {
	case "linux":
		assert.True(t, natives.Compatible)
		assert.Equal(t, "libraries/org/lwjgl/lwjgl/lwjgl-platform/2.9.0/lwjgl-platform-2.9.0-natives-linux.jar", natives.RelativeNativePath)
	case "windows":
		assert.Equal(t, "libraries/org/lwjgl/lwjgl/lwjgl-platform/2.9.0/lwjgl-platform-2.9.0-natives-windows-" + util.ArchBits() + ".jar", natives.RelativeNativePath)
	}

	isOSX := util.OSName() == "osx"
	assert.Equal(t, isOSX, ver.Libraries[2].Compatible)
	assert.Equal(t, !isOSX, ver.Libraries[3].Compatible)
}

func TestParseVersionRequiresMainClass(t *testing.T) {
	_, err := ParseVersion([]byte(`{"id": "1.0"}`))
	assert.Error(t, err)
}

func TestParseVersionInvalidLibrary(t *testing.T) {
	_, err := ParseVersion([]byte(`{"id": "1.0", "mainClass": "Main", "libraries": [{"name": "broken"}]}`))
	assert.Error(t, err)
}

func TestLoadAndLatestVersion(t *testing.T) {
	workDir := t.TempDir()
	for _, id := range []string{"1.5.2", "1.12.2", "1.8", "20w14infinite"} {
		writeFile(t, filepath.Join(workDir, "versions", id, id + ".json"), `{"id": "` + id + `", "mainClass": "Main"}`)
	}
	writeFile(t, filepath.Join(workDir, "versions", "empty", "readme.txt"), "")

	ids, err := InstalledVersions(workDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.12.2", "1.5.2", "1.8", "20w14infinite"}, ids)

	latest, err := LatestVersion(workDir)
	require.NoError(t, err)
	assert.Equal(t, "1.12.2", latest)

	ver, err := LoadVersion(workDir, "1.8")
	require.NoError(t, err)
	assert.Equal(t, "1.8", ver.ID)
}

func TestLatestVersionNoneInstalled(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "versions", "snap", "snap.json"), `{"id": "snap", "mainClass": "Main"}`)

	_, err := LatestVersion(workDir)
	assert.ErrorIs(t, err, ErrNoVersions)
}
