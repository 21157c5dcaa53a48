package services

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/mrnavastar/mclaunch/util"
)

type Placeholder string

const (
	AuthPlayerName  Placeholder = "auth_player_name"
	VersionName     Placeholder = "version_name"
	GameDirectory   Placeholder = "game_directory"
	AssetsRoot      Placeholder = "assets_root"
	GameAssets      Placeholder = "game_assets"
	AssetsIndexName Placeholder = "assets_index_name"
	AuthUUID        Placeholder = "auth_uuid"
	AuthAccessToken Placeholder = "auth_access_token"
	VersionType     Placeholder = "version_type"
	UserProperties  Placeholder = "user_properties"
	UserType        Placeholder = "user_type"
	AuthSession     Placeholder = "auth_session"
)

const userType = "mojang"

func (p Placeholder) Token() string {
	return "${" + string(p) + "}"
}

// Placeholders holds the value each template token is replaced with.
type Placeholders map[Placeholder]string

// Apply replaces every known token in template in a single pass. Unknown
// tokens are left as they are.
func (p Placeholders) Apply(template string) string {
	pairs := make([]string, 0, len(p) * 2)
	for key, value := range p {
		pairs = append(pairs, key.Token(), value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// LaunchContext is everything the argument vector is computed from.
type LaunchContext struct {
	WorkDir        string
	Version        *util.Version
	Profile        util.Profile
	User           util.User
	NativesDir     string
	AssetsDir      string
	Classpath      string
	JavaHome       string
	BootstrapClass string
}

func quote(s string) string {
	return "\"" + s + "\""
}

func trimmedUUID(user util.User) string {
	return strings.ReplaceAll(user.ProfileID.String(), "-", "")
}

// NewPlaceholders computes the substitution table for a launch.
func NewPlaceholders(lc LaunchContext) Placeholders {
	gameDir := lc.WorkDir
	if lc.Profile.HasGameDir() {
		gameDir = lc.Profile.GameDir
	}

	properties := "{}"
	if lc.User.HasProperties() {
		if data, err := json.Marshal(lc.User.Properties); err == nil {
			properties = string(data)
		}
	}

	p := Placeholders{
		AuthPlayerName:  lc.User.DisplayName,
		VersionName:     lc.Version.ID,
		GameDirectory:   quote(absolute(gameDir)),
		AssetsRoot:      quote(absolute(lc.AssetsDir)),
		GameAssets:      quote(absolute(lc.AssetsDir)),
		AuthUUID:        trimmedUUID(lc.User),
		AuthAccessToken: lc.User.AccessToken,
		VersionType:     string(lc.Version.Type),
		UserProperties:  properties,
		UserType:        userType,
		AuthSession:     "token:" + lc.User.AccessToken + ":" + trimmedUUID(lc.User),
	}
	if lc.Version.HasAssets() {
		p[AssetsIndexName] = lc.Version.Assets
	}
	return p
}

// DefaultJava locates the java binary when the profile does not override it.
func DefaultJava(javaHome string) string {
	binary := "java"
	if runtime.GOOS == "windows" {
		binary = "java.exe"
	}
	if javaHome != "" {
		return filepath.Join(javaHome, "bin", binary)
	}
	if path, err := exec.LookPath(binary); err == nil {
		return path
	}
	return binary
}

func jvmArguments(profile util.Profile) []string {
	if profile.HasJavaArgs() {
		return strings.Fields(profile.JavaArgs)
	}

	heap := "-Xmx1G"
	if util.IsLegacyArch() {
		heap = "-Xmx512M"
	}
	return []string{heap, "-XX:+UseConcMarkSweepGC", "-XX:+CMSIncrementalMode", "-XX:-UseAdaptiveSizePolicy", "-Xmn128M"}
}

// BuildArguments assembles the full command line, java binary first.
func BuildArguments(lc LaunchContext) []string {
	var args []string
	if lc.Profile.HasJavaDir() {
		args = append(args, absolute(lc.Profile.JavaDir))
	} else {
		args = append(args, DefaultJava(lc.JavaHome))
	}

	args = append(args, jvmArguments(lc.Profile)...)
	args = append(args, "-Djava.library.path=" + absolute(lc.NativesDir))
	args = append(args, "-cp", lc.Classpath)
	args = append(args, lc.BootstrapClass, lc.Version.MainClass)
	args = append(args, strings.Fields(NewPlaceholders(lc).Apply(lc.Version.MinecraftArguments))...)

	if lc.Profile.HasResolution() {
		args = append(args,
			"--width", strconv.Itoa(lc.Profile.Resolution.Width),
			"--height", strconv.Itoa(lc.Profile.Resolution.Height))
	}
	return args
}

func ensureGameDir(profile util.Profile) error {
	if !profile.HasGameDir() {
		return nil
	}
	return os.MkdirAll(profile.GameDir, 0700)
}
