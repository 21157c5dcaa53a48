package fileutils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestLoadConfigFromKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv("MCLAUNCH_WORKDIR", "")
	dir := t.TempDir()

	_, err := LoadConfig()
	assert.Error(t, err)

	require.NoError(t, Setup(dir))
	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, config.WorkDir)
	assert.Equal(t, "mclaunch.GameStarter", config.BootstrapClass)
	assert.True(t, config.JoinStderr)
}

func TestLoadConfigFromEnv(t *testing.T) {
	keyring.MockInit()
	t.Setenv("MCLAUNCH_WORKDIR", "/games/mc")
	t.Setenv("JAVA_HOME", "/opt/jdk")
	t.Setenv("MCLAUNCH_JOIN_STDERR", "false")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{
		WorkDir: "/games/mc",
		JavaHome: "/opt/jdk",
		BootstrapClass: "mclaunch.GameStarter",
		JoinStderr: false,
	}, config)
}

func TestSaveAndLoadUser(t *testing.T) {
	keyring.MockInit()
	user := util.User{
		DisplayName: "Alice",
		ProfileID: uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5"),
		AccessToken: "secret",
		Properties: map[string]string{"twitch": "abc"},
	}

	require.NoError(t, SaveUser(user))
	loaded, err := LoadUser("Alice")
	require.NoError(t, err)
	assert.Equal(t, user, loaded)

	_, err = LoadUser("Bob")
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}
