package fileutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/zalando/go-keyring"
)

const service = "mclaunch"

// Config is read from the environment. WorkDir falls back to the directory
// stored in the keyring by Setup.
type Config struct {
	WorkDir string `env:"MCLAUNCH_WORKDIR"`
	JavaHome string `env:"JAVA_HOME"`
	BootstrapClass string `env:"MCLAUNCH_BOOTSTRAP_CLASS" envDefault:"mclaunch.GameStarter"`
	JoinStderr bool `env:"MCLAUNCH_JOIN_STDERR" envDefault:"true"`
}

func Setup(dotMinecraft string) error {
	if err := keyring.Set(service, "dot_minecraft", dotMinecraft); err != nil {
		return err
	}
	return os.MkdirAll(dotMinecraft, 0700)
}

func LoadConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if config.WorkDir == "" {
		dotMinecraft, err := keyring.Get(service, "dot_minecraft")
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return Config{}, errors.New("working directory not set, run init first")
			}
			return Config{}, err
		}
		config.WorkDir = dotMinecraft
	}
	return config, nil
}

type storedSession struct {
	UUID string `json:"uuid"`
	AccessToken string `json:"accessToken"`
	Properties map[string]string `json:"properties,omitempty"`
}

// SaveUser keeps the user's identity and access token in the OS keyring.
func SaveUser(user util.User) error {
	data, err := json.Marshal(storedSession{
		UUID: user.ProfileID.String(),
		AccessToken: user.AccessToken,
		Properties: user.Properties,
	})
	if err != nil {
		return err
	}
	return keyring.Set(service, "user:" + user.DisplayName, string(data))
}

func LoadUser(name string) (util.User, error) {
	data, err := keyring.Get(service, "user:" + name)
	if err != nil {
		return util.User{}, fmt.Errorf("load user %s: %w", name, err)
	}

	var session storedSession
	if err1 := json.Unmarshal([]byte(data), &session); err1 != nil {
		return util.User{}, err1
	}

	id, err2 := uuid.Parse(session.UUID)
	if err2 != nil {
		return util.User{}, err2
	}

	return util.User{
		DisplayName: name,
		ProfileID: id,
		AccessToken: session.AccessToken,
		Properties: session.Properties,
	}, nil
}
