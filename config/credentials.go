package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	credFileName = "creds.toml"

	// HFTokenEnv overrides the token stored in creds.toml
	HFTokenEnv = "HF_TOKEN"
)

// Credentials holds all application credentials
type Credentials struct {
	HuggingFace HuggingFaceCredentials `toml:"huggingface"`
}

// HuggingFaceCredentials holds the Hugging Face access token.
// It is reserved for authenticated calls and not sent anywhere yet.
type HuggingFaceCredentials struct {
	Token string `toml:"token"`
}

// IsValid checks if a token is present
func (hc HuggingFaceCredentials) IsValid() bool {
	return hc.Token != ""
}

// CredentialsPath returns the creds.toml that sits next to the config at cfgPath
func CredentialsPath(cfgPath string) string {
	return path.Join(path.Dir(cfgPath), credFileName)
}

// EnvPath returns the .env file that sits next to the config at cfgPath
func EnvPath(cfgPath string) string {
	return path.Join(path.Dir(cfgPath), ".env")
}

// LoadCredentials decodes credPath (a missing file yields empty credentials),
// loads envFiles into the environment and lets HF_TOKEN override the stored token.
// Variables already present in the environment win over env files.
func LoadCredentials(credPath string, envFiles ...string) (Credentials, error) {
	var creds Credentials

	if _, err := toml.DecodeFile(credPath, &creds); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return creds, fmt.Errorf("failed to decode credentials at %s: %w", credPath, err)
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return creds, fmt.Errorf("failed to load env file '%s': %w", envFile, err)
		}
	}

	if token := os.Getenv(HFTokenEnv); token != "" {
		creds.HuggingFace.Token = token
	}

	return creds, nil
}
