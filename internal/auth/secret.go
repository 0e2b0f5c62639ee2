package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FallbackSecret is only used when no secret is configured and the secret
// file can be neither read nor written. Tokens signed with it can be forged
// by anyone who knows this value.
const FallbackSecret = "fallback_secret_not_for_production"

// SecretSource tells where the signing secret came from.
type SecretSource string

const (
	SecretFromConfig   SecretSource = "config"
	SecretFromFile     SecretSource = "file"
	SecretGenerated    SecretSource = "generated"
	SecretFromFallback SecretSource = "fallback"
)

const generatedSecretSize = 64

// ResolveSecret picks the token signing secret: the configured value, else the
// content of path, else a new random secret persisted to path. When path is
// unusable the fallback constant is returned along with the error that caused it.
func ResolveSecret(configured, path string) (string, SecretSource, error) {
	if configured != "" {
		return configured, SecretFromConfig, nil
	}

	if path == "" {
		return FallbackSecret, SecretFromFallback, errors.New("no secret file configured")
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if secret := strings.TrimSpace(string(data)); secret != "" {
			return secret, SecretFromFile, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return FallbackSecret, SecretFromFallback, fmt.Errorf("failed to read secret file: %w", err)
	}

	secret, err := generateSecret()
	if err != nil {
		return FallbackSecret, SecretFromFallback, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return FallbackSecret, SecretFromFallback, fmt.Errorf("failed to create secret directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret), 0o600); err != nil {
		return FallbackSecret, SecretFromFallback, fmt.Errorf("failed to write secret file: %w", err)
	}

	return secret, SecretGenerated, nil
}

func generateSecret() (string, error) {
	buf := make([]byte, generatedSecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
