// internal/common/config/credentials.go
package config

import "os"

const OpenAIKeyEnv = "OPENAI_API_KEY"

// CredentialProvider resolves the generation-service credential. An empty
// string means no credential is configured.
type CredentialProvider interface {
	OpenAIKey() string
}

// EnvCredentials reads OPENAI_API_KEY on every call, so rotating the variable
// takes effect without a restart. Fallback is used when the variable is unset.
type EnvCredentials struct {
	Fallback string
}

func (e EnvCredentials) OpenAIKey() string {
	if val := os.Getenv(OpenAIKeyEnv); val != "" {
		return val
	}
	return e.Fallback
}

// StaticCredentials always returns the same key.
type StaticCredentials string

func (s StaticCredentials) OpenAIKey() string { return string(s) }

// CredentialsFromConfig returns the provider used by the binaries.
func CredentialsFromConfig(cfg *Config) CredentialProvider {
	return EnvCredentials{Fallback: cfg.OpenAI.APIKey}
}
