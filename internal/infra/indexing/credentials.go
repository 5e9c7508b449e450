package indexing

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ServiceAccount is the subset of a Google service-account key file used to
// sign token assertions.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	TokenURI     string `json:"token_uri"`
}

// ParseServiceAccount decodes a service-account key file.
func ParseServiceAccount(data []byte) (ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return ServiceAccount{}, fmt.Errorf("parse service account: %w", err)
	}
	sa.PrivateKey = normalizeKey(sa.PrivateKey)
	if err := sa.Validate(); err != nil {
		return ServiceAccount{}, err
	}
	return sa, nil
}

// LoadServiceAccount reads and decodes a service-account key file from disk.
func LoadServiceAccount(path string) (ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("read service account: %w", err)
	}
	return ParseServiceAccount(data)
}

// Validate checks the fields needed to sign an assertion.
func (sa ServiceAccount) Validate() error {
	var missing []string
	if sa.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if sa.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return errors.New("service account is missing " + strings.Join(missing, ", "))
	}
	return nil
}

// normalizeKey turns escaped newlines back into real ones. Keys pasted into
// environment variables usually arrive with literal "\n" sequences.
func normalizeKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
