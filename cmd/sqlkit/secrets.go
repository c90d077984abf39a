// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	// ServiceName is the keyring service secrets are stored under.
	ServiceName = "sqlkit"

	// PasswordKey holds the database password.
	PasswordKey = "database-password"
)

// loadSecretsFromKeyring fills the database password from the system
// keyring unless a password or full DSN was already configured.
func loadSecretsFromKeyring(config *Config) error {
	if config.Database.Password != "" || config.Database.DSN != "" {
		return nil
	}
	value, err := GetSecretFromKeyring(PasswordKey)
	if err != nil {
		return err
	}
	config.Database.Password = value
	return nil
}

// GetSecretFromKeyring retrieves a secret from the system keyring.
func GetSecretFromKeyring(key string) (string, error) {
	return keyring.Get(ServiceName, key)
}

// SaveSecretToKeyring saves a secret to the system keyring.
func SaveSecretToKeyring(key, value string) error {
	return keyring.Set(ServiceName, key, value)
}

// DeleteSecretFromKeyring removes a secret from the system keyring.
func DeleteSecretFromKeyring(key string) error {
	return keyring.Delete(ServiceName, key)
}

func userConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "sqlkit")
}
