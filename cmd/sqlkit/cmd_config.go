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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sqlkit configuration",
	Long:  `Manage configuration files and the database password stored in the system keyring.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate example configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd.OutOrStdout(), configInitPath, configInitForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration (merged from all sources). Secrets are masked.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd.OutOrStdout(), config)
	},
}

var configSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Save the database password to the system keyring",
	Long: `Save the database password to the system keyring (Keychain on macOS,
Credential Manager on Windows, Secret Service on Linux). It is used whenever
neither a password nor a DSN is configured.

Reads from the terminal without echo, or one line from stdin when piped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, err := readSecret(cmd.ErrOrStderr(), os.Stdin)
		if err != nil {
			return err
		}
		if err := SaveSecretToKeyring(PasswordKey, secret); err != nil {
			return fmt.Errorf("error saving to keyring: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved database password to system keyring")
		return nil
	},
}

var configDeletePasswordCmd = &cobra.Command{
	Use:   "delete-password",
	Short: "Remove the database password from the system keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := DeleteSecretFromKeyring(PasswordKey); err != nil {
			return fmt.Errorf("error deleting from keyring: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted database password from system keyring")
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", DefaultConfigFileName+".yaml", "where to write the file")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd, configShowCmd, configSetPasswordCmd, configDeletePasswordCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(w io.Writer, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(GenerateExampleConfig()), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func runConfigShow(w io.Writer, cfg *Config) error {
	settings := viper.AllSettings()
	if database, ok := settings["database"].(map[string]any); ok {
		if cfg.Database.Password != "" {
			database["password"] = "********"
		}
		if dsn, ok := database["dsn"].(string); ok && dsn != "" {
			database["dsn"] = maskDSN(dsn)
		}
	}
	return render(w, cfg.Output, settings)
}

var kvPasswordRe = regexp.MustCompile(`password=('(?:[^'\\]|\\.)*'|\S+)`)

// maskDSN hides the password in URL-form and keyword/value DSNs.
func maskDSN(dsn string) string {
	if scheme, rest, ok := strings.Cut(dsn, "://"); ok {
		creds, host, hasAt := strings.Cut(rest, "@")
		if !hasAt {
			return dsn
		}
		if user, _, hasPass := strings.Cut(creds, ":"); hasPass {
			return scheme + "://" + user + ":********@" + host
		}
		return dsn
	}

	return kvPasswordRe.ReplaceAllString(dsn, "password=********")
}

// readSecret reads a password without echo from a terminal, or a single line
// from a pipe.
func readSecret(prompt io.Writer, in *os.File) (string, error) {
	var secret string
	if term.IsTerminal(int(in.Fd())) {
		fmt.Fprint(prompt, "Enter database password (input hidden): ")
		b, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		secret = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if secret == "" {
		return "", errors.New("password cannot be empty")
	}
	return secret, nil
}
