// Package config loads the settings.json file that carries portal
// credentials, Google Calendar API settings, and the named student groups.
// A missing file is bootstrapped with an indented template for the user to
// fill in.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is where the settings file lives relative to the working
// directory.
const DefaultPath = "settings.json"

// Credentials holds a username/password pair for one portal.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GoogleAPI holds the Google Calendar API settings.
type GoogleAPI struct {
	Scopes      []string `json:"scopes"`
	CalendarID  string   `json:"calendarID"`
	SecretsFile string   `json:"secretsFile"`
	TokenFile   string   `json:"tokenFile"`
}

// StudentGroups names the students in the configured subgroups. Unity
// students get their own description block; Focus students are called out
// as needing extra attention.
type StudentGroups struct {
	Unity []string `json:"unity"`
	Focus []string `json:"focus"`
}

// Settings is the full contents of settings.json.
type Settings struct {
	MyStudio  Credentials   `json:"myStudio"`
	Homebase  Credentials   `json:"homebase"`
	GoogleAPI GoogleAPI     `json:"googleAPI"`
	Students  StudentGroups `json:"students"`
}

// Template returns the settings skeleton written on first run.
func Template() *Settings {
	return &Settings{
		GoogleAPI: GoogleAPI{
			Scopes:      []string{"https://www.googleapis.com/auth/calendar.events"},
			CalendarID:  "primary",
			SecretsFile: "credentials.json",
			TokenFile:   "token.json",
		},
		Students: StudentGroups{
			Unity: []string{},
			Focus: []string{},
		},
	}
}

// Exists reports whether a settings file is present at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads and parses the settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	return &settings, nil
}

// WriteTemplate writes the settings skeleton to the given path for the user
// to fill in.
func WriteTemplate(path string) error {
	data, err := json.MarshalIndent(Template(), "", "    ")
	if err != nil {
		return fmt.Errorf("encoding settings template: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing settings template: %w", err)
	}

	return nil
}
