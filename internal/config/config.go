package config

import (
	"os"

	"gmailgrab/internal/models"

	"gopkg.in/yaml.v2"
)

// Defaults applied when the file leaves a field unset.
const (
	DefaultServer      = "imap.gmail.com:993"
	DefaultMailbox     = "INBOX"
	DefaultDays        = 7
	DefaultOutputDir   = "attachments"
	DefaultSafetyCount = 10
)

// Load reads the configuration from the specified YAML file and returns a Config struct
func Load(filepath string) (*models.Config, error) {
	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var config models.Config
	if err := yaml.Unmarshal(configFile, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

// ApplyEnv overrides credentials from the environment, so the YAML file
// can be committed without secrets.
func ApplyEnv(cfg *models.Config) {
	if login := os.Getenv("GMAILGRAB_LOGIN"); login != "" {
		cfg.Email.Login = login
	}
	if password := os.Getenv("GMAILGRAB_PASSWORD"); password != "" {
		cfg.Email.Password = password
	}
}

func applyDefaults(cfg *models.Config) {
	if cfg.Email.Imap == "" {
		cfg.Email.Imap = DefaultServer
	}
	if cfg.Email.MailBox == "" {
		cfg.Email.MailBox = DefaultMailbox
	}
	if cfg.Download.Days <= 0 {
		cfg.Download.Days = DefaultDays
	}
	if cfg.Download.OutputDir == "" {
		cfg.Download.OutputDir = DefaultOutputDir
	}
	if cfg.Delete.SafetyCount <= 0 {
		cfg.Delete.SafetyCount = DefaultSafetyCount
	}
}
