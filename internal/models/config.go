package models

// Config represents the application configuration
type Config struct {
	Email    EmailConfig    `yaml:"email"`
	Download DownloadConfig `yaml:"download"`
	Delete   DeleteConfig   `yaml:"delete"`
}

// EmailConfig represents IMAP account configuration
type EmailConfig struct {
	Imap     string `yaml:"imap"`
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	MailBox  string `yaml:"mailbox"`
}

// DownloadConfig controls the attachment download run
type DownloadConfig struct {
	OutputDir         string   `yaml:"outputDir"`
	Days              int      `yaml:"days"`
	IgnoreAttachments []string `yaml:"ignoreAttachments"`
}

// DeleteConfig holds the guardrail against accidental bulk deletion
type DeleteConfig struct {
	SafetyCount int `yaml:"safetyCount"`
}
