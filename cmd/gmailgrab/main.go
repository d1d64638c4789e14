package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"gmailgrab/internal/config"
	imapclient "gmailgrab/internal/imap"
	"gmailgrab/internal/logging"
	"gmailgrab/internal/models"
	"gmailgrab/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		logging.Log.Fatalf("%v", err)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	days := flag.Int("days", 0, "override the configured day window")
	flag.Parse()

	// Credentials may live in a .env file instead of the YAML config
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logging.Log.Warnf("Could not load .env file: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	config.ApplyEnv(cfg)
	if *days > 0 {
		cfg.Download.Days = *days
	}

	logging.Log.Infof("Fetching attachments from the last %d day(s) in %s", cfg.Download.Days, cfg.Email.MailBox)

	sess, err := session.Open(imapclient.NewStandardClient(), session.Options{
		Server:            cfg.Email.Imap,
		Login:             cfg.Email.Login,
		Password:          cfg.Email.Password,
		IgnoreAttachments: cfg.Download.IgnoreAttachments,
		SafetyCount:       cfg.Delete.SafetyCount,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Logout(); err != nil {
			logging.Log.Errorf("Logout error: %v", err)
		}
	}()

	if mailboxes, err := sess.ListMailboxes(); err == nil {
		for _, mb := range mailboxes {
			logging.Log.Debugf("Mailbox %s (%s)", mb.Name, strings.Join(mb.Features, ", "))
		}
	}

	attachments, err := sess.GetAttachmentsForDays(cfg.Download.Days, cfg.Email.MailBox)
	if err != nil {
		return err
	}
	if len(attachments) == 0 {
		logging.Log.Info("No attachments found")
		return nil
	}

	return saveAttachments(attachments, cfg.Download.OutputDir)
}

// saveAttachments writes each attachment payload to the output directory,
// skipping payloads whose SHA-256 digest was already written in this run.
func saveAttachments(attachments []*models.Attachment, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	seen := make(map[string]bool)
	saved := 0
	for _, att := range attachments {
		if seen[att.SHA256] {
			logging.Log.Debugf("Skipping duplicate attachment %s (sha256 %s)", att.Filename, att.SHA256)
			continue
		}
		seen[att.SHA256] = true

		name := filepath.Base(att.Filename)
		if name == "" || name == "." || name == "/" {
			name = att.SHA256[:12] + ".bin"
		}

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, att.Data, 0o600); err != nil {
			logging.Log.Errorf("Could not write %s: %v", path, err)
			continue
		}
		logging.Log.Infof("Saved %s (%d bytes, from %s)", path, len(att.Data), att.FromAddr)
		saved++
	}

	logging.Log.Infof("Saved %d attachment(s) to %s", saved, dir)
	return nil
}
