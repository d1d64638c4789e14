package models

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"
)

func TestNewAttachmentHashes(t *testing.T) {
	payload := []byte("quarterly report contents")

	att, err := NewAttachment("report.pdf", payload, "a@x.com", "b@y.com", "Q3", time.Now())
	if err != nil {
		t.Fatalf("NewAttachment() error: %v", err)
	}

	md5sum := md5.Sum(payload)
	if att.MD5Sum != hex.EncodeToString(md5sum[:]) {
		t.Errorf("MD5Sum = %s does not match recomputed digest", att.MD5Sum)
	}

	sha := sha256.Sum256(payload)
	if att.SHA256 != hex.EncodeToString(sha[:]) {
		t.Errorf("SHA256 = %s does not match recomputed digest", att.SHA256)
	}
}

func TestNewAttachmentDeterminism(t *testing.T) {
	payload := []byte("same bytes")

	first, err := NewAttachment("a", payload, "", "", "", time.Time{})
	if err != nil {
		t.Fatalf("NewAttachment() error: %v", err)
	}
	second, err := NewAttachment("b", payload, "", "", "", time.Time{})
	if err != nil {
		t.Fatalf("NewAttachment() error: %v", err)
	}

	if first.MD5Sum != second.MD5Sum || first.SHA256 != second.SHA256 {
		t.Error("Identical payloads must produce identical digests")
	}

	other, err := NewAttachment("c", []byte("different bytes"), "", "", "", time.Time{})
	if err != nil {
		t.Fatalf("NewAttachment() error: %v", err)
	}

	if other.SHA256 == first.SHA256 {
		t.Error("Different payloads produced the same SHA-256")
	}
}

func TestNewAttachmentEmptyPayload(t *testing.T) {
	if _, err := NewAttachment("empty.txt", nil, "", "", "", time.Time{}); err == nil {
		t.Error("NewAttachment() expected error for missing payload")
	}
}

func TestAttachmentString(t *testing.T) {
	att, err := NewAttachment("report.pdf", []byte("x"), "", "", "", time.Time{})
	if err != nil {
		t.Fatalf("NewAttachment() error: %v", err)
	}
	if att.String() != "report.pdf" {
		t.Errorf("String() = %q, want filename", att.String())
	}
}
