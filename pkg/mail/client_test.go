package mail

import (
	"testing"

	"github.com/sparetrackhq/sparetrack-backend/pkg/config"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(config.MailConfig{SenderEmail: "noreply@example.com"})
	if err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestNewRequiresSender(t *testing.T) {
	_, err := New(config.MailConfig{SendgridAPIKey: "SG.test"})
	if err == nil {
		t.Fatalf("expected error without sender address")
	}
}

func TestNewWithFullConfig(t *testing.T) {
	client, err := New(config.MailConfig{
		SendgridAPIKey: "SG.test",
		SenderEmail:    "noreply@example.com",
		SenderName:     "SpareTrack",
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if client == nil {
		t.Fatalf("expected client")
	}
}
