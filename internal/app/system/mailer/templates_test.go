// internal/app/system/mailer/templates_test.go
package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestBuildStatusReportEmail(t *testing.T) {
	data := StatusReportData{
		SiteName:       "PanelBoard",
		GeneratedAt:    time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC),
		Users:          42,
		ActiveSessions: 3,
		PendingTasks:   7,
		DatabaseOK:     true,
		CacheOK:        false,
	}

	email := BuildStatusReportEmail(data)

	if !strings.Contains(email.Subject, "2025-03-14 08:00:00") {
		t.Errorf("subject missing timestamp: %q", email.Subject)
	}
	if !strings.Contains(email.TextBody, "Database connections: OK") {
		t.Error("text body missing database status")
	}
	if !strings.Contains(email.TextBody, "Cache: FAILING") {
		t.Error("text body missing cache status")
	}
	if !strings.Contains(email.TextBody, "Users: 42") {
		t.Error("text body missing user count")
	}
	if !strings.Contains(email.HTMLBody, "PanelBoard") {
		t.Error("HTML body missing site name")
	}
	if !strings.Contains(email.HTMLBody, "FAILING") {
		t.Error("HTML body missing failing status")
	}
	if !strings.Contains(email.HTMLBody, "<td align=\"right\">3</td>") {
		t.Error("HTML body missing active session count")
	}
}
