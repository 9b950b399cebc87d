// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// StatusReportData holds data for the daily system status email.
type StatusReportData struct {
	SiteName       string
	GeneratedAt    time.Time
	Users          int64
	ActiveSessions int64
	PendingTasks   int64
	DatabaseOK     bool
	CacheOK        bool
}

// BuildStatusReportEmail creates the daily status email with both HTML and
// text bodies. The To field is set by the caller.
func BuildStatusReportEmail(data StatusReportData) Email {
	return Email{
		Subject:  fmt.Sprintf("Daily System Status Report - %s", data.GeneratedAt.Format("2006-01-02 15:04:05")),
		TextBody: buildStatusReportText(data),
		HTMLBody: buildStatusReportHTML(data),
	}
}

func statusWord(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAILING"
}

func buildStatusReportText(data StatusReportData) string {
	var buf bytes.Buffer
	buf.WriteString("System Status Report\n")
	buf.WriteString(fmt.Sprintf("Time: %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("Database connections: %s\n", statusWord(data.DatabaseOK)))
	buf.WriteString(fmt.Sprintf("Cache: %s\n\n", statusWord(data.CacheOK)))
	buf.WriteString(fmt.Sprintf("Users: %d\n", data.Users))
	buf.WriteString(fmt.Sprintf("Active sessions: %d\n", data.ActiveSessions))
	buf.WriteString(fmt.Sprintf("Pending tasks: %d\n\n", data.PendingTasks))
	buf.WriteString("This is an automated message.\n")
	return buf.String()
}

func buildStatusReportHTML(data StatusReportData) string {
	tmpl := template.Must(template.New("status").Funcs(template.FuncMap{
		"word": statusWord,
	}).Parse(statusReportHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const statusReportHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>System Status Report</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">
                System status as of {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
              </p>
              <table width="100%" cellspacing="0" cellpadding="6" style="font-size: 14px; color: #374151;">
                <tr><td>Database connections</td><td align="right">{{word .DatabaseOK}}</td></tr>
                <tr><td>Cache</td><td align="right">{{word .CacheOK}}</td></tr>
                <tr><td>Users</td><td align="right">{{.Users}}</td></tr>
                <tr><td>Active sessions</td><td align="right">{{.ActiveSessions}}</td></tr>
                <tr><td>Pending tasks</td><td align="right">{{.PendingTasks}}</td></tr>
              </table>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                This is an automated message.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
