package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"creator-scout/internal/models"
	"creator-scout/shared/config"
)

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

// SendDigest sends the creator-discovery digest covering one scheduled run.
// Reports with no creators are still listed so empty niches are visible.
func (s *Sender) SendDigest(reports []*models.DigestReport) error {
	if len(reports) == 0 {
		return fmt.Errorf("at least one report is required")
	}

	total := 0
	for _, report := range reports {
		total += len(report.Creators)
	}

	subject := fmt.Sprintf("Creator Scout Digest - %d Creators Across %d Niches (%s)",
		total, len(reports), reports[0].Date.Format("Jan 2, 2006"))

	body, err := s.generateDigestBody(reports)
	if err != nil {
		return fmt.Errorf("failed to generate digest body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

func (s *Sender) generateDigestBody(reports []*models.DigestReport) (string, error) {
	// Read template from external file
	templatePath := "agents/creator-scout/email_template.html"
	tmplBytes, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read email template: %w", err)
	}

	tmpl := template.New("digest").Funcs(template.FuncMap{
		"formatCount": formatCount,
		"percent": func(rate float64) string {
			return fmt.Sprintf("%.1f%%", rate*100)
		},
		"inc": func(i int) int { return i + 1 },
	})

	tmpl, err = tmpl.Parse(string(tmplBytes))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, reports); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// formatCount renders counters the way the catalog UI does (1.2K, 3.4M).
func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
