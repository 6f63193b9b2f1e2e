package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"baro_landing_go/config"
)

// smtpTimeout bounds connection, greeting and socket I/O against the relay.
// The relay is contacted from a fire-and-forget task, so a hung connection
// only wastes a goroutine, but 15s keeps log noise timely.
const smtpTimeout = 15 * time.Second

// logoFileName is the inline branding image; its file name doubles as the
// Content-ID referenced from the HTML body.
const logoFileName = "logo_black.png"

// logoCandidatePaths are probed in order; the first existing file is embedded.
// Deployments differ in working directory, hence the multiple candidates.
var logoCandidatePaths = []string{
	filepath.Join("static", "images", logoFileName),
	filepath.Join("static", logoFileName),
	logoFileName,
}

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
	// EmbedPath is an optional inline attachment; empty means none.
	EmbedPath string
}

// ConsultationEmailData contains data for the consultation notification template
type ConsultationEmailData struct {
	Name        string
	Contact     string
	DialableTel string
	ClickSource string
	SubmittedAt string
	LogoCID     string
}

// loadTemplate loads an email template pair (.html and .txt) from the
// templates/emails directory and executes it with data.
func loadTemplate(templateName string, data interface{}) (html string, text string, err error) {
	basePath := "templates/emails"

	loadAndExec := func(ext string) (string, error) {
		path := filepath.Join(basePath, templateName+ext)
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template %s: %v", path, err)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %v", path, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to execute template %s: %v", path, err)
		}
		return buf.String(), nil
	}

	htmlContent, err := loadAndExec(".html")
	if err != nil {
		return "", "", err
	}

	textContent, err := loadAndExec(".txt")
	if err != nil {
		return "", "", err
	}

	return htmlContent, textContent, nil
}

// FindLogoFile probes the candidate logo locations and returns the first that
// exists, or "" when none does. A missing logo never blocks a send.
func FindLogoFile() string {
	for _, path := range logoCandidatePaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	log.Printf("Logo file not found in any candidate path, sending without logo")
	return ""
}

// BuildConsultationEmail composes the operator notification for a new
// consultation submission.
func BuildConsultationEmail(cfg *config.Config, name, contact, clickSource string, submittedAt time.Time) *Email {
	logoPath := FindLogoFile()
	logoCID := ""
	if logoPath != "" {
		logoCID = logoFileName
	}

	data := ConsultationEmailData{
		Name:        name,
		Contact:     contact,
		DialableTel: DialableContact(contact),
		ClickSource: clickSource,
		SubmittedAt: submittedAt.In(seoulLocation()).Format("2006. 1. 2. 15:04:05"),
		LogoCID:     logoCID,
	}

	htmlBody, textBody, err := loadTemplate("consultation", data)
	if err != nil {
		log.Printf("Error loading consultation email template: %v", err)
		// Plain-text fallback so a broken template never drops a notification
		sourceLine := ""
		if data.ClickSource != "" {
			sourceLine = "유입 경로: " + data.ClickSource + "\n"
		}
		textBody = fmt.Sprintf("새로운 상담 신청이 접수되었습니다.\n\n이름(회사명): %s\n연락처: %s\n%s신청 시간: %s\n",
			data.Name, data.Contact, sourceLine, data.SubmittedAt)
		htmlBody = ""
	}

	return &Email{
		To:        []string{cfg.NotifyRecipient()},
		Subject:   fmt.Sprintf("[상담 접수] %s님", name),
		HTMLBody:  htmlBody,
		TextBody:  textBody,
		EmbedPath: logoPath,
	}
}

// SendEmail sends an email through the configured SMTP relay.
// When the relay credentials are not configured the send is skipped and
// reported as success; the skip is visible only in the logs.
func SendEmail(cfg *config.Config, email *Email) (messageID string, err error) {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("Email logged successfully (test mode - not actually sent)")
		return "", nil
	}

	if !cfg.NotificationsConfigured() {
		log.Printf("SMTP credentials not configured, skipping notification to %v", email.To)
		return "", nil
	}

	if email.HTMLBody == "" && email.TextBody == "" {
		return "", fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat("한평생 바로기업", cfg.SMTPUser); err != nil {
		return "", fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return "", fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetMessageID()

	if email.TextBody != "" {
		msg.SetBodyString(mail.TypeTextPlain, email.TextBody)
	}
	if email.HTMLBody != "" {
		if email.TextBody != "" {
			msg.AddAlternativeString(mail.TypeTextHTML, email.HTMLBody)
		} else {
			msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)
		}
	}

	// Inline logo; absence was already tolerated at build time, and an embed
	// problem surfaces at send time with the rest of the transport errors
	if email.EmbedPath != "" {
		msg.EmbedFile(email.EmbedPath, mail.WithFileName(logoFileName))
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(smtpTimeout),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create SMTP client: %w", err)
	}

	// No pre-flight handshake check: verifying the greeting separately can
	// time out behind some relays, so transport errors surface at send time.
	if err := client.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("failed to send email via %s: %w", cfg.SMTPHost, err)
	}

	messageID = strings.Join(msg.GetGenHeader(mail.HeaderMessageID), "")
	log.Printf("Email sent successfully (ID: %s) to: %v", messageID, email.To)
	return messageID, nil
}

// SendConsultationEmailAsync dispatches the operator notification without
// blocking the caller. The outcome is only ever logged; the submission
// response must not depend on the relay.
func SendConsultationEmailAsync(cfg *config.Config, name, contact, clickSource string) {
	email := BuildConsultationEmail(cfg, name, contact, clickSource, time.Now())

	go func() {
		messageID, err := SendEmail(cfg, email)
		if err != nil {
			log.Printf("Error sending consultation notification for %q: %v", name, err)
			return
		}
		if messageID != "" {
			log.Printf("Consultation notification for %q delivered (ID: %s)", name, messageID)
		}
	}()
}

// logEmailToConsole logs email details to console in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// seoulLocation returns the presentation timezone for notification timestamps.
func seoulLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.Local
	}
	return loc
}
