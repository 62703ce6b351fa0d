package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/pkg/helpers"
)

// Mailer defines the interface for transactional mail sent by the nominee
// lifecycle. SendInvitation's result is load-bearing: a failed invitation
// rolls the nominee creation back. The other two are fire-and-forget from the
// caller's point of view.
type Mailer interface {
	SendInvitation(nominee *models.Nominee, event *models.Event) error
	SendAdminStatusNotice(nominee *models.Nominee, event *models.Event, status models.NomineeStatus) error
	SendFeedbackRequest(nominee *models.Nominee, event *models.Event) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromName   string
	FromEmail  string
	AdminEmail string
	UseTLS     bool
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	config SMTPConfig
	links  LinkBuilder
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(config SMTPConfig, links LinkBuilder, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		links:  links,
		logger: logger,
	}
}

// SendInvitation sends the invitation email with accept/reject links
func (s *SMTPMailer) SendInvitation(nominee *models.Nominee, event *models.Event) error {
	acceptURL := s.links.AcceptURL(nominee.ID)
	rejectURL := s.links.RejectURL(nominee.ID)

	// If credentials are not configured, log the mail instead of sending
	// (development mode, same convention for all three mail kinds)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", nominee.Email).
			Str("acceptURL", acceptURL).
			Str("rejectURL", rejectURL).
			Msg("SMTP credentials not configured - invitation not sent. Use the URLs above for testing.")
		return nil
	}

	subject := fmt.Sprintf("Invitation: %s", event.Title)

	body := fmt.Sprintf(`
		<html>
		<body>
			<p>Dear %s,</p>

			<p>You have been nominated for the following training event:</p>

			<ul>
				<li><strong>Event:</strong> %s</li>
				<li><strong>Description:</strong> %s</li>
				<li><strong>Date:</strong> %s</li>
				<li><strong>Time:</strong> %s</li>
				<li><strong>Venue:</strong> %s</li>
			</ul>

			<p>Please respond to this invitation by clicking one of the links below:</p>

			<p><a href="%s" style="background-color: #28a745; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Accept</a></p>
			<p><a href="%s" style="background-color: #dc3545; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Reject</a></p>

			<p>Best regards,<br>Training Management Team</p>
		</body>
		</html>
	`, nominee.Name, event.Title, event.Description,
		event.Date.Format("January 2, 2006"), helpers.FormatClock(event.StartTime), event.Venue,
		acceptURL, rejectURL)

	return s.sendHTMLEmail(nominee.Email, subject, body)
}

// SendAdminStatusNotice notifies the admin address after a nominee accepts or
// rejects an invitation
func (s *SMTPMailer) SendAdminStatusNotice(nominee *models.Nominee, event *models.Event, status models.NomineeStatus) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("nominee", nominee.Name).
			Str("status", string(status)).
			Msg("SMTP credentials not configured - admin status notice not sent.")
		return nil
	}

	subject := fmt.Sprintf("Nominee %s: %s - %s", status, nominee.Name, event.Title)

	body := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello Admin,</p>

			<p>Nominee "<strong>%s</strong>" has %s the invitation for the training event:</p>

			<ul>
				<li><strong>Event:</strong> %s</li>
				<li><strong>Nominee:</strong> %s</li>
				<li><strong>Email:</strong> %s</li>
				<li><strong>Department:</strong> %s</li>
				<li><strong>Status:</strong> %s</li>
			</ul>

			<p>Please check the dashboard for updated counts.</p>

			<p>Best regards,<br>Training Management System</p>
		</body>
		</html>
	`, nominee.Name, pastTense(status), event.Title, nominee.Name, nominee.Email, nominee.Department, status)

	return s.sendHTMLEmail(s.config.AdminEmail, subject, body)
}

// SendFeedbackRequest sends the feedback form link to an attended nominee
func (s *SMTPMailer) SendFeedbackRequest(nominee *models.Nominee, event *models.Event) error {
	feedbackURL := s.links.FeedbackURL(nominee.ID)

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", nominee.Email).
			Str("feedbackURL", feedbackURL).
			Msg("SMTP credentials not configured - feedback request not sent. Use the URL above for testing.")
		return nil
	}

	subject := fmt.Sprintf("Feedback Request: %s", event.Title)

	body := fmt.Sprintf(`
		<html>
		<body>
			<p>Dear %s,</p>

			<p>Thank you for attending the training event:</p>

			<ul>
				<li><strong>Event:</strong> %s</li>
				<li><strong>Date:</strong> %s</li>
				<li><strong>Venue:</strong> %s</li>
			</ul>

			<p>We value your feedback! Please take a moment to share your experience by clicking the link below:</p>

			<p><a href="%s" style="background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Click Here to Fill Feedback</a></p>

			<p>Your feedback helps us improve future training programs.</p>

			<p>Best regards,<br>Training Management Team</p>
		</body>
		</html>
	`, nominee.Name, event.Title, event.Date.Format("January 2, 2006"), event.Venue, feedbackURL)

	return s.sendHTMLEmail(nominee.Email, subject, body)
}

// pastTense renders a status for "has accepted/rejected the invitation"
func pastTense(status models.NomineeStatus) string {
	switch status {
	case models.StatusAccepted:
		return "accepted"
	case models.StatusRejected:
		return "rejected"
	default:
		return string(status)
	}
}

// sendHTMLEmail sends an HTML email
func (s *SMTPMailer) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
