package mailer

import (
	"fmt"
	"os"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Mailer sends best-effort transactional email through Resend. Every send
// is fire-and-forget from the caller's perspective: failures are logged
// here and never propagate.
type Mailer struct {
	client  *resend.Client
	from    string
	enabled bool
	logger  zerolog.Logger
}

func New(apiKey, from string) *Mailer {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "mailer").Logger()
	m := &Mailer{
		from:    from,
		enabled: apiKey != "",
		logger:  logger,
	}
	if m.enabled {
		m.client = resend.NewClient(apiKey)
	} else {
		logger.Info().Msg("no resend api key configured, email disabled")
	}
	return m
}

func (m *Mailer) send(to, subject, html string) {
	if !m.enabled {
		m.logger.Debug().Str("to", to).Str("subject", subject).Msg("email disabled, skipping send")
		return
	}

	_, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		m.logger.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("email send failed")
		return
	}
	m.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
}

func (m *Mailer) SendWelcome(to, name string) {
	html := fmt.Sprintf(`<p>Dear %s,</p>
<p>Welcome to Grace Church! Your account has been created and you can now
register for events, follow sermons and support the church online.</p>
<p>God bless,<br>Grace Church</p>`, name)
	m.send(to, "Welcome to Grace Church", html)
}

func (m *Mailer) SendContactReceipt(to, name string) {
	html := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for reaching out. We have received your message and will get
back to you as soon as we can.</p>
<p>God bless,<br>Grace Church</p>`, name)
	m.send(to, "We received your message", html)
}

func (m *Mailer) SendContactResponse(to, name, response string) {
	html := fmt.Sprintf(`<p>Dear %s,</p>
<p>%s</p>
<p>God bless,<br>Grace Church</p>`, name, response)
	m.send(to, "A response to your message", html)
}

func (m *Mailer) SendDonationReceipt(to, name string, amount float64, method string) {
	html := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for your generous donation of %.2f via %s. Your support makes
our ministry possible.</p>
<p>God bless,<br>Grace Church</p>`, name, amount, method)
	m.send(to, "Thank you for your donation", html)
}
