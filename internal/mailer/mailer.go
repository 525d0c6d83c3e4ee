package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"venue-booking/internal/logger"
	"venue-booking/internal/models"
)

const resendAPI = "https://api.resend.com/emails"

// Attachment content must be base64-encoded for the Resend API.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendEmail struct {
	From        string       `json:"from"`
	To          string       `json:"to"`
	Subject     string       `json:"subject"`
	Html        string       `json:"html"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Mailer sends transactional email through the Resend HTTP API. Without an
// API key it logs the message instead of sending, so local runs never need
// credentials.
type Mailer struct {
	apiKey string
	from   string
	client *http.Client
	log    *logger.Logger
}

func New(apiKey, from string, log *logger.Logger) *Mailer {
	return &Mailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (m *Mailer) send(to, subject, htmlBody, textBody string, atts ...Attachment) error {
	if m.apiKey == "" {
		m.log.Warn("EMAIL", fmt.Sprintf("RESEND_API_KEY not set, mock email to %s: %s", to, subject))
		return nil
	}

	payload := resendEmail{
		From:        m.from,
		To:          to,
		Subject:     subject,
		Html:        htmlBody,
		Text:        textBody,
		Attachments: atts,
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, resendAPI, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("resend API error: %s", resp.Status)
	}

	m.log.Info("EMAIL", fmt.Sprintf("Email sent to %s: %s", to, subject))
	return nil
}

// SendBookingConfirmation mails the visitor their slot booking details.
func (m *Mailer) SendBookingConfirmation(booking models.Booking) error {
	html := fmt.Sprintf(`
		<h2>Booking Confirmed</h2>
		<p>Hi %s, your booking is confirmed.</p>
		<ul>
			<li><b>Reference:</b> %s</li>
			<li><b>Sport:</b> %s</li>
			<li><b>Location:</b> %s</li>
			<li><b>Date:</b> %s</li>
			<li><b>Slot:</b> %s</li>
			<li><b>Players:</b> %d</li>
			<li><b>Amount:</b> ₹%.2f (%s)</li>
		</ul>
	`, booking.Name, booking.BookingRef, booking.Sport, booking.Location,
		booking.Date, booking.TimeSlot, booking.Players, booking.TotalAmount, booking.PaymentMode)

	text := fmt.Sprintf("Booking %s confirmed: %s at %s on %s, slot %s, ₹%.2f",
		booking.BookingRef, booking.Sport, booking.Location, booking.Date, booking.TimeSlot, booking.TotalAmount)

	return m.send(booking.Email, fmt.Sprintf("Booking Confirmed [%s]", booking.BookingRef), html, text)
}

// SendRegistrationConfirmation mails an event registrant, attaching the PDF
// e-ticket when one was generated.
func (m *Mailer) SendRegistrationConfirmation(reg models.Registration, ticketPDF string) error {
	html := fmt.Sprintf(`
		<h2>Registration Confirmed</h2>
		<p>Hi %s, you are registered for <b>%s</b>.</p>
		<ul>
			<li><b>Reference:</b> %s</li>
			<li><b>Role:</b> %s</li>
			<li><b>Participants:</b> %d</li>
			<li><b>Date:</b> %s</li>
			<li><b>Seats:</b> %v</li>
			<li><b>Fee:</b> ₹%.2f</li>
		</ul>
		<p>Your e-ticket is attached.</p>
	`, reg.Name, reg.EventName, reg.RegistrationRef, reg.Role, reg.Participants, reg.Date, reg.SeatNumbers, reg.Fee)

	var atts []Attachment
	if ticketPDF != "" {
		atts = append(atts, Attachment{
			Filename: fmt.Sprintf("e-ticket-%s.pdf", reg.RegistrationRef),
			Content:  ticketPDF,
		})
	}

	return m.send(reg.Email, fmt.Sprintf("Registration Confirmed [%s]", reg.RegistrationRef), html, "", atts...)
}

// SendWelcome greets a newly signed-up user.
func (m *Mailer) SendWelcome(email, fullName string) error {
	name := fullName
	if name == "" {
		name = "there"
	}
	html := fmt.Sprintf(`
		<h2>Welcome to SportsHub</h2>
		<p>Hi %s, your account is ready. Book a slot or register for an event any time.</p>
	`, name)
	return m.send(email, "Welcome to SportsHub", html, "")
}
