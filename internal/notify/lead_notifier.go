package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/adlweddings/wedding-lead-platform/internal/leads"
	"github.com/adlweddings/wedding-lead-platform/internal/observability/metrics"
	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

// whatsAppDialPrefix is concatenated with the raw phone digits. The phone is
// not re-validated here; malformed digits produce a malformed but harmless link.
const whatsAppDialPrefix = "91"

// LeadNotifier emails each new inquiry to the single configured inbox.
// Delivery is best-effort: every failure is logged and swallowed, so intake
// responses are never affected by a broken mail provider.
type LeadNotifier struct {
	email     EmailSender
	recipient string
	timeout   time.Duration
	metrics   *metrics.LeadMetrics
	logger    *logging.Logger
}

// NewLeadNotifier creates a notifier for one recipient. timeout bounds each
// send so a slow provider cannot stall the intake response indefinitely.
func NewLeadNotifier(email EmailSender, recipient string, timeout time.Duration, m *metrics.LeadMetrics, logger *logging.Logger) *LeadNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LeadNotifier{
		email:     email,
		recipient: recipient,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
	}
}

// Notify composes and sends the new-lead email. It never returns an error.
func (n *LeadNotifier) Notify(ctx context.Context, rec *leads.Record) {
	if n.email == nil || n.recipient == "" {
		n.logger.Debug("notify: email sender not configured, skipping")
		return
	}

	tier := leads.Classify(rec.Budget)
	subject := fmt.Sprintf("%s - New Wedding Inquiry: %s", tier.Label, rec.Name)

	msg := EmailMessage{
		To:      n.recipient,
		Subject: subject,
		Body:    plainBody(rec, tier),
		HTML:    htmlBody(rec, tier),
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.email.Send(ctx, msg); err != nil {
		n.logger.Error("notify: failed to send lead email", "error", err, "to", n.recipient, "name", rec.Name)
		n.metrics.ObserveNotification("failed")
		return
	}

	n.logger.Info("notify: lead email sent", "to", n.recipient, "priority", tier.Label)
	n.metrics.ObserveNotification("sent")
}

func whatsAppLink(phone string) string {
	return "https://wa.me/" + whatsAppDialPrefix + phone
}

func plainBody(rec *leads.Record, tier leads.Tier) string {
	return fmt.Sprintf(`New Wedding Inquiry - %s

Client Details:
Name: %s
WhatsApp: %s
Event Date: %s
Guest Count: %s
Budget: %s
Venue: %s

Contact immediately: %s
`,
		tier.Label, rec.Name, rec.Phone, rec.EventDate, rec.GuestCount, rec.Budget, rec.Venue,
		whatsAppLink(rec.Phone))
}

func htmlBody(rec *leads.Record, tier leads.Tier) string {
	link := whatsAppLink(rec.Phone)
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #d4af37, #c19b2e); padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0; font-family: 'Georgia', serif;">Dream Weddings</h1>
    <p style="color: white; margin: 10px 0 0 0;">New Lead Notification</p>
  </div>
  <div style="background: #f9f9f9; padding: 30px; border: 1px solid #e0e0e0;">
    <div style="background: white; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
      <h2 style="color: #d4af37; margin-top: 0;">Client Information</h2>
      <table style="width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;"><strong>Name:</strong></td><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;">%s</td></tr>
        <tr><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;"><strong>WhatsApp:</strong></td><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;"><a href="%s" style="color: #25d366;">%s</a></td></tr>
        <tr><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;"><strong>Event Date:</strong></td><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;">%s</td></tr>
        <tr><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;"><strong>Guest Count:</strong></td><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;">%s</td></tr>
        <tr><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;"><strong>Budget:</strong></td><td style="padding: 10px; border-bottom: 1px solid #e0e0e0;"><span style="color: #d4af37; font-weight: bold;">%s</span></td></tr>
        <tr><td style="padding: 10px;"><strong>Venue:</strong></td><td style="padding: 10px;">%s</td></tr>
      </table>
    </div>
    <div style="background: %s; padding: 15px; border-radius: 8px; text-align: center;">
      <p style="margin: 0; font-weight: bold; color: #333;">Priority Level: %s</p>
    </div>
    <div style="margin-top: 20px; text-align: center;">
      <a href="%s" style="display: inline-block; background: #25d366; color: white; padding: 12px 30px; text-decoration: none; border-radius: 25px; font-weight: bold;">Contact on WhatsApp</a>
    </div>
  </div>
  <div style="background: #333; padding: 20px; text-align: center;">
    <p style="color: #ccc; margin: 0; font-size: 12px;">This is an automated notification from Dream Weddings Lead System</p>
  </div>
</div>`,
		rec.Name, link, rec.Phone, rec.EventDate, rec.GuestCount, rec.Budget, rec.Venue,
		tier.Color, tier.Label, link)
}

var _ leads.Notifier = (*LeadNotifier)(nil)
