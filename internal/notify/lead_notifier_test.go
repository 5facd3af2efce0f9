package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlweddings/wedding-lead-platform/internal/leads"
	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

type capturingSender struct {
	messages []EmailMessage
	err      error
}

func (s *capturingSender) Send(_ context.Context, msg EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

func premiumLead() *leads.Record {
	return &leads.Record{
		Timestamp:  "25/12/2024, 6:30:05 pm",
		Name:       "Test Client",
		Phone:      "9876543210",
		EventDate:  "2024-12-25",
		GuestCount: "300-500",
		Budget:     "₹10L+",
		Venue:      "Dimapur",
	}
}

func TestNotifyPremiumLead(t *testing.T) {
	sender := &capturingSender{}
	notifier := NewLeadNotifier(sender, "owner@example.com", time.Second, nil, logging.Default())

	notifier.Notify(context.Background(), premiumLead())

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]

	assert.Equal(t, "owner@example.com", msg.To)
	assert.Contains(t, msg.Subject, "HIGH PRIORITY")
	assert.Contains(t, msg.Subject, "Test Client")

	assert.Contains(t, msg.Body, "https://wa.me/919876543210")
	assert.Contains(t, msg.HTML, "https://wa.me/919876543210")

	for _, field := range []string{"Test Client", "9876543210", "2024-12-25", "300-500", "₹10L+", "Dimapur"} {
		assert.Contains(t, msg.Body, field)
		assert.Contains(t, msg.HTML, field)
	}

	// Banner carries the classifier's color for the tier.
	assert.Contains(t, msg.HTML, "#ffd700")
}

func TestNotifyStandardLead(t *testing.T) {
	sender := &capturingSender{}
	notifier := NewLeadNotifier(sender, "owner@example.com", time.Second, nil, logging.Default())

	rec := premiumLead()
	rec.Budget = "₹2L - ₹5L"
	notifier.Notify(context.Background(), rec)

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.True(t, strings.HasPrefix(msg.Subject, "Standard - "), "subject: %s", msg.Subject)
	assert.Contains(t, msg.HTML, "#f0f0f0")
}

func TestNotifyMediumLead(t *testing.T) {
	sender := &capturingSender{}
	notifier := NewLeadNotifier(sender, "owner@example.com", time.Second, nil, logging.Default())

	rec := premiumLead()
	rec.Budget = "₹5L - ₹10L"
	notifier.Notify(context.Background(), rec)

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0].Subject, "MEDIUM PRIORITY")
}

func TestNotifySwallowsSendFailure(t *testing.T) {
	sender := &capturingSender{err: errors.New("smtp down")}
	notifier := NewLeadNotifier(sender, "owner@example.com", time.Second, nil, logging.Default())

	// Must not panic or propagate.
	notifier.Notify(context.Background(), premiumLead())
}

func TestNotifySkipsWithoutSender(t *testing.T) {
	notifier := NewLeadNotifier(nil, "owner@example.com", time.Second, nil, logging.Default())
	notifier.Notify(context.Background(), premiumLead())
}

func TestNotifyMalformedPhoneStillLinks(t *testing.T) {
	sender := &capturingSender{}
	notifier := NewLeadNotifier(sender, "owner@example.com", time.Second, nil, logging.Default())

	rec := premiumLead()
	rec.Phone = "98"
	notifier.Notify(context.Background(), rec)

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0].Body, "https://wa.me/9198")
}
