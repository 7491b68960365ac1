package mail

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailService_NoHostLogsOnly(t *testing.T) {
	m := NewMailService(SMTPConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, ok := m.(*logMailer)
	require.True(t, ok)
	assert.NoError(t, m.SendPasswordRecoveryMail(context.Background(), "a@b.c", "http://x/reset"))
}

func TestNewMailService_FromFallsBackToUser(t *testing.T) {
	m := NewMailService(SMTPConfig{Host: "smtp.example.com", Port: 587, User: "bot@example.com"}, slog.Default())
	svc, ok := m.(*MailService)
	require.True(t, ok)
	assert.Equal(t, "bot@example.com", svc.from)
}

func TestFeeAssignedBody(t *testing.T) {
	body := feeAssignedBody(FeeNotice{
		TenantName:  "Alice",
		RoomNumber:  101,
		FeeName:     "Water",
		Amount:      "100,000",
		DueDate:     "31/01/2024",
		PaymentCode: "FLATAPP42",
	})
	assert.Contains(t, body, "Room 101")
	assert.Contains(t, body, "FLATAPP42")
	assert.Contains(t, body, "100,000")
}
