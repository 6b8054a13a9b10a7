package inquiry

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func validInquiry() Inquiry {
	return Inquiry{
		Name:        "  John Doe ",
		Email:       "john@example.com",
		Phone:       "+1 (123) 456-7890",
		ServiceType: "network inspection",
		Details:     "Router keeps dropping.",
	}
}

func TestValidate(t *testing.T) {
	got, err := Validate(validInquiry())
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "Network Inspection", got.ServiceType)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Inquiry)
	}{
		{"missing name", func(in *Inquiry) { in.Name = "  " }},
		{"missing email", func(in *Inquiry) { in.Email = "" }},
		{"missing phone", func(in *Inquiry) { in.Phone = "" }},
		{"bad email", func(in *Inquiry) { in.Email = "not-an-email" }},
		{"long phone", func(in *Inquiry) { in.Phone = strings.Repeat("1", maxPhoneLen+1) }},
		{"long details", func(in *Inquiry) { in.Details = strings.Repeat("x", maxDetailsLen+1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInquiry()
			tt.modify(&in)
			_, err := Validate(in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidateUnknownServiceTypeIsOther(t *testing.T) {
	in := validInquiry()
	in.ServiceType = "Fax machines"
	got, err := Validate(in)
	require.NoError(t, err)
	assert.Equal(t, "Other", got.ServiceType)
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "inquiries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveListDelete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	older := validInquiry()
	older.Name = "Older"
	older.CreatedAt = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	first, err := s.Save(ctx, older)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	newer := validInquiry()
	newer.Name = "Newer"
	newer.CreatedAt = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	second, err := s.Save(ctx, newer)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Newer", list[0].Name)
	assert.Equal(t, "Older", list[1].Name)
	assert.True(t, list[1].CreatedAt.Equal(older.CreatedAt))

	require.NoError(t, s.Delete(ctx, first.ID))
	require.NoError(t, s.Delete(ctx, "unknown"))
	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestMailNotifier(t *testing.T) {
	d := &recordingDialer{}
	n := NewMailNotifier(SMTPConfig{From: "site@shop.test", To: "owner@shop.test"}, zap.NewNop()).WithDialer(d)

	in, err := Validate(validInquiry())
	require.NoError(t, err)
	require.NoError(t, n.Notify(context.Background(), in))

	require.Len(t, d.sent, 1)
	m := d.sent[0]
	assert.Equal(t, []string{"owner@shop.test"}, m.GetHeader("To"))
	assert.Equal(t, []string{"New inquiry: Network Inspection from John Doe"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Router keeps dropping.")
}

func TestMailNotifierError(t *testing.T) {
	d := &recordingDialer{err: errors.New("connection refused")}
	n := NewMailNotifier(SMTPConfig{From: "a@b.c", To: "d@e.f"}, zap.NewNop()).WithDialer(d)
	err := n.Notify(context.Background(), Inquiry{Name: "x", Email: "x@y.z"})
	assert.Error(t, err)
}
