package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPaymentCodeExtractor_AssignmentID(t *testing.T) {
	extractor := domain.NewPaymentCodeExtractor(domain.DefaultPaymentCodePrefix)
	tests := []struct {
		name    string
		content string
		want    int64
		wantErr bool
	}{
		{name: "bare code", content: "FLATAPP42", want: 42},
		{name: "code surrounded by text", content: "xxxFLATAPP007yyy", want: 7},
		{name: "first code wins", content: "FLATAPP12 FLATAPP13", want: 12},
		{name: "bank prefix", content: "MBVCB.123.FLATAPP9001.CT tu 0123", want: 9001},
		{name: "no code", content: "rent for january", wantErr: true},
		{name: "prefix without digits", content: "FLATAPP", wantErr: true},
		{name: "lower case prefix", content: "flatapp42", wantErr: true},
		{name: "overflow", content: "FLATAPP99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractor.AssignmentID(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentCodeExtractor_CustomPrefix(t *testing.T) {
	extractor := domain.NewPaymentCodeExtractor("APT-")
	got, err := extractor.AssignmentID("pay APT-15 now")
	assert.NoError(t, err)
	assert.Equal(t, int64(15), got)
}

func TestPaymentCode(t *testing.T) {
	assert.Equal(t, "FLATAPP42", domain.PaymentCode("", 42))
	assert.Equal(t, "APT-7", domain.PaymentCode("APT-", 7))
}

func TestFeeAssignment_MarkPaid(t *testing.T) {
	at := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	a := domain.FeeAssignment{ID: 1, RoomNumber: 101, FeeID: 1}
	a.MarkPaid(at)
	assert.True(t, a.IsPaid)
	if assert.NotNil(t, a.PaymentDate) {
		assert.Equal(t, at, *a.PaymentDate)
	}
}

func TestPasswordRecovery_Expired(t *testing.T) {
	exp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p := domain.PasswordRecovery{ExpiresAt: exp}
	assert.False(t, p.Expired(exp.Add(-time.Second)))
	assert.True(t, p.Expired(exp))
}
