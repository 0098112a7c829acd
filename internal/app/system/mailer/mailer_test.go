package mailer

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_VerifiesCertificatesByDefault(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		insecure bool
	}{
		{"no credentials", Config{Host: "localhost", Port: 1025}, false},
		{"with credentials", Config{Host: "smtp.ihsb.test", Port: 587, User: "u", Pass: "p"}, false},
		{"explicit opt-in", Config{Host: "localhost", Port: 1025, InsecureSkipVerify: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.cfg, zap.NewNop())
			if !m.Enabled() {
				t.Fatal("mailer should be enabled")
			}
			got := m.dialer.TLSConfig != nil && m.dialer.TLSConfig.InsecureSkipVerify
			if got != tt.insecure {
				t.Errorf("InsecureSkipVerify = %v, want %v", got, tt.insecure)
			}
		})
	}
}
