package security

import (
	"crypto/tls"
	"net"
	"testing"
	"time"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/security/tlstest"
	"github.com/kbukum/faultline/tlserr"
)

func TestTLSConfig_Build_NilConfig(t *testing.T) {
	var cfg *TLSConfig
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatal("expected nil for nil config")
	}
}

func TestTLSConfig_Build_ZeroValue(t *testing.T) {
	cfg := &TLSConfig{}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatal("expected nil for zero-value config")
	}
}

func TestTLSConfig_Build_SkipVerify(t *testing.T) {
	cfg := &TLSConfig{SkipVerify: true}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil tls.Config")
	}
	if !result.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify=true")
	}
	if result.MinVersion != tls.VersionTLS12 {
		t.Errorf("expected MinVersion=TLS12, got %d", result.MinVersion)
	}
}

func TestTLSConfig_Build_ServerName(t *testing.T) {
	cfg := &TLSConfig{SkipVerify: true, ServerName: "example.com"}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ServerName != "example.com" {
		t.Errorf("expected ServerName=example.com, got %s", result.ServerName)
	}
}

func TestTLSConfig_Build_CustomMinVersion(t *testing.T) {
	cfg := &TLSConfig{SkipVerify: true, MinVersion: tls.VersionTLS13}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MinVersion != tls.VersionTLS13 {
		t.Errorf("expected MinVersion=TLS13, got %d", result.MinVersion)
	}
}

func TestTLSConfig_Build_InvalidCAFile(t *testing.T) {
	cfg := &TLSConfig{CAFile: "/nonexistent/ca.pem"}
	_, err := cfg.Build()
	if err == nil {
		t.Fatal("expected error for nonexistent CA file")
	}
	if k, ok := err.IO(); !ok || k.Code != errors.IONotFound {
		t.Errorf("expected IoErr(NotFound), got %v", err)
	}
}

func TestTLSConfig_Build_InvalidCertFiles(t *testing.T) {
	cfg := &TLSConfig{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}
	_, err := cfg.Build()
	if err == nil {
		t.Fatal("expected error for nonexistent cert files")
	}
}

func TestTLSConfig_Validate_Nil(t *testing.T) {
	var cfg *TLSConfig
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTLSConfig_Validate_Valid(t *testing.T) {
	cfg := &TLSConfig{CertFile: "cert.pem", KeyFile: "key.pem"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTLSConfig_Validate_MismatchedCertKey(t *testing.T) {
	cfg := &TLSConfig{CertFile: "cert.pem"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when CertFile set without KeyFile")
	}

	cfg = &TLSConfig{KeyFile: "key.pem"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when KeyFile set without CertFile")
	}
}

func TestTLSConfig_Validate_RequireSCTWithoutLogs(t *testing.T) {
	cfg := &TLSConfig{RequireSCT: true}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when RequireSCT has no logs")
	}
}

func TestTLSConfig_IsEnabled(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		enabled bool
	}{
		{"nil", nil, false},
		{"zero", &TLSConfig{}, false},
		{"skip_verify", &TLSConfig{SkipVerify: true}, true},
		{"ca_file", &TLSConfig{CAFile: "ca.pem"}, true},
		{"cert_file", &TLSConfig{CertFile: "cert.pem"}, true},
		{"server_name", &TLSConfig{ServerName: "example.com"}, true},
		{"next_protos", &TLSConfig{NextProtos: []string{"h2"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEnabled(); got != tt.enabled {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.enabled)
			}
		})
	}
}

func TestTLSConfig_Build_ValidCA(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{CAFile: certs.CAFile}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil tls.Config")
	}
	if result.RootCAs == nil {
		t.Error("expected RootCAs to be set")
	}
}

func TestTLSConfig_Build_ValidClientCert(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{
		CertFile: certs.CertFile,
		KeyFile:  certs.KeyFile,
	}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil tls.Config")
	}
	if len(result.Certificates) != 1 {
		t.Errorf("expected 1 certificate, got %d", len(result.Certificates))
	}
}

func TestTLSConfig_Build_FullConfig(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{
		CAFile:     certs.CAFile,
		CertFile:   certs.CertFile,
		KeyFile:    certs.KeyFile,
		ServerName: "localhost",
		MinVersion: tls.VersionTLS13,
	}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil tls.Config")
	}
	if result.RootCAs == nil {
		t.Error("expected RootCAs to be set")
	}
	if len(result.Certificates) != 1 {
		t.Error("expected 1 client certificate")
	}
	if result.ServerName != "localhost" {
		t.Errorf("expected ServerName=localhost, got %s", result.ServerName)
	}
	if result.MinVersion != tls.VersionTLS13 {
		t.Errorf("expected MinVersion=TLS13, got %d", result.MinVersion)
	}
}

func TestTLSConfig_Build_InvalidCAContent(t *testing.T) {
	caFile := tlstest.WriteInvalidPEM(t, "bad-ca.pem")
	cfg := &TLSConfig{CAFile: caFile}
	_, err := cfg.Build()
	if err == nil {
		t.Fatal("expected error for invalid CA PEM content")
	}
	if got, ok := err.TLS(); !ok || got.Code != errors.TLSInvalidCertificateEncoding {
		t.Errorf("expected InvalidCertificateEncoding, got %v", err)
	}
}

// handshake dials a one-shot TLS server presenting serverCert and returns
// the client handshake result, translated.
func handshake(t *testing.T, serverCert tls.Certificate, client *tls.Config) *errors.Error {
	t.Helper()
	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: []tls.Certificate{serverCert}})
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.(*tls.Conn).Handshake()
	}()

	raw, err := net.DialTimeout("tcp", ln.Addr().String(), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Close()
	_ = raw.SetDeadline(time.Now().Add(5 * time.Second))
	return tlserr.Translate(tls.Client(raw, client).Handshake())
}

func TestTLSConfig_Build_StapledSCT(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	ctlog := tlstest.GenerateCTLog(t)
	cfg := &TLSConfig{
		CAFile:     certs.CAFile,
		ServerName: "localhost",
		CTLogFiles: []string{ctlog.KeyFile},
		RequireSCT: true,
	}
	client, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.VerifyConnection == nil {
		t.Fatal("expected a VerifyConnection hook")
	}

	stapled := certs.ServerTLS
	stapled.SignedCertificateTimestamps = [][]byte{ctlog.SignSCT(t, certs.LeafDER, time.Now().Add(-time.Minute))}
	if e := handshake(t, stapled, client); e != nil {
		t.Errorf("expected handshake to succeed, got %v", e)
	}

	e := handshake(t, certs.ServerTLS, client)
	if got, ok := e.TLS(); !ok || got.Code != errors.TLSGeneral {
		t.Errorf("expected General for a missing SCT, got %v", e)
	}
}

func TestTLSConfig_Build_FutureSCT(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	ctlog := tlstest.GenerateCTLog(t)
	now := time.Now()
	cfg := &TLSConfig{
		CAFile:     certs.CAFile,
		ServerName: "localhost",
		CTLogFiles: []string{ctlog.KeyFile},
		now:        func() time.Time { return now },
	}
	client, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stapled := certs.ServerTLS
	stapled.SignedCertificateTimestamps = [][]byte{ctlog.SignSCT(t, certs.LeafDER, now.Add(time.Hour))}
	e := handshake(t, stapled, client)
	got, ok := e.TLS()
	if !ok || got.Code != errors.TLSInvalidSCT || got.SCT != errors.SCTTimestampInFuture {
		t.Errorf("expected InvalidSct(TimestampInFuture), got %v", e)
	}
}

func TestTLSConfig_Build_MissingCTLog(t *testing.T) {
	cfg := &TLSConfig{CTLogFiles: []string{"/nonexistent/log.pem"}, RequireSCT: true}
	_, err := cfg.Build()
	if k, ok := err.IO(); !ok || k.Code != errors.IONotFound {
		t.Errorf("expected IoErr(NotFound), got %v", err)
	}
}
