package security

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"time"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
	"github.com/kbukum/faultline/tlserr"
)

// TLSConfig holds client TLS settings for the toolkit's transports.
type TLSConfig struct {
	// SkipVerify disables server certificate verification.
	// Not recommended for production.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// CAFile is the path to the CA certificate file for verifying the server.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile is the path to the client TLS certificate file (for mTLS).
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`

	// KeyFile is the path to the client TLS key file (for mTLS).
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the server name used for certificate verification.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is the minimum TLS version (e.g., tls.VersionTLS12).
	// Defaults to TLS 1.2 if not set.
	MinVersion uint16 `yaml:"min_version" mapstructure:"min_version"`

	// NextProtos lists the ALPN protocols offered to the server.
	NextProtos []string `yaml:"next_protos" mapstructure:"next_protos"`

	// CTLogFiles are PEM public keys of trusted certificate transparency logs.
	CTLogFiles []string `yaml:"ct_log_files" mapstructure:"ct_log_files"`

	// RequireSCT rejects servers that staple no valid SCT from a trusted log.
	RequireSCT bool `yaml:"require_sct" mapstructure:"require_sct"`

	// now is the SCT clock; tests replace it.
	now func() time.Time
}

// Build creates a *tls.Config from the configuration.
// Returns nil if no TLS settings are configured (all fields are zero values).
func (c *TLSConfig) Build() (*tls.Config, *errors.Error) {
	if c == nil {
		return nil, nil
	}

	if !c.hasSettings() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	minVersion := c.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}

	cfg := &tls.Config{
		InsecureSkipVerify: c.SkipVerify,
		ServerName:         c.ServerName,
		MinVersion:         minVersion,
		NextProtos:         c.NextProtos,
	}

	if err := c.loadCA(cfg); err != nil {
		return nil, err
	}

	if err := c.loadClientCert(cfg); err != nil {
		return nil, err
	}

	if err := c.loadCTLogs(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the TLS configuration is consistent.
func (c *TLSConfig) Validate() *errors.Error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return errors.Unspecified("security/tls: both cert_file and key_file must be provided together")
	}
	if c.RequireSCT && len(c.CTLogFiles) == 0 {
		return errors.Unspecified("security/tls: require_sct needs at least one ct_log_files entry")
	}
	return nil
}

// IsEnabled returns true if any TLS setting is configured.
func (c *TLSConfig) IsEnabled() bool {
	if c == nil {
		return false
	}
	return c.hasSettings()
}

func (c *TLSConfig) hasSettings() bool {
	return c.SkipVerify || c.CAFile != "" || c.CertFile != "" || c.ServerName != "" ||
		len(c.NextProtos) > 0 || len(c.CTLogFiles) > 0 || c.RequireSCT
}

func (c *TLSConfig) loadCA(cfg *tls.Config) *errors.Error {
	if c.CAFile == "" {
		return nil
	}
	ca, err := os.ReadFile(c.CAFile)
	if err != nil {
		return ioerr.Translate(err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return errors.FromTLS(errors.TLS(errors.TLSInvalidCertificateEncoding))
	}
	cfg.RootCAs = pool
	return nil
}

func (c *TLSConfig) loadClientCert(cfg *tls.Config) *errors.Error {
	if c.CertFile == "" || c.KeyFile == "" {
		return nil
	}
	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		if _, ok := ioerr.Code(err); ok {
			return ioerr.Translate(err)
		}
		return errors.FromTLS(errors.TLS(errors.TLSInvalidCertificateEncoding))
	}
	cfg.Certificates = []tls.Certificate{cert}
	return nil
}

// loadCTLogs installs a VerifyConnection hook that checks stapled SCTs.
func (c *TLSConfig) loadCTLogs(cfg *tls.Config) *errors.Error {
	if len(c.CTLogFiles) == 0 {
		return nil
	}
	logs := make([]*tlserr.Log, 0, len(c.CTLogFiles))
	for _, path := range c.CTLogFiles {
		log, err := readCTLog(path)
		if err != nil {
			return err
		}
		logs = append(logs, log)
	}
	now := c.now
	if now == nil {
		now = time.Now
	}
	require := c.RequireSCT
	cfg.VerifyConnection = func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return nil
		}
		valid, err := tlserr.CheckSCTs(cs.PeerCertificates[0].Raw, cs.SignedCertificateTimestamps, now(), logs)
		if err != nil {
			return err
		}
		if require && valid == 0 {
			return errors.FromTLS(errors.TLSMessageError(errors.TLSGeneral, "no valid signed certificate timestamp"))
		}
		return nil
	}
	return nil
}

func readCTLog(path string) (*tlserr.Log, *errors.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioerr.Translate(err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.Unspecifiedf("security/tls: %s holds no PEM block", path)
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, tlserr.Translate(err)
	}
	log, err := tlserr.NewLog(filepath.Base(path), key)
	if err != nil {
		return nil, tlserr.Translate(err)
	}
	return log, nil
}
