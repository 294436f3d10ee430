// Package security builds client TLS configuration for the toolkit's
// transports.
//
// Failures are reported as unified errors: unreadable files as I/O errors,
// unparsable certificates as InvalidCertificateEncoding, and stapled SCTs
// that fail verification against the configured logs as InvalidSct.
//
// # TLS Configuration
//
//	cfg := security.TLSConfig{
//	    CAFile:     "/path/to/ca.pem",
//	    CTLogFiles: []string{"/path/to/log.pem"},
//	    RequireSCT: true,
//	}
//
//	tlsConfig, err := cfg.Build()
package security
