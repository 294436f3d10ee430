package httpclient

import "github.com/kbukum/faultline/security"

// TLSConfig is the shared security TLS configuration, including CT log
// pinning. See security.TLSConfig.
type TLSConfig = security.TLSConfig
