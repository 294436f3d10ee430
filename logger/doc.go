// Package logger provides structured logging on zerolog.
//
// It supports JSON and console output, level configuration, component
// loggers, and fault fields that render a unified error as its kind tag
// plus structured payload.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("httpclient")
//	log.WithFault(err).Warn("request failed", logger.Fields("url", u))
package logger
