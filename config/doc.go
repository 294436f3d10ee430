// Package config loads application configuration with Viper.
//
// Values come from, highest precedence first: bound command-line flags,
// PREFIX_ environment variables (a .env file is loaded into the
// environment first), a YAML config file, and registered defaults.
// Config files are searched in the working directory and the per-user
// config directory unless an explicit path is given.
//
// # Usage
//
//	cfg, err := config.Load[MyConfig]("faultline",
//	    config.WithConfigFile(path),
//	    config.WithFlag("output.format", cmd.Flags().Lookup("format")),
//	)
//
// Environment variables override file values using the upper-cased
// application name as prefix (e.g. FAULTLINE_HTTP_TIMEOUT for http.timeout).
package config
