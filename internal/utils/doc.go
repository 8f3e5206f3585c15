// Package utils exposes helpers shared by the CLI entrypoint.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// QUICKREPO_ environment variables through Viper. LoggerFactory builds the
// zap logger, and CommandContextAccessor carries the resolved configuration
// path on command contexts.
package utils
