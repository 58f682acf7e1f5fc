// Package config loads nexus configuration from YAML files, .env files and
// environment variables using Viper.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("nexus", &cfg, config.WithConfigFile("config.yml"))
//
// Environment variables override file values using the upper-cased service
// name as prefix and underscores for nesting (e.g. NEXUS_COORDINATOR_MAX_PARALLEL).
package config
