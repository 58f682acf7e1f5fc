// Package logger provides structured logging for nexus using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying map fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("coordinator")
//	log.Info("broadcast finished", logger.Fields("adapters", 3))
package logger
