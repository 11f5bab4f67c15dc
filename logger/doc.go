// Package logger provides structured logging for seqkit on zerolog.
//
// It supports JSON and console output, level configuration, and scoped
// loggers carrying stream, component and run identifiers.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("source").WithStream("inbox")
//	log.Info("batch drained", logger.Fields(logger.FieldBatchID, id, logger.FieldCount, n))
package logger
