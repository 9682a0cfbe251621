// Package logging provides structured logging for tasker.
//
// This package wraps Go's log/slog to provide JSON-formatted logs. The
// interactive console prints results to the user; the log records what
// happened (command, task name, outcome) for later inspection.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Child loggers carrying persistent attributes (command, file)
//   - Size-based log rotation with a bounded number of backups
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(logging.Options{
//	    File:  "/home/me/.config/tasker/tasker.log",
//	    Level: "INFO",
//	})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithCommand("remove").Info("task removed", "task", name)
//
// When logging is disabled use [NopLogger], which discards everything.
package logging
