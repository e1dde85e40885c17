// Package logging is the logging facade used by the proof engine.
//
// Logger is a small context-aware interface. New wraps a *slog.Logger (nil
// binds to slog.Default()), NewZap wraps a *zap.Logger and Nop discards
// everything.
//
//	engine := zkcompose.New(zkcompose.Config{
//	    Logger: logging.NewZap(zapLogger),
//	})
//
// The engine only logs public session shape: statement counts, kinds, class
// sizes and rejection reasons. Blindings, witnesses and challenges never reach
// a logger.
package logging
