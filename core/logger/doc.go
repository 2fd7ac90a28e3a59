// Package logger builds slog loggers and provides attribute helpers.
//
//	log := logger.New(logger.WithProduction("postboard"))
//	log.Info("server starting", logger.Component("server"), logger.Event("startup"))
//
// WithDevelopment selects human-readable text at debug level. Request-scoped
// attributes can be attached automatically with WithContextExtractors:
//
//	log := logger.New(
//		logger.WithProduction("postboard"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id := middleware.GetRequestID(ctx)
//			return logger.RequestID(id), id != ""
//		}),
//	)
//	log.InfoContext(ctx, "post created")
//
// Attribute helpers return an empty slog.Attr for empty input, which slog
// drops, so logger.Error(nil) is safe.
package logger
