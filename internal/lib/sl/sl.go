package sl

import "log/slog"

// Err returns a slog attribute for an error value.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Module returns a slog attribute identifying the emitting module.
func Module(name string) slog.Attr {
	return slog.Attr{
		Key:   "module",
		Value: slog.StringValue(name),
	}
}

// Secret masks a sensitive value, keeping only a short prefix for diagnostics.
func Secret(key, value string) slog.Attr {
	masked := "***"
	if len(value) > 6 {
		masked = value[:4] + "***"
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}
