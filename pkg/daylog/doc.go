// Package daylog writes leveled, timestamped lines to one plain-text file per
// calendar day and deletes day files that fall outside a retention window.
//
// Files live in <local app data>/<app name>/logs by default and are named
// MM.dd.yy.txt. Every Write runs a retention pass over the directory first,
// so no background goroutine or timer is involved:
//
//	logger, err := daylog.New(daylog.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	logger.Log("cache warmed", daylog.LevelDebug)
//
// Log never reports failures to the caller; they go to the diagnostic
// *slog.Logger given with WithDiagnostics. Write and Clean return them.
//
// The package also reads what it writes: ListFiles enumerates day files and
// Viewer tails or follows them.
package daylog
