// Package logtail reads the tail of the skillshare log file and renders it
// for the terminal.
//
// Read keeps a ring buffer of the last maxLines lines so a large log is
// scanned once without being held in memory. A missing file is not an
// error; it returns nil.
//
// The client writes zerolog JSON lines when running the TUI. Pretty turns
// those back into zerolog's console format for `skillshare logs`:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	return logtail.Pretty(os.Stdout, lines, true)
package logtail
