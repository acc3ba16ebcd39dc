// Package storage provides access to the document root on disk.
//
// It wraps afero so the rest of the application sees a filesystem that is both
// confined to the document root (BasePathFs) and read-only (ReadOnlyFs). Tests
// swap in an in-memory afero.Fs.
//
// # Usage
//
//	fs := storage.NewFS(cfg.Server.DocumentRoot)
//	f, err := fs.Open("/index.html")
package storage
