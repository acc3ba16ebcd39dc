// Package static serves the document root.
//
// It contributes three stages to the server pipeline:
//
//   - root-document: GET or HEAD on exactly "/" returns the configured root document.
//   - static-file: GET or HEAD resolves the path under the document root and returns
//     the regular file found there with its Content-Type, Content-Length and
//     Last-Modified. Misses pass through.
//   - not-found: answers everything left with 404.
//
// Paths containing ".." are refused with 403 before the filesystem is touched, names
// are confined to the root, and paths that pass through a symbolic link are refused
// with 403 so a link cannot point outside it. Directories, including any path ending
// in "/", are never listed and only "/" has an index mapping.
package static
