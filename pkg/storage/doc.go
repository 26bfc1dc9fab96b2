// Package storage manages the output directory for downloaded images.
//
// The storage package handles:
//   - Creating the output directory
//   - Deriving file names from the search query and photo id
//   - Streaming image bodies to disk through a temporary file and rename
//
// Files are named "<sanitized query>-<photo id>.jpg", where every rune of the
// query that is not an ASCII letter or digit becomes "-". An existing file with
// the same name is overwritten.
//
// Usage:
//
//	manager, err := storage.NewManager("./unsplash-images")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	name := storage.FileName("new york", "abc123") // new-york-abc123.jpg
//	n, err := manager.SavePhoto(body, name)
package storage
