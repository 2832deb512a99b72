package listing

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// File is a transient handle to a user-selected attachment. It is owned by
// the wizard and never persisted; only its name is mirrored into FormData.
type File struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Attachments groups the primary files and optional previews.
type Attachments struct {
	Files    []File `json:"files"`
	Previews []File `json:"previews"`
}

// FileNames projects attachment handles onto their display names.
func FileNames(files []File) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

// Clone returns a copy of the attachment lists.
func (a Attachments) Clone() Attachments {
	return Attachments{Files: cloneFiles(a.Files), Previews: cloneFiles(a.Previews)}
}

func cloneFiles(in []File) []File {
	if len(in) == 0 {
		return nil
	}
	out := make([]File, len(in))
	copy(out, in)
	return out
}

// OpenFile stats a path on disk and returns a handle for it.
func OpenFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("attachment %s is a directory", path)
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return File{
		Name:        filepath.Base(path),
		Path:        path,
		Size:        info.Size(),
		ContentType: ct,
	}, nil
}

// OpenFiles opens each path in order, stopping at the first failure.
func OpenFiles(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := OpenFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
