// Package media stores submitted colony images on disk and hands back the
// URL paths persisted inside reports. Camera captures and file uploads keep
// separate prefixes so the upload directory stays browsable.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"github.com/pkg/errors"
)

const (
	prefixCamera  = "camera"
	prefixUploads = "user_uploads"

	// URLRoot is where the router serves stored blobs from.
	URLRoot = "/uploads/"
)

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Store struct {
	*diskv.Diskv
	root string
}

func NewStore(rootDir string) *Store {
	transformer := func(key string) *diskv.PathKey {
		path := strings.Split(key, "/")
		last := len(path) - 1
		return &diskv.PathKey{
			Path:     path[:last],
			FileName: path[last],
		}
	}
	invTransformer := func(pathKey *diskv.PathKey) string {
		return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
	}
	return &Store{
		root: rootDir,
		Diskv: diskv.New(diskv.Options{
			BasePath:          rootDir,
			AdvancedTransform: transformer,
			InverseTransform:  invTransformer,
			CacheSizeMax:      1024 * 1024,
		}),
	}
}

// Root is the on-disk base path, for static file serving.
func (s *Store) Root() string { return s.root }

// SaveUpload persists a multipart image upload. The content type is sniffed
// from the file bytes, not trusted from the client.
func (s *Store) SaveUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Wrap(err, "read upload")
	}
	if len(data) == 0 {
		return "", errors.New("uploaded file is empty")
	}

	ext, err := sniffExtension(data)
	if err != nil {
		return "", err
	}
	if orig := strings.ToLower(filepath.Ext(fh.Filename)); orig == ext || (orig == ".jpeg" && ext == ".jpg") {
		ext = orig
	}

	key := fmt.Sprintf("%s/%d%s", prefixUploads, time.Now().UnixNano(), ext)
	if err := s.Write(key, data); err != nil {
		return "", errors.Wrap(err, "write upload")
	}
	return URLRoot + key, nil
}

// SaveCameraFrame persists a captured frame (already decoded from its data
// URL by the caller).
func (s *Store) SaveCameraFrame(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty camera frame")
	}
	ext, err := sniffExtension(data)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/capture-%d%s", prefixCamera, time.Now().UnixNano(), ext)
	if err := s.Write(key, data); err != nil {
		return "", errors.Wrap(err, "write camera frame")
	}
	return URLRoot + key, nil
}

func sniffExtension(data []byte) (string, error) {
	n := len(data)
	if n > 512 {
		n = 512
	}
	ct := http.DetectContentType(data[:n])
	ext, ok := extByContentType[ct]
	if !ok {
		return "", errors.Errorf("unsupported image type %s", ct)
	}
	return ext, nil
}
