package static

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"syscall"
	"time"

	"isoserve/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Asset is an opened file ready to be sent. The caller owns File.
type Asset struct {
	Name    string
	Size    int64
	ModTime time.Time
	File    afero.File
}

// Service resolves request paths to files under the document root.
type Service struct {
	fs           afero.Fs
	rootDocument string
	logger       *zap.Logger
}

// NewService creates a service reading from fs. fs is expected to be rooted at
// the document root, see storage.NewFS.
func NewService(fs afero.Fs, rootDocument string, logger *zap.Logger) *Service {
	return &Service{
		fs:           fs,
		rootDocument: rootDocument,
		logger:       logger,
	}
}

// Resolve turns a raw request path into a clean absolute path inside the root.
// Paths with ".." segments are rejected with server.ErrAccess.
func Resolve(requestPath string) (string, error) {
	decoded, err := url.PathUnescape(requestPath)
	if err != nil {
		return "", fmt.Errorf("malformed path %q: %w", requestPath, fiber.ErrBadRequest)
	}
	if strings.IndexByte(decoded, 0) >= 0 {
		return "", fmt.Errorf("path contains NUL: %w", fiber.ErrBadRequest)
	}

	for _, segment := range strings.Split(strings.ReplaceAll(decoded, `\`, "/"), "/") {
		if segment == ".." {
			return "", fmt.Errorf("path %q leaves the document root: %w", decoded, server.ErrAccess)
		}
	}

	clean := path.Clean("/" + decoded)
	if clean != "/" && strings.HasSuffix(decoded, "/") {
		// A trailing slash asks for a directory.
		clean += "/"
	}
	return clean, nil
}

// HasRootDocument reports whether "/" is mapped to a file.
func (s *Service) HasRootDocument() bool {
	return s.rootDocument != ""
}

// OpenRootDocument opens the file served for "/".
func (s *Service) OpenRootDocument() (*Asset, error) {
	if !s.HasRootDocument() {
		return nil, fmt.Errorf("no root document configured: %w", server.ErrNotFound)
	}
	return s.Open(path.Clean("/" + s.rootDocument))
}

// Open opens the regular file at name. Missing files and anything that is not
// a regular file yield server.ErrNotFound; other failures are returned wrapped.
//
// Names passing through a symbolic link are refused with server.ErrAccess:
// the filesystem confines names to the root, not link targets.
func (s *Service) Open(name string) (*Asset, error) {
	if strings.HasSuffix(name, "/") {
		return nil, fmt.Errorf("%s is a directory: %w", name, server.ErrNotFound)
	}
	if err := s.checkLinks(name); err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(name)
	if err != nil {
		return nil, classify(name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file: %w", name, server.ErrNotFound)
	}

	f, err := s.fs.Open(name)
	if err != nil {
		return nil, classify(name, err)
	}

	return &Asset{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		File:    f,
	}, nil
}

// checkLinks lstats every component of name below the root.
func (s *Service) checkLinks(name string) error {
	lstater, ok := s.fs.(afero.Lstater)
	if !ok {
		return nil
	}

	current := "/"
	for _, part := range strings.Split(strings.Trim(name, "/"), "/") {
		if part == "" {
			continue
		}
		current = path.Join(current, part)

		info, lstatCalled, err := lstater.LstatIfPossible(current)
		if err != nil {
			return classify(name, err)
		}
		if !lstatCalled {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%s passes through symlink %s: %w", name, current, server.ErrAccess)
		}
	}
	return nil
}

func classify(name string, err error) error {
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return fmt.Errorf("%s: %w", name, server.ErrNotFound)
	}
	return fmt.Errorf("failed to open %s: %w", name, err)
}
