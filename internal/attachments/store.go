package attachments

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/sparetrackhq/sparetrack-backend/pkg/enums"
	"github.com/sparetrackhq/sparetrack-backend/pkg/types"
)

// URLPrefix is the public path under which stored files are served.
const URLPrefix = "/uploads"

// Store persists attachment bytes on disk under photos/ and drawings/
// subdirectories and maps between public URLs and filesystem paths.
type Store struct {
	root string
}

// NewStore prepares the upload directory tree rooted at root.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("upload root is required")
	}
	for _, typ := range []enums.AttachmentType{enums.AttachmentTypePhoto, enums.AttachmentTypeDrawing} {
		if err := os.MkdirAll(filepath.Join(root, typ.Subdir()), 0o755); err != nil {
			return nil, fmt.Errorf("creating upload dir %s: %w", typ.Subdir(), err)
		}
	}
	return &Store{root: root}, nil
}

// Root returns the directory the store writes under.
func (s *Store) Root() string {
	return s.root
}

// Save writes one uploaded file under a generated unique name and returns its
// attachment descriptor. The original client-side name survives only in the
// descriptor, never on disk.
func (s *Store) Save(typ enums.AttachmentType, originalName string, src io.Reader) (types.FileAttachment, error) {
	ext := sanitizeExt(path.Ext(originalName))
	storedName := fmt.Sprintf("files-%s%s", uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(s.root, typ.Subdir(), storedName))
	if err != nil {
		return types.FileAttachment{}, fmt.Errorf("creating attachment file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return types.FileAttachment{}, fmt.Errorf("writing attachment bytes: %w", err)
	}

	return types.FileAttachment{
		Name: originalName,
		URL:  URLPrefix + "/" + typ.Subdir() + "/" + storedName,
		Type: typ,
	}, nil
}

// Remove deletes the file referenced by a stored attachment URL. A URL whose
// file is already gone is not an error. URLs pointing outside the store are
// rejected.
func (s *Store) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, URLPrefix+"/")
	if !ok {
		return fmt.Errorf("attachment url %q is not under %s", url, URLPrefix)
	}
	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("attachment url %q escapes the upload root", url)
	}
	err := os.Remove(filepath.Join(s.root, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeExt(ext string) string {
	if ext == "" || ext == "." {
		return ""
	}
	var b strings.Builder
	for _, r := range ext {
		if r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
