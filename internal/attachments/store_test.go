package attachments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparetrackhq/sparetrack-backend/pkg/enums"
)

func TestNewStoreCreatesSubdirectories(t *testing.T) {
	root := t.TempDir()

	store, err := NewStore(root)
	require.NoError(t, err)
	require.Equal(t, root, store.Root())

	for _, subdir := range []string{"photos", "drawings"} {
		info, err := os.Stat(filepath.Join(root, subdir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestNewStoreRequiresRoot(t *testing.T) {
	_, err := NewStore("")
	require.Error(t, err)
}

func TestSaveWritesBytesUnderGeneratedName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	att, err := store.Save(enums.AttachmentTypePhoto, "motor housing.JPG", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	require.Equal(t, "motor housing.JPG", att.Name)
	require.Equal(t, enums.AttachmentTypePhoto, att.Type)
	require.True(t, strings.HasPrefix(att.URL, "/uploads/photos/files-"))
	require.True(t, strings.HasSuffix(att.URL, ".JPG"))

	storedName := filepath.Base(att.URL)
	data, err := os.ReadFile(filepath.Join(store.Root(), "photos", storedName))
	require.NoError(t, err)
	require.Equal(t, "jpeg bytes", string(data))
}

func TestSaveStripsHostileExtensionCharacters(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	att, err := store.Save(enums.AttachmentTypeDrawing, "layout.p/../df", strings.NewReader("x"))
	require.NoError(t, err)
	require.NotContains(t, att.URL, "..")
	require.NotContains(t, filepath.Base(att.URL), "/")
}

func TestRemoveDeletesStoredFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	att, err := store.Save(enums.AttachmentTypePhoto, "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(att.URL))
	_, statErr := os.Stat(filepath.Join(store.Root(), "photos", filepath.Base(att.URL)))
	require.True(t, os.IsNotExist(statErr))

	// deleting again is a no-op
	require.NoError(t, store.Remove(att.URL))
}

func TestRemoveRejectsURLsOutsideStore(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, url := range []string{
		"/etc/passwd",
		"/uploads/../secrets.txt",
		"/uploads/photos/../../escape.png",
	} {
		require.Error(t, store.Remove(url), "url %s", url)
	}
}
