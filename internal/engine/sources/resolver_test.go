package sources_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fsadapter "go.trai.ch/cargoc/internal/adapters/fs"
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports/mocks"
	"go.trai.ch/cargoc/internal/engine/sources"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0o600))
	}
}

func TestResolver_Resolve_Files(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.c", "b.cpp", "a.h")

	set, err := sources.NewResolver(fsadapter.New()).Resolve(root, []string{"b.cpp", "a.h", "a.c", "a.c"}, false)
	require.NoError(t, err)

	// Discovery order is preserved, headers are skipped and duplicates are kept.
	assert.Equal(t, []string{"b.cpp", "a.c", "a.c"}, set.Paths())
	assert.Equal(t, []string{"b.o", "a.o", "a.o"}, set.Objects())
}

func TestResolver_Resolve_DirectoryRecursion(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"src/main.c",
		"src/util.h",
		"src/net/socket.c",
		"src/net/deep/frame.cc",
		"src/.hidden/ignored.c",
		"src/.clang-format",
	)

	tests := []struct {
		name      string
		recursive bool
		expected  []string
	}{
		{
			name:      "recursive collection includes nested files",
			recursive: true,
			expected: []string{
				filepath.Join("src", "main.c"),
				filepath.Join("src", "net", "deep", "frame.cc"),
				filepath.Join("src", "net", "socket.c"),
			},
		},
		{
			name:      "flat collection includes only top-level files",
			recursive: false,
			expected:  []string{filepath.Join("src", "main.c")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := sources.NewResolver(fsadapter.New()).Resolve(root, []string{"src"}, tt.recursive)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, set.Paths())
		})
	}
}

func TestResolver_Resolve_MissingPath(t *testing.T) {
	root := t.TempDir()

	_, err := sources.NewResolver(fsadapter.New()).Resolve(root, []string{"missing.c"}, false)
	require.ErrorIs(t, err, domain.ErrSourceNotFound)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "missing.c", zErr.Metadata()["path"])
}

func TestResolver_Resolve_UnknownExtension(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		entries []string
		path    string
	}{
		{"explicit file", []string{"notes.txt"}, []string{"notes.txt"}, "notes.txt"},
		{"inside directory", []string{"src/main.c", "src/README.md"}, []string{"src"}, filepath.Join("src", "README.md")},
		{"no extension", []string{"Makefile"}, []string{"Makefile"}, "Makefile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files...)

			_, err := sources.NewResolver(fsadapter.New()).Resolve(root, tt.entries, false)
			require.ErrorIs(t, err, domain.ErrUnknownSourceExtension)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok)
			assert.Equal(t, tt.path, zErr.Metadata()["path"])
		})
	}
}

func TestResolver_Resolve_AbsoluteEntry(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeFiles(t, other, "shared.c")

	abs := filepath.Join(other, "shared.c")
	set, err := sources.NewResolver(fsadapter.New()).Resolve(root, []string{abs}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, set.Paths())
}

func TestResolver_Resolve_StatError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFS := mocks.NewMockFileSystem(ctrl)
	mockFS.EXPECT().Stat(filepath.Join("/project", "a.c")).Return(nil, errors.New("permission denied"))

	_, err := sources.NewResolver(mockFS).Resolve("/project", []string{"a.c"}, false)
	require.Error(t, err)
	assert.False(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "permission denied")
}

func TestResolver_Resolve_ReadDirError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFS := mocks.NewMockFileSystem(ctrl)

	root := t.TempDir()
	writeFiles(t, root, "src/main.c")
	info, err := os.Stat(filepath.Join(root, "src"))
	require.NoError(t, err)

	mockFS.EXPECT().Stat(filepath.Join(root, "src")).Return(info, nil)
	mockFS.EXPECT().ReadDir(filepath.Join(root, "src")).Return(nil, errors.New("io error"))

	_, err = sources.NewResolver(mockFS).Resolve(root, []string{"src"}, false)
	require.ErrorIs(t, err, domain.ErrSourceReadFailed)
}
