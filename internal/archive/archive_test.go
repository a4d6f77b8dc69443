package archive

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func entryNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func TestPack_EntriesRelativeToSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "hello")
	writeTree(t, src, map[string]string{
		"main.py":        "print('hi')",
		"lib/helpers.py": "X = 1",
	})
	dst := filepath.Join(t.TempDir(), "hello.pyhx")

	require.NoError(t, Pack(src, dst))

	assert.Equal(t, []string{"lib/", "lib/helpers.py", "main.py"}, entryNames(t, dst))
}

func TestPack_SkipsOwnOutput(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"main.py": "x"})
	dst := filepath.Join(src, "self.pyhx")

	require.NoError(t, Pack(src, dst))
	assert.Equal(t, []string{"main.py"}, entryNames(t, dst))
}

func TestPack_FollowsFileSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"real.py": "print('linked')"})

	src := t.TempDir()
	writeTree(t, src, map[string]string{"data.txt": "x"})
	require.NoError(t, os.Symlink(filepath.Join(outside, "real.py"), filepath.Join(src, "main.py")))
	require.NoError(t, os.Symlink(outside, filepath.Join(src, "dirlink")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "gone.py"), filepath.Join(src, "dangling.py")))

	dst := filepath.Join(t.TempDir(), "linked.pyhx")
	require.NoError(t, Pack(src, dst))
	assert.Equal(t, []string{"data.txt", "main.py"}, entryNames(t, dst))

	dest := t.TempDir()
	require.NoError(t, Unpack(dst, dest))
	info, err := os.Lstat(filepath.Join(dest, "main.py"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	data, err := os.ReadFile(filepath.Join(dest, "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('linked')", string(data))
}

func TestPack_MissingSourceRemovesPartial(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "nothing.pyhx")

	err := Pack(filepath.Join(t.TempDir(), "absent"), dst)
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"main.py":           "print('hi')",
		"data/nested/a.txt": "alpha",
	})
	dst := filepath.Join(t.TempDir(), "pkg.pyhx")
	require.NoError(t, Pack(src, dst))

	out := t.TempDir()
	require.NoError(t, Unpack(dst, out))

	b, err := os.ReadFile(filepath.Join(out, "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", string(b))

	b, err = os.ReadFile(filepath.Join(out, "data", "nested", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(b))
}

func TestUnpack_RejectsZipSlip(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "evil.pyhx")
	f, err := os.Create(dst)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../escaped.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("boom"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	base := t.TempDir()
	out := filepath.Join(base, "out")
	require.NoError(t, os.Mkdir(out, 0o755))

	err = Unpack(dst, out)
	require.ErrorIs(t, err, ErrUnsafePath)

	_, statErr := os.Stat(filepath.Join(base, "escaped.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnpack_NotAnArchive(t *testing.T) {
	src := filepath.Join(t.TempDir(), "junk.pyhx")
	require.NoError(t, os.WriteFile(src, []byte("not a zip"), 0o644))

	err := Unpack(src, t.TempDir())
	require.Error(t, err)
}

func TestSafeJoin(t *testing.T) {
	root := t.TempDir()

	p, err := safeJoin(root, "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b.txt"), p)

	for _, bad := range []string{"../x", "a/../../x", "/etc/passwd"} {
		_, err := safeJoin(root, bad)
		assert.ErrorIs(t, err, ErrUnsafePath, bad)
	}
}
