package iofetch

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/ncbitax/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dumpFiles = map[string]string{
	"nodes.dmp":    "1\t|\t1\t|\tno rank\t|\t\t|\t8\t|\t0\t|\t1\t|\t0\t|\t0\t|\t0\t|\t0\t|\t0\t|\t\t|\n",
	"names.dmp":    "1\t|\troot\t|\t\t|\tscientific name\t|\n",
	"merged.dmp":   "666\t|\t9606\t|\n",
	"delnodes.dmp": "999\t|\n",
	"gencode.dmp":  "1\t|\tSGC0\t|\tStandard\t|\t\t|\t\t|\n",
	"gc.prt":       "-- dummy table\n",
}

// buildArchive zips the fixture dump files and returns the archive with
// its md5 checksum.
func buildArchive(t *testing.T) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range dumpFiles {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	sum := md5.Sum(buf.Bytes())
	return buf.Bytes(), hex.EncodeToString(sum[:])
}

// taxdmpServer mimics the NCBI FTP directory over HTTP.
func taxdmpServer(t *testing.T, archive []byte, sum string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/taxdmp.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	})
	mux.HandleFunc("/taxdmp.zip.md5", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s  taxdmp.zip\n", sum)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptFetchBaseURL(baseURL)})
	return cfg
}

func TestFetch(t *testing.T) {
	archive, sum := buildArchive(t)
	srv := taxdmpServer(t, archive, sum)
	cfg := testConfig(srv.URL + "/")
	dir := filepath.Join(t.TempDir(), "taxdmp")
	ctx := context.Background()

	t.Run("downloads and extracts a release", func(t *testing.T) {
		res, err := Fetch(ctx, cfg, dir, false)
		require.NoError(t, err)

		assert.True(t, res.Refreshed)
		assert.Equal(t, sum, res.MD5)
		assert.NotEmpty(t, res.ReleaseID)
		assert.Equal(t, dir, res.Dir)

		for name, content := range dumpFiles {
			got, err := os.ReadFile(filepath.Join(dir, name))
			require.NoError(t, err, name)
			assert.Equal(t, content, string(got), name)
		}

		// the archive itself is removed after extraction
		_, err = os.Stat(filepath.Join(dir, "taxdmp.zip"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("keeps a complete local copy", func(t *testing.T) {
		res, err := Fetch(ctx, cfg, dir, false)
		require.NoError(t, err)
		assert.False(t, res.Refreshed)
		assert.Equal(t, sum, res.MD5)
	})

	t.Run("release id is stable across downloads", func(t *testing.T) {
		first, err := Fetch(ctx, cfg, dir, false)
		require.NoError(t, err)
		second, err := Fetch(ctx, cfg, dir, true)
		require.NoError(t, err)
		assert.True(t, second.Refreshed)
		assert.Equal(t, first.ReleaseID, second.ReleaseID)
	})

	t.Run("local release id from the checksum file", func(t *testing.T) {
		res, err := Fetch(ctx, cfg, dir, false)
		require.NoError(t, err)
		id, err := LocalReleaseID(dir)
		require.NoError(t, err)
		assert.Equal(t, res.ReleaseID, id)
	})
}

func TestFetchChecksumMismatch(t *testing.T) {
	archive, _ := buildArchive(t)
	// the served checksum never matches the archive
	srv := taxdmpServer(t, archive,
		"00000000000000000000000000000000")
	cfg := testConfig(srv.URL + "/")
	cfg.Update([]config.Option{config.OptFetchRetries(2)})
	dir := filepath.Join(t.TempDir(), "taxdmp")

	_, err := Fetch(context.Background(), cfg, dir, false)
	assert.Error(t, err)
}

func TestFetchCheckForUpdates(t *testing.T) {
	archive, sum := buildArchive(t)
	srv := taxdmpServer(t, archive, sum)
	cfg := testConfig(srv.URL + "/")
	cfg.Update([]config.Option{config.OptFetchCheckForUpdates(true)})
	dir := filepath.Join(t.TempDir(), "taxdmp")
	ctx := context.Background()

	res, err := Fetch(ctx, cfg, dir, false)
	require.NoError(t, err)
	require.True(t, res.Refreshed)

	// remote MD5 equals the local one, nothing to do
	res, err = Fetch(ctx, cfg, dir, false)
	require.NoError(t, err)
	assert.False(t, res.Refreshed)

	// a stale local checksum triggers a redownload
	md5Path := filepath.Join(dir, "taxdmp.zip.md5")
	require.NoError(t, os.WriteFile(md5Path,
		[]byte("11111111111111111111111111111111  taxdmp.zip\n"), 0644))
	res, err = Fetch(ctx, cfg, dir, false)
	require.NoError(t, err)
	assert.True(t, res.Refreshed)
	assert.Equal(t, sum, res.MD5)
}

func TestBackupDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "taxdmp")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t,
		os.WriteFile(filepath.Join(dir, "nodes.dmp"), []byte("old"), 0644))

	require.NoError(t, backupDir(dir))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
	got, err := os.ReadFile(filepath.Join(base, "taxdmp.bak", "nodes.dmp"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	// absent directory is fine
	require.NoError(t, backupDir(filepath.Join(base, "nope")))
}

func TestParseMD5(t *testing.T) {
	tests := []struct {
		msg     string
		body    string
		res     string
		withErr bool
	}{
		{
			msg:  "md5sum output",
			body: "7a3c9f0e6cbb0a2b8d3a5e4f6a7b8c9d  taxdmp.zip\n",
			res:  "7a3c9f0e6cbb0a2b8d3a5e4f6a7b8c9d",
		},
		{
			msg:  "bare hash",
			body: "7A3C9F0E6CBB0A2B8D3A5E4F6A7B8C9D",
			res:  "7a3c9f0e6cbb0a2b8d3a5e4f6a7b8c9d",
		},
		{msg: "empty body", body: "", withErr: true},
		{msg: "truncated hash", body: "7a3c9f", withErr: true},
	}

	for _, v := range tests {
		res, err := parseMD5(v.body)
		if v.withErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestHaveDumpFiles(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, haveDumpFiles(dir))

	files := []string{
		"nodes.dmp", "names.dmp", "merged.dmp", "delnodes.dmp",
		"gencode.dmp", "gc.prt", "taxdmp.zip.md5",
	}
	for _, name := range files {
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, name), []byte("x"), 0644))
	}
	assert.True(t, haveDumpFiles(dir))

	// one missing file breaks completeness
	require.NoError(t, os.Remove(filepath.Join(dir, "gc.prt")))
	assert.False(t, haveDumpFiles(dir))
}
