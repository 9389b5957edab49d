// Package iofetch downloads the NCBI taxdmp archive, verifies it against
// its published MD5 and extracts the dump files into the local data
// directory. It is the only network-facing part of the repository; the
// query engine itself never blocks on I/O after a snapshot is published.
package iofetch

import (
	"archive/zip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnuuid"
	"github.com/gnames/ncbitax/pkg/config"
)

// Result describes one fetched taxonomy release.
type Result struct {
	// Dir is the directory with the extracted dump files.
	Dir string
	// MD5 is the verified checksum of the archive.
	MD5 string
	// ReleaseID is the UUID v5 derived from the checksum; two downloads
	// of the same release always share it.
	ReleaseID string
	// Refreshed is false when the local copy was already current and
	// nothing was downloaded.
	Refreshed bool
}

// Fetch makes sure taxdmpDir holds a verified taxonomy release and
// returns its identity. With force true the archive is redownloaded
// unconditionally; otherwise a complete local copy is kept unless
// CheckForUpdates finds a newer remote MD5.
func Fetch(
	ctx context.Context,
	cfg *config.Config,
	taxdmpDir string,
	force bool,
) (*Result, error) {
	md5Path := filepath.Join(taxdmpDir, config.TaxdmpMD5)

	download := force || !haveDumpFiles(taxdmpDir)

	if !download && cfg.Fetch.CheckForUpdates {
		localMD5, err := md5FromFile(md5Path)
		if err != nil {
			download = true
		} else {
			remoteMD5, err := remoteMD5(ctx, cfg.Fetch.BaseURL)
			if err != nil {
				return nil, err
			}
			slog.Info("Checked remote archive",
				"local_md5", localMD5, "remote_md5", remoteMD5)
			download = localMD5 != remoteMD5
		}
	}

	if !download {
		sum, err := md5FromFile(md5Path)
		if err != nil {
			return nil, ChecksumError(md5Path, err)
		}
		return &Result{
			Dir:       taxdmpDir,
			MD5:       sum,
			ReleaseID: gnuuid.New(sum).String(),
		}, nil
	}

	sum, err := downloadAndExtract(ctx, cfg, taxdmpDir)
	if err != nil {
		return nil, err
	}
	return &Result{
		Dir:       taxdmpDir,
		MD5:       sum,
		ReleaseID: gnuuid.New(sum).String(),
		Refreshed: true,
	}, nil
}

// haveDumpFiles reports whether every file the dump reader needs is
// present.
func haveDumpFiles(dir string) bool {
	files := []string{
		config.FileNodes, config.FileNames, config.FileMerged,
		config.FileDelNodes, config.FileGenCode, config.FileGCPrt,
		config.TaxdmpMD5,
	}
	for _, name := range files {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

func downloadAndExtract(
	ctx context.Context,
	cfg *config.Config,
	taxdmpDir string,
) (string, error) {
	if err := backupDir(taxdmpDir); err != nil {
		return "", err
	}
	if err := os.MkdirAll(taxdmpDir, 0755); err != nil {
		return "", BackupError(taxdmpDir, err)
	}

	zipURL, err := url.JoinPath(cfg.Fetch.BaseURL, config.TaxdmpZip)
	if err != nil {
		return "", DownloadError(cfg.Fetch.BaseURL, err)
	}
	zipPath := filepath.Join(taxdmpDir, config.TaxdmpZip)
	md5Path := filepath.Join(taxdmpDir, config.TaxdmpMD5)

	retries := cfg.Fetch.Retries
	if retries < 1 {
		retries = 1
	}

	var sum string
	for attempt := 1; ; attempt++ {
		if err = downloadFile(ctx, zipURL, zipPath, true); err != nil {
			return "", err
		}
		wantSum, err := remoteMD5(ctx, cfg.Fetch.BaseURL)
		if err != nil {
			return "", err
		}
		sum, err = fileMD5(zipPath)
		if err != nil {
			return "", ChecksumError(zipPath, err)
		}
		if sum == wantSum {
			break
		}
		slog.Warn("Archive checksum mismatch",
			"want", wantSum, "got", sum, "attempt", attempt)
		if attempt >= retries {
			return "", ChecksumError(zipPath,
				fmt.Errorf("md5 %s does not match %s after %d attempts",
					sum, wantSum, attempt))
		}
	}

	if err = os.WriteFile(
		md5Path, []byte(sum+"  "+config.TaxdmpZip+"\n"), 0644,
	); err != nil {
		return "", ChecksumError(md5Path, err)
	}

	if err = extractZip(zipPath, taxdmpDir); err != nil {
		return "", err
	}
	// the extracted files supersede the archive
	if err = os.Remove(zipPath); err != nil {
		return "", ExtractError(zipPath, err)
	}

	slog.Info("Fetched taxonomy release", "md5", sum, "dir", taxdmpDir)
	return sum, nil
}

// backupDir moves an existing taxdmp directory aside so a failed
// download cannot destroy the last good release.
func backupDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	bak := dir + ".bak"
	if err := os.RemoveAll(bak); err != nil {
		return BackupError(bak, err)
	}
	if err := os.Rename(dir, bak); err != nil {
		return BackupError(dir, err)
	}
	slog.Info("Backed up previous taxonomy release", "dir", bak)
	return nil
}

func downloadFile(
	ctx context.Context, srcURL, dst string, progress bool,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return DownloadError(srcURL, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return DownloadError(srcURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return DownloadError(srcURL,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	f, err := os.Create(dst)
	if err != nil {
		return DownloadError(srcURL, err)
	}
	defer f.Close()

	var src io.Reader = resp.Body
	if progress && resp.ContentLength > 0 {
		bar := pb.Full.Start64(resp.ContentLength)
		bar.Set(pb.Bytes, true)
		bar.Set(pb.CleanOnFinish, true)
		src = bar.NewProxyReader(resp.Body)
		defer bar.Finish()
	}

	n, err := io.Copy(f, src)
	if err != nil {
		return DownloadError(srcURL, err)
	}
	slog.Info("Downloaded file",
		"url", srcURL, "size", humanize.Bytes(uint64(n)))
	return nil
}

// remoteMD5 fetches and parses the archive's MD5 companion file.
func remoteMD5(ctx context.Context, baseURL string) (string, error) {
	md5URL, err := url.JoinPath(baseURL, config.TaxdmpMD5)
	if err != nil {
		return "", DownloadError(baseURL, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, md5URL, nil)
	if err != nil {
		return "", DownloadError(md5URL, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", DownloadError(md5URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", DownloadError(md5URL,
			fmt.Errorf("unexpected status %s", resp.Status))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", DownloadError(md5URL, err)
	}
	return parseMD5(string(body))
}

// LocalReleaseID derives the release identity of an already extracted
// dump from its stored checksum file.
func LocalReleaseID(taxdmpDir string) (string, error) {
	md5Path := filepath.Join(taxdmpDir, config.TaxdmpMD5)
	sum, err := md5FromFile(md5Path)
	if err != nil {
		return "", ChecksumError(md5Path, err)
	}
	return gnuuid.New(sum).String(), nil
}

// HaveDumpFiles reports whether dir holds a complete extracted release.
func HaveDumpFiles(dir string) bool {
	return haveDumpFiles(dir)
}

func md5FromFile(path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return parseMD5(string(body))
}

// parseMD5 extracts the checksum from "md5sum" output: the hash is the
// first whitespace-separated field.
func parseMD5(body string) (string, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 || len(fields[0]) != 32 {
		return "", fmt.Errorf("malformed md5 file content %q", body)
	}
	return strings.ToLower(fields[0]), nil
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func extractZip(zipPath, dstDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return ExtractError(zipPath, err)
	}
	defer r.Close()

	for _, zf := range r.File {
		// taxdmp.zip is flat; skip anything that tries to escape
		name := filepath.Base(zf.Name)
		if name != zf.Name || zf.FileInfo().IsDir() {
			continue
		}
		if err = extractFile(zf, filepath.Join(dstDir, name)); err != nil {
			return ExtractError(zf.Name, err)
		}
	}
	return nil
}

func extractFile(zf *zip.File, dst string) error {
	src, err := zf.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, src)
	return err
}
