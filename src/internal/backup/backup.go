// Package backup creates timestamped snapshots of the local content tree
// before a pull can overwrite it. Snapshots are best-effort by contract:
// callers downgrade failures to warnings and proceed.
package backup

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/blake3"
	"golang.org/x/sync/semaphore"
)

// ManifestName is the checksum listing written into each snapshot directory.
const ManifestName = ".manifest"

const snapshotTimeFormat = "2006-01-02_15-04-05"

// Creator copies directory trees into uniquely named snapshot directories
// under a local backups root.
type Creator struct {
	root           string
	keep           int
	maxConcurrency int64
	now            func() time.Time
}

// NewCreator creates a snapshot creator rooted at root. keep bounds how many
// snapshots per label survive a Prune; zero or negative keeps everything.
func NewCreator(root string, keep int) *Creator {
	return &Creator{
		root:           root,
		keep:           keep,
		maxConcurrency: int64(runtime.GOMAXPROCS(0) * 2),
		now:            time.Now,
	}
}

// Create recursively copies sourceDir into a new timestamped snapshot
// directory named after the current time and label, and writes a manifest of
// blake3 checksums alongside the copied files. Returns the snapshot path, or
// an empty path when sourceDir does not exist (nothing to back up). The copy
// is not verified against the source beyond the checksums recorded while
// copying.
func (c *Creator) Create(ctx context.Context, sourceDir, label string) (string, error) {
	info, err := os.Stat(sourceDir)
	if os.IsNotExist(err) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", sourceDir, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", sourceDir)
	}

	snapshot := filepath.Join(c.root, c.now().Format(snapshotTimeFormat)+"_"+label)
	if err := os.MkdirAll(snapshot, 0o750); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory %s: %w", snapshot, err)
	}

	manifest, err := c.copyTree(ctx, sourceDir, snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to copy %s into %s: %w", sourceDir, snapshot, err)
	}

	if err := writeManifest(filepath.Join(snapshot, ManifestName), manifest); err != nil {
		return "", fmt.Errorf("failed to write snapshot manifest: %w", err)
	}

	return snapshot, nil
}

type manifestEntry struct {
	path     string
	checksum string
}

// copyTree walks sourceDir, recreating directories synchronously and copying
// regular files with bounded concurrency.
func (c *Creator) copyTree(ctx context.Context, sourceDir, destDir string) ([]manifestEntry, error) {
	sem := semaphore.NewWeighted(c.maxConcurrency)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		entries  []manifestEntry
		firstErr error
	)

	recordErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()

		if firstErr == nil {
			firstErr = err
		}
	}

	walkErr := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		if relPath == "." {
			return nil
		}

		destPath := filepath.Join(destDir, relPath)

		if d.IsDir() {
			return os.MkdirAll(destPath, 0o750)
		}

		if !d.Type().IsRegular() {
			// Sockets, fifos and symlinks are not part of a content tree.
			return nil
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}

		wg.Add(1)

		go func() {
			defer func() {
				sem.Release(1)
				wg.Done()
			}()

			checksum, err := copyFile(path, destPath)
			if err != nil {
				recordErr(err)

				return
			}

			mu.Lock()
			entries = append(entries, manifestEntry{path: filepath.ToSlash(relPath), checksum: checksum})
			mu.Unlock()
		}()

		return nil
	})

	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].path < entries[j].path
	})

	return entries, nil
}

// copyFile copies a regular file and returns the blake3 checksum of the bytes
// written.
func copyFile(src, dst string) (string, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("failed to stat source file %s: %w", src, err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open source file %s: %w", src, err)
	}

	defer func() {
		if err := srcFile.Close(); err != nil {
			_ = err // ignore close error
		}
	}()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return "", fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	hasher := blake3.New()

	if _, err := io.Copy(io.MultiWriter(dstFile, hasher), srcFile); err != nil {
		if closeErr := dstFile.Close(); closeErr != nil {
			_ = closeErr
		}

		return "", fmt.Errorf("failed to copy %s: %w", src, err)
	}

	if err := dstFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close destination file %s: %w", dst, err)
	}

	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return "", fmt.Errorf("failed to set file times on %s: %w", dst, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func writeManifest(path string, entries []manifestEntry) error {
	var sb strings.Builder

	for _, entry := range entries {
		sb.WriteString(entry.checksum)
		sb.WriteString("  ")
		sb.WriteString(entry.path)
		sb.WriteString("\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0o640)
}

// Prune removes the oldest snapshots for label, keeping the newest ones up to
// the retention limit. Directories that do not parse as snapshots are left
// alone.
func (c *Creator) Prune(label string) error {
	if c.keep <= 0 {
		return nil
	}

	dirEntries, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("failed to read backups root %s: %w", c.root, err)
	}

	type snapshotInfo struct {
		name string
		time time.Time
	}

	var snapshots []snapshotInfo

	suffix := "_" + label

	for _, entry := range dirEntries {
		name := entry.Name()
		if !entry.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}

		stamp, err := time.Parse(snapshotTimeFormat, strings.TrimSuffix(name, suffix))
		if err != nil {
			continue
		}

		snapshots = append(snapshots, snapshotInfo{name: name, time: stamp})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].time.After(snapshots[j].time)
	})

	for _, snapshot := range snapshots[min(c.keep, len(snapshots)):] {
		if err := os.RemoveAll(filepath.Join(c.root, snapshot.name)); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snapshot.name, err)
		}
	}

	return nil
}
