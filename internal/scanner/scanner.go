// Package scanner turns a folder of image files into packer entries. It
// lists the folder, stats each file and decodes image headers concurrently.
package scanner

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	// Registered decoders for the allowed extensions.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/piwi3910/SpritePack/internal/model"
)

// AllowedExtensions lists the lowercase file extensions the scanner accepts.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// IsImageFile reports whether path has an allowed extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DisplayName returns the file name without its extension.
func DisplayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Options controls a scan.
type Options struct {
	// ExifTime uses the EXIF capture time of JPEG files as ModifiedAt.
	ExifTime bool
	// Workers bounds concurrent header decodes; 0 means runtime.NumCPU().
	Workers int
	// Progress receives one update per processed file when non-nil.
	// The scanner never closes it.
	Progress chan<- Progress
	Logger   *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// Progress reports one processed file.
type Progress struct {
	Path  string
	Total int
	Err   error
}

// Skipped describes a file that matched the allow-list but could not be used.
type Skipped struct {
	Path string
	Err  error
}

// Report is the outcome of a scan.
type Report struct {
	Entries []model.ImageEntry
	Skipped []Skipped
}

// ScanFolder lists dir (non-recursively) and returns one entry per decodable
// image, ordered by file name. Files that fail to stat or decode are skipped
// and listed in the report.
func ScanFolder(ctx context.Context, dir string, opts Options) (Report, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	var paths []string
	for _, item := range items {
		if item.IsDir() || !IsImageFile(item.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, item.Name()))
	}
	sort.Strings(paths)

	opts.logger().Debug("scanning folder", "dir", dir, "images", len(paths))
	return LoadEntries(ctx, paths, opts)
}

// LoadEntries builds entries for an explicit list of files, keeping the
// given order. Decoding runs concurrently; each result is stored by index
// so completion order never affects the returned order.
func LoadEntries(ctx context.Context, paths []string, opts Options) (Report, error) {
	type slot struct {
		entry model.ImageEntry
		err   error
	}
	slots := make([]slot, len(paths))
	logger := opts.logger()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := loadEntry(path, opts)
			slots[i] = slot{entry: e, err: err}
			if opts.Progress != nil {
				select {
				case opts.Progress <- Progress{Path: path, Total: len(paths), Err: err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Entries: make([]model.ImageEntry, 0, len(paths))}
	for i, s := range slots {
		if s.err != nil {
			logger.Warn("skipping image", "path", paths[i], "err", s.err)
			report.Skipped = append(report.Skipped, Skipped{Path: paths[i], Err: s.err})
			continue
		}
		report.Entries = append(report.Entries, s.entry)
	}
	return report, nil
}

func loadEntry(path string, opts Options) (model.ImageEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.ImageEntry{}, err
	}
	if info.IsDir() {
		return model.ImageEntry{}, fmt.Errorf("%s is a directory", path)
	}

	w, h, err := DecodeSize(path)
	if err != nil {
		return model.ImageEntry{}, err
	}

	entry := model.ImageEntry{
		ID:         path,
		Name:       DisplayName(path),
		Width:      w,
		Height:     h,
		ByteSize:   info.Size(),
		ModifiedAt: info.ModTime().UTC(),
	}

	if opts.ExifTime && isJPEG(path) {
		if taken, ok := CaptureTime(path); ok {
			entry.ModifiedAt = taken
		}
	}
	return entry, nil
}

// DecodeSize reads only the image header of path.
func DecodeSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode header of %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// ReadImage fully decodes path.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func isJPEG(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jpg" || ext == ".jpeg"
}
