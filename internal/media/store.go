package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store keeps generated binaries on local disk under two directories that
// are also mounted as static routes. Files are disposable: anything older
// than the retention window is removed by Sweep.
type Store struct {
	imagesDir string
	audioDir  string
	retention time.Duration
	log       zerolog.Logger
}

func NewStore(imagesDir, audioDir string, retention time.Duration, log zerolog.Logger) *Store {
	return &Store{
		imagesDir: imagesDir,
		audioDir:  audioDir,
		retention: retention,
		log:       log,
	}
}

func (s *Store) ImagesDir() string { return s.imagesDir }
func (s *Store) AudioDir() string  { return s.audioDir }

func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.imagesDir, s.audioDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

// SaveImage writes PNG bytes under a fresh name and returns the filename.
func (s *Store) SaveImage(data []byte) (string, error) {
	filename := fmt.Sprintf("generated-%s.png", uuid.NewString())
	if err := s.write(s.imagesDir, filename, data); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveAudio writes MP3 bytes under a fresh name and returns the filename.
func (s *Store) SaveAudio(data []byte) (string, error) {
	filename := fmt.Sprintf("%s.mp3", uuid.NewString())
	if err := s.write(s.audioDir, filename, data); err != nil {
		return "", err
	}
	return filename, nil
}

// ImageInfo describes one generated image still on disk.
type ImageInfo struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListImages returns the PNGs currently in the images directory, newest
// first. Creation time is the file's mtime; the sweep uses the same clock.
func (s *Store) ListImages() ([]ImageInfo, error) {
	entries, err := os.ReadDir(s.imagesDir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	images := make([]ImageInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, ImageInfo{
			Filename:  entry.Name(),
			URL:       "/images/" + entry.Name(),
			CreatedAt: info.ModTime().UTC(),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
	return images, nil
}

func (s *Store) write(dir, filename string, data []byte) error {
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Sweep deletes files whose modification time is older than the retention
// window and returns how many were removed. A file cannot be both in flight
// and past retention, so racing request handlers is harmless.
func (s *Store) Sweep() int {
	cutoff := time.Now().Add(-s.retention)
	removed := 0

	for _, dir := range []string{s.imagesDir, s.audioDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Warn().Err(err).Str("dir", dir).Msg("sweep read dir failed")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.log.Warn().Err(err).Str("file", path).Msg("sweep remove failed")
				continue
			}
			removed++
			s.log.Debug().Str("file", path).Msg("swept expired media file")
		}
	}
	return removed
}
