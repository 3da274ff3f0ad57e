package music

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"shortreel/internal/project"
	"shortreel/internal/services"
)

// Pool lists the candidate tracks in dir whose extension is one of exts
// (case-insensitive), sorted by name. A missing directory is an empty pool.
func Pool(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrTransient, project.StageMusic, "list tracks", dir, err)
	}
	var tracks []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !slices.Contains(exts, strings.ToLower(filepath.Ext(name))) {
			continue
		}
		path := filepath.Join(dir, name)
		// Follow links so a symlinked library still counts; broken links are skipped.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		tracks = append(tracks, path)
	}
	slices.Sort(tracks)
	return tracks, nil
}

// Pick chooses one track uniformly at random.
func Pick(rng *rand.Rand, tracks []string) (string, error) {
	if len(tracks) == 0 {
		return "", services.Wrap(services.ErrValidation, project.StageMusic, "pick track", "no music tracks available", nil)
	}
	return tracks[rng.IntN(len(tracks))], nil
}

// NewRand returns a random source seeded with seed, or a randomly seeded one
// when seed is nil.
func NewRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}

// describePool names the pool in error messages.
func describePool(dir string, exts []string) string {
	return fmt.Sprintf("no %s tracks in %s", strings.Join(exts, "/"), dir)
}
