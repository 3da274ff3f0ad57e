package compose

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"shortreel/internal/media/ffprobe"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/textutil"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

const probeConcurrency = 4

type orderedImage struct {
	path    string
	name    string
	order   int
	ordered bool
}

// DiscoverImages lists the scene images in dir. Files named by an integer
// (0.png, 1.png, ...) sort by that integer; any others follow in natural
// filename order.
func DiscoverImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, project.StageCompose, "discover images", "no image directory at "+dir, nil)
		}
		return nil, services.Wrap(services.ErrTransient, project.StageCompose, "discover images", dir, err)
	}

	var images []orderedImage
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if !slices.Contains(imageExtensions, ext) {
			continue
		}
		img := orderedImage{path: filepath.Join(dir, name), name: name}
		if n, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name))); err == nil {
			img.order, img.ordered = n, true
		}
		images = append(images, img)
	}

	slices.SortStableFunc(images, func(a, b orderedImage) int {
		switch {
		case a.ordered && b.ordered:
			if a.order != b.order {
				return a.order - b.order
			}
			return strings.Compare(a.name, b.name)
		case a.ordered:
			return -1
		case b.ordered:
			return 1
		case textutil.NaturalLess(a.name, b.name):
			return -1
		case textutil.NaturalLess(b.name, a.name):
			return 1
		default:
			return 0
		}
	})

	paths := make([]string, len(images))
	for i, img := range images {
		paths[i] = img.path
	}
	return paths, nil
}

// ProbeImages reads every image's dimensions concurrently. Results keep the
// order of paths.
func ProbeImages(ctx context.Context, prober ffprobe.Prober, paths []string) ([]Source, error) {
	sources := make([]Source, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			result, err := prober.Inspect(gctx, path)
			if err != nil {
				return services.Wrap(services.ErrExternalTool, project.StageCompose, "probe image", path, err)
			}
			w, h, ok := result.Dimensions()
			if !ok {
				return services.Wrap(services.ErrValidation, project.StageCompose, "probe image",
					fmt.Sprintf("%s has no video stream", filepath.Base(path)), nil)
			}
			sources[i] = Source{Path: path, Width: w, Height: h}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}
