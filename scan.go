package atlas

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var extensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpe":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

func findFiles(ctx context.Context, base string, recursive bool) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if info.Mode().IsDir() {
				if file != base && !recursive {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := extensions[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan returns the sorted list of image files found in dir, descending into
// subdirectories if recursive is set.
func Scan(dir string, recursive bool) ([]string, error) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	files, errc := findFiles(ctx, dir, recursive)

	var list []string
	collected := make(chan error, 1)
	go func() {
		defer close(collected)
		for file := range files {
			list = append(list, file)
		}
	}()

	if err := waitForPipeline(errc, collected); err != nil {
		return nil, err
	}

	sort.Strings(list)

	return list, nil
}
