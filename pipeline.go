package atlas

import (
	"fmt"
	"image"
	"sync"
)

// pool is a fixed set of goroutines shared by every stage of a pack.
type pool struct {
	tasks   chan func()
	workers sync.WaitGroup
}

func newPool(n int) *pool {
	p := &pool{
		tasks: make(chan func()),
	}
	p.workers.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.workers.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// run calls task once for each index in [0, n) across the pool and returns
// once every call has completed.
func (p *pool) run(n int, task func(int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		p.tasks <- func() {
			defer wg.Done()
			task(i)
		}
	}
	wg.Wait()
}

func (p *pool) close() {
	close(p.tasks)
	p.workers.Wait()
}

// load decodes one input and, unless it duplicates an earlier one, turns it
// into a sprite in t. Failures only affect this input and are logged.
func (p *Packer) load(t *spriteTable, index int, file string) {
	m, err := p.decoder.Decode(file)
	if err != nil {
		p.logger.Warn("failed to load image", "file", file, "err", err)
		return
	}
	if m.Rect.Dx() < minSide || m.Rect.Dy() < minSide {
		p.logger.Warn("ignoring tiny image", "file", file, "width", m.Rect.Dx(), "height", m.Rect.Dy())
		return
	}
	m = normalize(m)

	var sum *Hash
	if p.config.Dedup {
		h := contentHash(m)
		sum = &h
	}

	s, ok := t.claim(index, file, sum)
	if !ok {
		p.logger.Debug("duplicate image", "file", file, "hash", fmt.Sprintf("%x", sum[:8]))
		return
	}

	s.RawWidth, s.RawHeight = m.Rect.Dx(), m.Rect.Dy()
	s.Bounds = findBounds(m, p.config.Trim)
	s.img = m

	if area, limit := s.Bounds.Dx()*s.Bounds.Dy(), p.config.MaxSide*p.config.MaxSide; area > limit {
		p.logger.Warn("ignoring large image", "file", file, "width", s.Bounds.Dx(), "height", s.Bounds.Dy())
		s.skip = true
		s.img = nil
		return
	}

	if p.config.Rotate {
		s.rotate()
	}

	p.logger.Debug("loaded image", "file", file, "bounds", s.Bounds, "rotated", s.Rotated)
}

// Pack decodes each of the named inputs and packs the resulting sprites into
// a single canvas. Inputs that cannot be used are logged and skipped, only
// running out of canvas is an error.
func (p *Packer) Pack(files []string) (*Atlas, error) {
	workers := newPool(p.config.workers())
	defer workers.close()

	t := newSpriteTable()
	workers.run(len(files), func(i int) {
		p.load(t, i, files[i])
	})

	sprites := t.finalize()
	if len(sprites) == 0 {
		return nil, ErrNoSprites
	}

	if p.config.Split {
		p.logger.Warn("split mode is not implemented, packing sprites whole")
	}

	w, h := canvasSize(collectStats(sprites), p.config.Split)
	w, h, err := p.layout(sprites, w, h)
	if err != nil {
		return nil, err
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	workers.run(len(sprites), func(i int) {
		sprites[i].composite(canvas)
		sprites[i].img = nil
	})

	p.logger.Info("pack success", "width", w, "height", h, "sprites", len(sprites))

	return &Atlas{
		Canvas:  canvas,
		Sprites: sprites,
	}, nil
}
