package atlas

import (
	"sort"
	"sync"
)

// spriteTable is the state shared by the decode workers. The mutex covers
// only slice and map bookkeeping, never decoding or pixel work.
type spriteTable struct {
	mu      sync.Mutex
	sprites []*Sprite
	hashes  map[Hash]*Sprite
}

func newSpriteTable() *spriteTable {
	return &spriteTable{
		hashes: make(map[Hash]*Sprite),
	}
}

// claim registers a new sprite for the named input. If sum is non-nil and
// matches a sprite already claimed, the name is added to that sprite instead
// and false is returned.
func (t *spriteTable) claim(index int, name string, sum *Hash) (*Sprite, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sum != nil {
		if s, ok := t.hashes[*sum]; ok {
			s.names = append(s.names, source{index, name})
			return s, false
		}
	}

	s := &Sprite{
		Name:  name,
		names: []source{{index, name}},
	}
	t.sprites = append(t.sprites, s)
	if sum != nil {
		t.hashes[*sum] = s
	}
	return s, true
}

// finalize returns the usable sprites ordered by the earliest input that
// produced each one. The earliest input also becomes the primary name. It
// must only be called once every worker has finished.
func (t *spriteTable) finalize() []*Sprite {
	sprites := make([]*Sprite, 0, len(t.sprites))
	for _, s := range t.sprites {
		if s.skip {
			continue
		}
		sort.Slice(s.names, func(i, j int) bool { return s.names[i].index < s.names[j].index })
		s.Name = s.names[0].name
		s.Aliases = nil
		for _, n := range s.names[1:] {
			s.Aliases = append(s.Aliases, n.name)
		}
		sprites = append(sprites, s)
	}
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].names[0].index < sprites[j].names[0].index })
	return sprites
}
