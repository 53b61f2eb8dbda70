package manifest

import (
	"os"
)

// WriteFile writes m to file in format f, compressed with c. SQLite
// manifests are never compressed.
func WriteFile(file string, m *Manifest, f Format, c Compression) (err error) {
	if f == SQLite {
		return WriteDB(file, m)
	}

	fh, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()

	w, err := NewWriter(fh, c)
	if err != nil {
		return err
	}

	if err := Encode(w, m, f); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// ReadFile reads a streamed manifest from file.
func ReadFile(file string, f Format, c Compression) (*Manifest, error) {
	fh, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	r, err := NewReader(fh, c)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Decode(r, f)
}
