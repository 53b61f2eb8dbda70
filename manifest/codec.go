package manifest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// encMode produces identical bytes for identical manifests.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("manifest: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode writes m to w in format f. SQLite manifests can only be written to
// a file with WriteDB.
func Encode(w io.Writer, m *Manifest, f Format) error {
	switch f {
	case JSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "\t")
		return e.Encode(m)
	case YAML:
		e := yaml.NewEncoder(w)
		if err := e.Encode(m); err != nil {
			return err
		}
		return e.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(m)
	case CBOR:
		return encMode.NewEncoder(w).Encode(m)
	}
	return fmt.Errorf("%w \"%s\" for a stream", errUnknownFormat, f)
}

// Decode reads a manifest in format f from r.
func Decode(r io.Reader, f Format) (*Manifest, error) {
	m := new(Manifest)
	var err error
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(m)
	case YAML:
		err = yaml.NewDecoder(r).Decode(m)
	case TOML:
		_, err = toml.NewDecoder(r).Decode(m)
	case CBOR:
		err = cbor.NewDecoder(r).Decode(m)
	default:
		err = fmt.Errorf("%w \"%s\" for a stream", errUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
