package cipher

import (
	"fmt"
	"sort"

	"github.com/puzpuzpuz/xsync/v4"
)

// Global codec registry, filled by init functions in the scheme files.
var codecRegistry = xsync.NewMap[Scheme, Codec]()

// RegisterCodec adds a codec to the global registry.
func RegisterCodec(c Codec) error {
	if c == nil {
		return fmt.Errorf("cannot register nil codec")
	}

	scheme := c.Scheme()
	if scheme == "" {
		return fmt.Errorf("codec scheme cannot be empty")
	}

	if _, loaded := codecRegistry.LoadOrStore(scheme, c); loaded {
		return fmt.Errorf("codec %s is already registered", scheme)
	}
	return nil
}

func mustRegister(c Codec) {
	if err := RegisterCodec(c); err != nil {
		panic(err)
	}
}

// GetCodec retrieves a codec by scheme.
func GetCodec(scheme Scheme) (Codec, bool) {
	return codecRegistry.Load(scheme)
}

// ListCodecs returns every registered codec in the display order of
// Schemes, followed by any extra codecs sorted by identifier.
func ListCodecs() []Codec {
	order := make(map[Scheme]int, len(Schemes()))
	for i, s := range Schemes() {
		order[s] = i
	}

	codecs := make([]Codec, 0, codecRegistry.Size())
	codecRegistry.Range(func(_ Scheme, c Codec) bool {
		codecs = append(codecs, c)
		return true
	})

	sort.Slice(codecs, func(i, j int) bool {
		oi, iKnown := order[codecs[i].Scheme()]
		oj, jKnown := order[codecs[j].Scheme()]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return codecs[i].Scheme() < codecs[j].Scheme()
		}
	})
	return codecs
}

// UnregisterCodec removes a codec from the registry (mainly for testing).
func UnregisterCodec(scheme Scheme) {
	codecRegistry.Delete(scheme)
}
