package beamfile

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/internal/compact"
)

// IFF container identifiers.
const (
	FormMagic = "FOR1"
	FormType  = "BEAM"
)

// Well-known chunk identifiers.
const (
	ChunkCode       = "Code"
	ChunkAtomsUTF8  = "AtU8"
	ChunkAtomsLatin = "Atom"
	ChunkImports    = "ImpT"
	ChunkExports    = "ExpT"
	ChunkLocals     = "LocT"
	ChunkStrings    = "StrT"
	ChunkLiterals   = "LitT"
	ChunkLines      = "Line"
)

// Chunk is one IFF chunk. Data aliases the parsed input.
type Chunk struct {
	ID   string
	Data []byte
}

// File is a parsed BEAM container.
type File struct {
	Chunks []Chunk
}

// Parse splits data into chunks. Chunk contents are not interpreted until
// requested.
func Parse(data []byte) (*File, error) {
	r := compact.NewReaderIn(errors.PhaseParse, data)

	magic, err := r.ReadBytes(4)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindTruncated, err, "form header")
	}
	if string(magic) != FormMagic {
		return nil, errors.InvalidData(errors.PhaseParse, []string{"header"},
			fmt.Sprintf("bad magic %q", magic))
	}
	size, err := r.ReadU32BE()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindTruncated, err, "form size")
	}
	if uint64(size) > uint64(r.Len()) {
		return nil, errors.Truncated(errors.PhaseParse, r.Position(), int(size), r.Len())
	}
	// bytes after the form are ignored, as the loader does
	r = compact.NewReaderIn(errors.PhaseParse, data[8:8+int(size)])

	form, err := r.ReadBytes(4)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindTruncated, err, "form type")
	}
	if string(form) != FormType {
		return nil, errors.InvalidData(errors.PhaseParse, []string{"header"},
			fmt.Sprintf("form type %q is not %s", form, FormType))
	}

	f := &File{}
	for r.Len() > 0 {
		id, err := r.ReadBytes(4)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindTruncated, err, "chunk header")
		}
		n, err := r.ReadU32BE()
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindTruncated, err, "chunk size")
		}
		body, err := r.ReadBytes(uint64(n))
		if err != nil {
			return nil, errors.WithPath(
				errors.Wrap(errors.PhaseParse, errors.KindTruncated, err, "chunk data"), string(id))
		}
		// chunks are padded to 4 bytes; the final pad may be missing
		if pad := uint64(padding(int(n))); pad > 0 && r.Len() > 0 {
			if _, err := r.ReadBytes(min(pad, uint64(r.Len()))); err != nil {
				return nil, err
			}
		}
		f.Chunks = append(f.Chunks, Chunk{ID: string(id), Data: body})
		Logger().Debug("chunk", zap.String("id", string(id)), zap.Uint32("size", n))
	}
	return f, nil
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Load(path, err)
	}
	return f, nil
}

// Chunk returns the first chunk with the given id.
func (f *File) Chunk(id string) (Chunk, bool) {
	for _, c := range f.Chunks {
		if c.ID == id {
			return c, true
		}
	}
	return Chunk{}, false
}

func (f *File) require(id string) ([]byte, error) {
	c, ok := f.Chunk(id)
	if !ok {
		return nil, errors.NotFound(errors.PhaseParse, "chunk", id)
	}
	return c.Data, nil
}

// Bytes serializes f as a FOR1 container.
func (f *File) Bytes() []byte {
	size := 4
	for _, c := range f.Chunks {
		size += 8 + len(c.Data) + padding(len(c.Data))
	}
	w := compact.NewWriter()
	w.WriteBytes([]byte(FormMagic))
	w.WriteU32BE(uint32(size))
	w.WriteBytes([]byte(FormType))
	for _, c := range f.Chunks {
		w.WriteBytes([]byte(c.ID))
		w.WriteU32BE(uint32(len(c.Data)))
		w.WriteBytes(c.Data)
		for i := padding(len(c.Data)); i > 0; i-- {
			w.Byte(0)
		}
	}
	return w.Bytes()
}

func padding(n int) int {
	return (4 - n%4) % 4
}
