package layout

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks layout files stored zstd-compressed
const CompressedExt = ".zst"

// Open reads a layout file, decompressing it if the name ends in .zst
func Open(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedExt) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}
	return Parse(r)
}

// Save writes the layout to a file, compressing it if the name ends in .zst
func (l *Layout) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if !strings.HasSuffix(path, CompressedExt) {
		_, err = l.WriteTo(f)
		return err
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := l.WriteTo(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
