package chunkfile

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/chunkio/chunk"
	"github.com/joshuapare/chunkio/internal/mmfile"
	"github.com/joshuapare/chunkio/internal/writer"
)

// Save builds a chunk file in memory through fn and writes it to path
// atomically. Nothing is written when fn fails or leaves chunks open.
func Save(path string, fn func(w *chunk.Writer) error, opts *chunk.Options) error {
	ms := writer.NewMemStream()
	w := chunk.NewWriter(ms, opts)
	if err := fn(w); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	fw := &writer.FileWriter{Path: path}
	if err := fw.WriteFile(ms.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load maps the chunk file at path and hands a Reader positioned at its
// start to fn. The mapping is released when fn returns.
func Load(path string, fn func(r *chunk.Reader) error, opts *chunk.Options) error {
	data, release, err := MapFile(path)
	if err != nil {
		return err
	}
	defer release()

	if err := fn(chunk.NewReader(bytes.NewReader(data), opts)); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// MapFile maps the chunk file at path read-only. The returned release func
// must be called once the data is no longer used.
func MapFile(path string) ([]byte, func() error, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, nil, fmt.Errorf("map %s: %w", path, err)
	}
	return data, release, nil
}
