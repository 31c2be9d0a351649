// Package archive packs generated documents into a zip bundle for download.
package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"

	"expodocs/internal/domain"
)

// ZipBundler implements port.ArchiveBundler with maximum deflate
// compression. Office formats are already zipped, but the HTML and PDF
// members still shrink meaningfully.
type ZipBundler struct{}

func NewZipBundler() *ZipBundler {
	return &ZipBundler{}
}

func (b *ZipBundler) Bundle(artifacts []domain.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	for _, a := range artifacts {
		fw, err := w.Create(a.Filename)
		if err != nil {
			return nil, fmt.Errorf("archive: add %s: %w", a.Filename, err)
		}
		if _, err := fw.Write(a.Bytes); err != nil {
			return nil, fmt.Errorf("archive: write %s: %w", a.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("archive: close bundle: %w", err)
	}
	return buf.Bytes(), nil
}
