// Command seedtemplates uploads the .docx and .xlsx document templates from a
// local directory into the configured S3 bucket under the template prefix.
// Usage: go run ./cmd/seedtemplates [templates-dir]
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"expodocs/internal/config"
	"expodocs/internal/domain"
	"expodocs/internal/port"
	s3storage "expodocs/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := "templates"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing S3 client: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	ctx := context.Background()
	uploaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		contentType := contentTypeFor(name)
		if contentType == "" {
			log.Printf("skipping %s: not a template file", name)
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}

		key := path.Join(cfg.S3.TemplatePrefix, name)
		if _, err := s3Client.Upload(ctx, port.UploadInput{
			Bucket:      cfg.S3.Bucket,
			Key:         key,
			Body:        bytes.NewReader(raw),
			ContentType: contentType,
			Size:        int64(len(raw)),
		}); err != nil {
			return fmt.Errorf("uploading %s: %w", name, err)
		}

		log.Printf("uploaded %s (%d bytes) to s3://%s/%s", name, len(raw), cfg.S3.Bucket, key)
		uploaded++
	}

	log.Printf("seeded %d templates", uploaded)
	return nil
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return domain.ContentTypeDOCX
	case ".xlsx":
		return domain.ContentTypeXLSX
	default:
		return ""
	}
}
