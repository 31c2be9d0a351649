package port

import "expodocs/internal/domain"

// ArchiveBundler packs generated artifacts into a single downloadable
// archive.
type ArchiveBundler interface {
	Bundle(artifacts []domain.Artifact) ([]byte, error)
}
