package port

import "context"

// TemplateStore fetches document template files (xlsx shipping forms, docx
// certificates) by name.
type TemplateStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
}
