package analysis

import "context"

// Describer port (interface untuk vision model)
type Describer interface {
	Describe(ctx context.Context, image []byte, mime string) (string, error)
}

// Archiver port (interface untuk penyimpanan gambar yang sudah dianalisis)
type Archiver interface {
	Archive(ctx context.Context, key string, image []byte, mime string) (string, error)
}
