package imaging

import (
	"context"

	"github.com/acm19/imagetools/internal/logger"
)

// Info runs the verbose identify dump and parses it. EXIF fields are added
// when a MetadataReader is configured and succeeds.
func (p *processor) Info(ctx context.Context, path string) (*InfoResult, error) {
	const op = "info"
	if err := ValidateInputExists(op, path); err != nil {
		return nil, err
	}
	if err := p.ensureEngine(ctx); err != nil {
		return nil, err
	}

	outcome, _, err := p.run(ctx, IdentifyInvocation(path))
	if err != nil {
		return nil, withOp(op, "get image info", err)
	}

	meta := ParseIdentify(outcome.Stdout)
	meta.Path = path
	meta.FileSizeBytes = SizeOf(path)
	meta.FileSize = FormatSize(meta.FileSizeBytes)

	if p.exif != nil {
		fields, err := p.exif.ReadMetadata(path)
		if err != nil {
			logger.Debug("EXIF enrichment skipped", "file", path, "error", err)
		} else if len(fields) > 0 {
			meta.Exif = fields
		}
	}

	return &InfoResult{
		Success:   true,
		ImageInfo: meta,
		RawOutput: outcome.Stdout,
	}, nil
}
