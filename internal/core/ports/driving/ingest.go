package driving

import "context"

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// FilesSeen is the number of files visited by the corpus walk.
	FilesSeen int

	// FilesIngested is the number of files that produced chunks.
	FilesIngested int

	// FilesSkipped counts unsupported, empty or undecodable files.
	FilesSkipped int

	// ChunksSplit is the number of passages produced by splitting.
	ChunksSplit int

	// ChunksStored is the number of upserts issued. Re-ingested content
	// is counted here even though the store treats it as a no-op.
	ChunksStored int

	// TotalInStore is the stored chunk count after the run.
	TotalInStore int64
}

// Ingestor walks a corpus directory and persists embedded chunks.
type Ingestor interface {
	// IngestDir ingests every supported file under root. A missing root
	// is a deliberate no-op, not an error. Per-file failures are logged
	// and skipped; the walk never aborts part way.
	IngestDir(ctx context.Context, root string) (*IngestReport, error)
}
