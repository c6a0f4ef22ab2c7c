package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScanEvents traces the coordinator's scan and classify runs.
type ScanEvents struct {
	tracer trace.Tracer
}

// NewScanEvents returns a tracer scoped to scan/classify domain spans.
func NewScanEvents() *ScanEvents {
	return &ScanEvents{tracer: otel.Tracer("scan-events")}
}

// TraceScanRun creates a span covering one full start_scan invocation.
func (se *ScanEvents) TraceScanRun(ctx context.Context, inputDir string, offline bool) (context.Context, trace.Span) {
	return se.tracer.Start(ctx, "scan.run",
		trace.WithAttributes(
			attribute.String("scan.input_dir", inputDir),
			attribute.Bool("scan.offline", offline),
		),
	)
}

// TraceClassifyRun creates a span covering one full start_classify invocation.
func (se *ScanEvents) TraceClassifyRun(ctx context.Context, modelDir string) (context.Context, trace.Span) {
	return se.tracer.Start(ctx, "scan.classify_run",
		trace.WithAttributes(attribute.String("scan.model_dir", modelDir)),
	)
}

// TraceFileEnrich creates a span covering one file's decode/fingerprint/
// feature/lookup/classify pipeline.
func (se *ScanEvents) TraceFileEnrich(ctx context.Context, path string) (context.Context, trace.Span) {
	return se.tracer.Start(ctx, "scan.enrich_file",
		trace.WithAttributes(attribute.String("file.path", path)),
	)
}

// TraceOnlineLookup creates a span for one AcoustID/MusicBrainz round trip.
func (se *ScanEvents) TraceOnlineLookup(ctx context.Context, fingerprint string) (context.Context, trace.Span) {
	return se.tracer.Start(ctx, "scan.online_lookup",
		trace.WithAttributes(attribute.String("lookup.fingerprint_prefix", truncate(fingerprint, 16))),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
