// Command sonicindex is documented in cmd/sonicindex. This file only
// anchors the module-level package documentation:

// sonicindex builds and maintains a local index of an audio library.

// - internal/walker: filesystem enumeration
// - internal/decode: container/codec decoding into PCM
// - internal/fingerprint: Chromaprint-style audio fingerprinting
// - internal/features: spectral feature extraction
// - internal/genre: ONNX neural genre classification
// - internal/onlinelookup: AcoustID/MusicBrainz metadata lookup
// - internal/lookupcache: online-lookup result caching
// - internal/indexstore: persisted per-track metadata
// - internal/featurestore: persisted per-track feature vectors
// - internal/similarity: nearest-neighbor recommendation
// - internal/coordinator: scan/classify orchestration
// - internal/httpapi: HTTP dashboard and JSON API
// - internal/metrics: Prometheus instrumentation
// - internal/telemetry: OpenTelemetry tracing
// - internal/config: CLI configuration
// - internal/logger: structured logging
// - internal/apierr: typed API errors

// See the individual package documentation for detailed reference.
package main
