package model

import "strings"

// ImageReference is an opaque handle to image bytes for one pipeline run.
// Exactly one of Bytes or Source is set: Source may be a local file path or
// an already-remote URL. The pipeline never persists a reference.
type ImageReference struct {
	Bytes  []byte
	Source string
}

// ImageFromBytes wraps in-memory image bytes.
func ImageFromBytes(b []byte) ImageReference {
	return ImageReference{Bytes: b}
}

// ImageFromSource wraps a file path or remote URL.
func ImageFromSource(src string) ImageReference {
	return ImageReference{Source: src}
}

// Remote reports whether the reference points at an already-uploaded image.
// Remote sources are an upstream concern and pass through the encoder as-is.
func (r ImageReference) Remote() bool {
	return strings.HasPrefix(r.Source, "http://") || strings.HasPrefix(r.Source, "https://")
}

// EncodedImage is the transport-ready form of an ImageReference. Derived,
// disposable, never reused across runs.
type EncodedImage struct {
	// Base64 holds the encoded bytes for inline transport. Empty for remote
	// passthrough images.
	Base64 string
	// MediaType is the sniffed content type of the source bytes.
	MediaType string
	// URL is set instead of Base64 when the source was already remote.
	URL string
}
