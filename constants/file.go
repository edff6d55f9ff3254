package constants

// AllowedMIMETypes holds the media types accepted by the upload endpoint.
var AllowedMIMETypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
	"image/webp":      {},
}

// MaxTitleLength is the upper bound on document titles, enforced before ingest.
const MaxTitleLength = 500
