package handlers

const (
	// Generic failure message for the affirmation endpoint; details are only logged
	errGenerateFailed = "Failed to generate affirmations."

	headerCacheControl = "Cache-Control"
	headerCapped       = "X-Affirmations-Capped"

	cacheNoStore      = "no-store"
	cacheStaticAssets = "public, max-age=3600"
)
