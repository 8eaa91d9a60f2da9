package embedded

import (
	_ "embed"
)

// Affirmation catalog, safety words and support message
//
//go:embed data/catalog.yaml
var CatalogYAML []byte

// Static web assets
//
//go:embed data/web/index.html
var IndexHTML []byte

//go:embed data/web/sw.js
var ServiceWorkerJS []byte

//go:embed data/web/manifest.json
var ManifestJSON []byte
