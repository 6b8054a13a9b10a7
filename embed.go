package storefront

import "embed"

// EmbeddedAssets contains the stylesheet and favicon shipped with the
// storefront.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
