// Package constants defines shared provider and creative kind names.
package constants

// Geo store providers.
const (
	GeoProviderMemory = "memory"
	GeoProviderRedis  = "redis"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Creative kinds as they appear in retrieval URLs.
const (
	CreativeKindVideo = "video"
	CreativeKindImage = "image"
)
