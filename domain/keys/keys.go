package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxReservation is used for prefixing payment reservation leases
	PfxReservation = "reservation"
	// PfxBlocklist is used for prefixing cached blocklist lookups
	PfxBlocklist = "blocklist"
	// PfxListingBlob is the blob store namespace of listing images
	PfxListingBlob = "listings"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// BlobKey is used to join an object name by components
func BlobKey(components ...string) string {
	return CustomKey("/", components...)
}

// GetPrefix extracts the prefix of a key for metrics tagging.
// Keys with more than two components keep their first two.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join(s[:2], ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
