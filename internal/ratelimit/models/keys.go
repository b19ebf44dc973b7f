package models

import "strings"

// SanitizeKeySegment escapes the key delimiter so a crafted identifier cannot
// address another bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// ActorKey is the bucket key for one actor and endpoint class.
func ActorKey(actorID string, class EndpointClass) string {
	return "ratelimit:actor:" + SanitizeKeySegment(actorID) + ":" + string(class)
}
