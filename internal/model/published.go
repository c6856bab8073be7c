package model

import "strings"

// publishedFrom resolves the publication flag from the several overlapping
// fields the content store may populate. Boolean fields win over the string
// status; an unresolvable record counts as published. The permissive default
// mirrors the storefront's current behavior and is flagged for product-owner
// review in DESIGN.md. Do not tighten it here.
func publishedFrom(isPublished, published *bool, status string) bool {
	if isPublished != nil {
		return *isPublished
	}
	if published != nil {
		return *published
	}

	switch strings.ToLower(strings.TrimSpace(status)) {
	case "published", "publish", "active", "live":
		return true
	case "draft", "unpublished", "inactive", "hidden", "archived":
		return false
	}
	return true
}
