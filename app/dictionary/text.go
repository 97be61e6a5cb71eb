package dictionary

import "strings"

// Unique drops repeated and empty items keeping first-seen order
func Unique(items []string) []string {
	result := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// AbsoluteURL joins a site-relative reference to origin.
// Absolute and protocol-relative references keep their own host.
func AbsoluteURL(origin string, ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "https://"), strings.HasPrefix(ref, "http://"):
		return ref
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	}
	ref = strings.TrimPrefix(ref, "./")
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(ref, "/")
}
