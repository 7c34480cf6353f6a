package hcapi

import (
	"fmt"
	"sort"
	"strings"
)

// LabelSelector builds a deterministic key=value selector string from a
// label map, suitable for ListOpts.LabelSelector. Keys are sorted so the
// same map always produces the same selector.
func LabelSelector(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, labels[k]))
	}
	return strings.Join(parts, ",")
}

// MergeLabels combines label maps left to right, later maps overriding
// earlier ones. The inputs are not modified.
func MergeLabels(maps ...map[string]string) map[string]string {
	merged := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}
