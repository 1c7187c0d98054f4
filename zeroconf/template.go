package zeroconf

import (
	"regexp"
	"sort"
	"strings"
)

// Placeholders expanded in the announce format when a Service is created.
const (
	PlaceholderUUID     = "$MKUUID"
	PlaceholderHostname = "$HOSTNAME"
	PlaceholderName     = "$SRVNAME"
	PlaceholderType     = "$SRVTYPE"
)

// PlaceholderFqdn is bound to the daemon host name when the service is published.
const PlaceholderFqdn = "{fqdn}"

// MultiReplace replaces every occurrence of the keys of replacements in s
// with the matching value, in a single pass. Longer keys win over their
// prefixes, and replacement text is never scanned again, so a value that
// contains another key is kept literally. Text that matches no key, unknown
// placeholders included, is left untouched.
func MultiReplace(s string, replacements map[string]string, ignoreCase bool) string {
	if len(replacements) == 0 || len(s) == 0 {
		return s
	}

	lookup := make(map[string]string, len(replacements))
	keys := make([]string, 0, len(replacements))
	for k, v := range replacements {
		if len(k) == 0 {
			continue
		}
		if ignoreCase {
			k = strings.ToLower(k)
		}
		if _, ok := lookup[k]; !ok {
			keys = append(keys, k)
		}
		lookup[k] = v
	}

	if len(keys) == 0 {
		return s
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] > keys[j]
	})

	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}

	expr := strings.Join(quoted, "|")
	if ignoreCase {
		expr = "(?i)" + expr
	}

	return regexp.MustCompile(expr).ReplaceAllStringFunc(s, func(match string) string {
		key := match
		if ignoreCase {
			key = strings.ToLower(match)
		}
		if v, ok := lookup[key]; ok {
			return v
		}
		return match
	})
}
