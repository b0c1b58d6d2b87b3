package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL adds lib/pq connection options that are not already set:
// binary_parameters for transaction-mode poolers and application_name so the
// service shows up in pg_stat_activity.
func normalizeDBURL(raw string, binaryParameters bool, applicationName string) string {
	trimmed := strings.TrimSpace(raw)
	defaults := make([][2]string, 0, 2)
	if binaryParameters {
		defaults = append(defaults, [2]string{"binary_parameters", "yes"})
	}
	if applicationName = strings.TrimSpace(applicationName); applicationName != "" {
		defaults = append(defaults, [2]string{"application_name", applicationName})
	}
	if len(defaults) == 0 {
		return raw
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return appendDSNOptions(trimmed, defaults)
	}

	query := parsed.Query()
	changed := false
	for _, kv := range defaults {
		if query.Get(kv[0]) == "" {
			query.Set(kv[0], kv[1])
			changed = true
		}
	}
	if !changed {
		return raw
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func appendDSNOptions(dsn string, options [][2]string) string {
	present := make(map[string]struct{})
	for _, token := range strings.Fields(dsn) {
		if key, _, ok := strings.Cut(token, "="); ok {
			present[key] = struct{}{}
		}
	}
	out := dsn
	for _, kv := range options {
		if _, ok := present[kv[0]]; ok {
			continue
		}
		value := kv[1]
		if strings.ContainsAny(value, " '\\") {
			value = "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value) + "'"
		}
		out += " " + kv[0] + "=" + value
	}
	return out
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
