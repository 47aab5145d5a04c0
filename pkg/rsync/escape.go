package rsync

import "strings"

var (
	// characters escaped inside a double-quoted shell filter value
	shellFilterEscaper = strings.NewReplacer(`"`, `\"`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `?`, `\?`)

	// characters rsync itself treats as wildcards
	globEscaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`, `*`, `\*`, `?`, `\?`)

	quoteEscaper = strings.NewReplacer(`"`, `\"`)
)

// NormalizeDir appends a trailing slash to a non-empty directory so rsync
// copies its contents rather than the directory itself
func NormalizeDir(dir string) string {
	if dir == "" || strings.HasSuffix(dir, "/") {
		return dir
	}
	return dir + "/"
}

// filterToken renders --include/--exclude for a shell command line. A lone
// "*" is kept as a wildcard, anything else is matched literally.
func filterToken(which, pattern string) string {
	if pattern != "*" {
		pattern = shellFilterEscaper.Replace(pattern)
	}
	return "--" + which + `="` + pattern + `"`
}

// filterArg is filterToken for an argument vector, where no shell quoting
// applies
func filterArg(which, pattern string) string {
	if pattern != "*" {
		pattern = globEscaper.Replace(pattern)
	}
	return "--" + which + "=" + pattern
}

func fileToken(name string) string {
	return `--include="` + quoteEscaper.Replace(name) + `"`
}
