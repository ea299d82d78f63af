package kipaths

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kilib/pkg/errors"
)

// Resolve expands a library URI into an absolute filesystem path.
//
// Resolution is purely textual, in order: every known placeholder token
// with a non-empty root is substituted verbatim; a file:// URI has its
// path component percent-decoded (a bare authority such as file://a/b
// contributes the host as the first path segment); ~ and environment
// variables are expanded; a still-relative result is resolved against the
// working directory. No filesystem I/O happens, so a nonexistent path is
// not an error — only an empty uri is.
func Resolve(uri string, roots map[string]string) (string, error) {
	if uri == "" {
		return "", errors.New(errors.ErrInvalidInput, "target library is missing a uri entry")
	}

	resolved := uri
	for token, root := range roots {
		if root != "" {
			resolved = strings.ReplaceAll(resolved, token, root)
		}
	}

	if strings.HasPrefix(resolved, "file://") {
		resolved = stripFileScheme(resolved)
	}

	resolved = ExpandHome(resolved)
	resolved = expandEnv(resolved)

	if !filepath.IsAbs(resolved) {
		abs, err := filepath.Abs(resolved)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput,
				"cannot make %q absolute", resolved)
		}
		resolved = abs
	}

	return resolved, nil
}

// stripFileScheme converts a file:// URI into a plain path, decoding
// percent escapes and folding a bare authority into the path.
func stripFileScheme(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		// Not URL-shaped after all; fall back to dropping the scheme.
		return strings.TrimPrefix(uri, "file://")
	}

	path := parsed.Path
	switch {
	case parsed.Host != "" && path == "":
		path = "/" + parsed.Host
	case parsed.Host != "":
		path = "/" + parsed.Host + path
	}
	return path
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something refers to another user's home; leave it alone.
	return path
}

// expandEnv substitutes $VAR and ${VAR} from the environment, leaving
// undefined variables untouched so unrecognized placeholder tokens survive
// as-is instead of being erased.
func expandEnv(s string) string {
	return os.Expand(s, func(name string) string {
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return "${" + name + "}"
	})
}
