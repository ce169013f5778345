// Package uri parses the hikyaku path grammar: file://, s3://, gd://,
// gds:// URIs into a scheme, optional namespace, and a normalized path.
package uri

import (
	"strings"

	"hikyaku/pkg/herrors"
)

// Scheme identifies which backend a parsed URI targets.
type Scheme string

const (
	SchemeFile        Scheme = "file"
	SchemeS3          Scheme = "s3"
	SchemeGoogleDrive Scheme = "gd"
	SchemeSharedDrive Scheme = "gds"
)

var prefixes = map[string]Scheme{
	"file://": SchemeFile,
	"s3://":   SchemeS3,
	"gd://":   SchemeGoogleDrive,
	"gds://":  SchemeSharedDrive,
}

// namespaced schemes require a non-empty first path segment.
func (s Scheme) namespaced() bool {
	return s == SchemeS3 || s == SchemeSharedDrive
}

// Parsed is the result of splitting a user-supplied URI.
type Parsed struct {
	Scheme    Scheme
	Namespace string // empty unless Scheme.namespaced()
	Path      string // no leading/trailing slash, no "//"
}

// HasNamespace reports whether this scheme carries a namespace component.
func (p Parsed) HasNamespace() bool {
	return p.Scheme.namespaced()
}

// Parse splits input into {scheme, namespace?, path}, rejecting unknown
// prefixes, missing namespaces on namespaced schemes, and any "//" that
// would make the path ambiguous.
func Parse(input string) (Parsed, error) {
	prefix, scheme, rest, ok := splitPrefix(input)
	if !ok {
		return Parsed{}, herrors.InvalidArgument(
			"%q has an unrecognized prefix; supported prefixes are file://, s3://, gd://, gds://", input)
	}

	if !scheme.namespaced() {
		if strings.Contains(rest, "//") {
			return Parsed{}, herrors.InvalidArgument(
				"%q is ambiguous: repeated '/' is not allowed in a %s path", input, prefix)
		}
		return Parsed{Scheme: scheme, Path: trimSlashes(rest)}, nil
	}

	namespace, path, err := splitNamespace(input, prefix, rest)
	if err != nil {
		return Parsed{}, err
	}

	return Parsed{Scheme: scheme, Namespace: namespace, Path: path}, nil
}

func splitPrefix(input string) (prefix string, scheme Scheme, rest string, ok bool) {
	for p, s := range prefixes {
		if strings.HasPrefix(input, p) {
			return p, s, strings.TrimPrefix(input, p), true
		}
	}
	return "", "", "", false
}

// splitNamespace implements the namespaced-scheme branch of the grammar:
// the first path segment becomes the namespace, the remainder (with
// leading/trailing slashes trimmed) becomes the path. Any interior "//"
// after the namespace split, or a leading "/" immediately following the
// namespace, is rejected as ambiguous.
func splitNamespace(input, prefix, rest string) (namespace, path string, err error) {
	trimmed := strings.TrimLeft(rest, "/")

	idx := strings.IndexByte(trimmed, '/')
	var namespaceRaw, remainder string
	if idx < 0 {
		namespaceRaw, remainder = trimmed, ""
	} else {
		namespaceRaw, remainder = trimmed[:idx], trimmed[idx+1:]
	}

	if namespaceRaw == "" {
		return "", "", herrors.InvalidArgument(
			"%q is missing a required namespace; %s paths must be %sNAMESPACE/path", input, prefix, prefix)
	}

	if strings.Contains(remainder, "//") || strings.HasPrefix(remainder, "/") {
		return "", "", herrors.InvalidArgument(
			"%q is ambiguous: repeated '/' is not allowed after the namespace", input)
	}

	return namespaceRaw, trimSlashes(remainder), nil
}

// trimSlashes strips leading/trailing '/' only; a bare "/" or "" both
// normalize to the empty (root) path.
func trimSlashes(s string) string {
	return strings.Trim(s, "/")
}

// String renders the parsed form back into the canonical URI grammar,
// mainly useful in log lines and error messages.
func (p Parsed) String() string {
	var b strings.Builder
	b.WriteString(string(p.Scheme))
	b.WriteString("://")
	if p.HasNamespace() {
		b.WriteString(p.Namespace)
		b.WriteByte('/')
	}
	b.WriteString(p.Path)
	return b.String()
}
