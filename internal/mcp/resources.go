// resources.go serves hive://keys/{path}: the subkeys and values of a key
// as JSON, for clients that load context without calling a tool.
//
// The path may use / or \ as separator, and root aliases such as HKCU are
// accepted.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/jpl-au/hive/internal/ls"
	"github.com/jpl-au/hive/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI is returned for a URI outside hive://keys/.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath is returned when the URI names no key.
	ErrEmptyPath = errors.New("empty key path")
)

const keysPrefix = "hive://keys/"

// readKey handles hive://keys/{path} resource requests.
func (h *handlers) readKey(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	uri := req.Params.URI
	p, err := parseKeyURI(uri)
	if err != nil {
		return nil, err
	}
	res, err := ls.Run(ctx, io.Discard, h.svc, p, ls.Options{})
	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(res)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseKeyURI extracts the key path from hive://keys/{path}. Percent
// escapes are decoded.
func parseKeyURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, keysPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest, err := url.PathUnescape(strings.TrimPrefix(uri, keysPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	rest = strings.Trim(rest, `/\`)
	if rest == "" {
		return "", ErrEmptyPath
	}
	return rest, nil
}
