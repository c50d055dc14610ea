package osmnav

import "github.com/pkg/errors"

var (
	// ErrMissingNode is returned in strict mode when way or DOT edge references absent node
	ErrMissingNode = errors.New("way references node which is not present in document")
	// ErrEmptyGraph means nothing routable is left after filtering
	ErrEmptyGraph = errors.New("graph has no vertices")
	// ErrVertexNotFound is returned for unknown vertex id
	ErrVertexNotFound = errors.New("vertex does not exist")
	// ErrNoPath means target is unreachable from source
	ErrNoPath = errors.New("no path found")
	// ErrBadBounds is returned for malformed or inverted bounding box
	ErrBadBounds = errors.New("bad bounds")
	// ErrUnsupportedFormat is returned for file extension which can't be read or written
	ErrUnsupportedFormat = errors.New("file format is not supported")
	// ErrInvalidEdge is returned for edge with bad speed or for path step without edge
	ErrInvalidEdge = errors.New("invalid edge")
)
