// Package dataset implements a transparent, immutable proxy around tabular
// frames, carrying arbitrary caller-supplied metadata through chains of frame
// transformations. This root package defines the Frame contract which wrapped
// engines must satisfy, as well as the Dataset proxy itself, and is an
// excellent overview of the library's key concepts.
package dataset
