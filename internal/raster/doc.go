// Package raster implements region decomposition and chunk extraction for
// large raster images that do not fit comfortably in memory.
//
// An image is partitioned into non-overlapping regions (horizontal bands or
// an N×N tile grid) for streaming, and each region is further cut into
// overlapping fixed-size chunks for consumption by a downstream learning
// pipeline. All partitioning is a pure function of the declared image size,
// a region index, and a split count; pixel content never influences
// geometry.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Regions use a half-open
// convention: (MinX,MinY) is inside the region, (MaxX,MaxY) is not.
//
// # Image Contract
//
// The Image interface is the contract every backing store must satisfy:
// lazily resolved and cached size and band count, idempotent preparation,
// ROI-bounded reads, and chunk extraction. Tiles and EstimateMemoryUsage
// operate on any Image. Two families ship with the package: FileImage routes
// pixel access through an externally supplied Reader opened fresh per call,
// and RecordImage answers metadata queries from a packed-record header but
// rejects pixel access.
//
// # Error Handling
//
// Errors fall into three kinds, exposed as sentinels for errors.Is:
// ErrInvalidArgument (caller mistakes such as an out-of-range region index
// or a non-positive chunk stride), ErrUnavailable (the backing resource
// cannot be opened or normalized), and ErrUnsupported (pixel access on a
// metadata-only image).
package raster
