// Package snapshot persists centroid sets.
//
// # Format
//
//	┌──────────┬─────────┬─────────────┬──────────┬────────┬────────┬────────────┐
//	│ "LLYD"   │ version │ compression │ reserved │ K u32  │ D u32  │ CRC32C u32 │
//	├──────────┴─────────┴─────────────┴──────────┴────────┴────────┴────────────┤
//	│ block: [uncompressed u32][compressed u32][bytes]                           │
//	└────────────────────────────────────────────────────────────────────────────┘
//
// All integers are little-endian. The payload is K*D float32 values in
// centroid order. A compressed size of zero means the block is stored raw,
// which happens when compression does not shrink it by at least 10%. The
// checksum covers the raw payload.
package snapshot
