// Package logtail reads the trailing bytes and lines of growing text files.
//
// # Overview
//
// Two readers live here. Extract is the hot path used by the coordinator on
// every change: it seeks to the end of an already-open file and reads at most
// a byte budget into a reusable buffer, so a multi-gigabyte log costs no more
// than one screenful per update. Read is the older line-oriented reader used
// by `logtop check --lines`, which scans a file once and keeps the last N
// lines in a ring buffer.
//
// # Byte budget
//
// The budget comes from the detail viewport (rows × cols). Extract reads from
// max(0, size-budget) to the end of the file:
//
//	size=100 budget=30  → bytes [70, 100)
//	size=10  budget=30  → bytes [0, 10)
//	budget<=0           → ErrNoBudget, buffer untouched
//
// The buffer only grows. A smaller budget reuses the existing allocation and
// a larger one reallocates to the full budget so that later growth of the file
// does not reallocate again.
//
// # Line boundaries
//
// Tail.LastLine is the offset just past the final '\n' in the tail. For
// "a\nb\nc" it points at "c"; for "a\nb\n" it points at the empty remainder
// after the trailing newline.
//
// The summary row wants something different: the last complete line, ignoring
// trailing line terminators. Tail.Line and LastLine skip trailing '\n' and
// '\r' bytes and scan back to the previous terminator:
//
//	"one\ntwo\n"     → "two"
//	"one\r\ntwo\r\n" → "two"
//	"\n\n"           → ""
//
// Nothing in this package looks at the content beyond those two bytes.
//
// # Error handling
//
// Extract wraps seek and read failures. A file truncated between the seek and
// the read yields the bytes that were read. Read returns nil, nil for a
// missing file.
package logtail
