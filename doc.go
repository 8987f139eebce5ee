// Package gridframe contains the core components of GridFrame, a library for
// manipulating a distributed collection of in-memory tabular blocks with
// dataframe-style operations. This root package defines the public surface of
// the library - the Frame wrapper, the Collection contract it delegates to,
// and the column statistics Accumulator - and is an excellent overview of
// GridFrame's key concepts.
package gridframe
