// Package buffer provides the line store of the editor engine.
//
// A Buffer is an ordered sequence of lines. Each line keeps its raw bytes
// together with a derived display form and one highlight tag per display
// cell. Every mutation re-derives the touched line before returning, and
// propagates block comment state forward through the document until a
// line's terminal state stops changing.
//
// Basic usage:
//
//	buf := buffer.New(buffer.WithProfile(highlight.CProfile()))
//	buf.InsertLine(0, []byte("int main() {"))
//	buf.InsertByte(0, 12, ' ')
//	buf.SplitLine(0, 4)
//
// Buffer is not safe for concurrent use. It is owned by a single editing
// session.
package buffer
