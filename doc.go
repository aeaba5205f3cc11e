// Package huffpack builds optimal binary prefix (Huffman) codes from symbol
// frequencies.
//
// The alphabet is the 256 byte values plus an end-of-stream sentinel.  A
// Tree is built greedily by repeatedly merging the two least frequent nodes
// held in a min-heap (see package pqueue).  Codes are derived by walking
// each leaf's parent links up to the root; package pack turns them into a
// self-describing compressed stream.
//
// References:
//
//     D. A. Huffman, "A Method for the Construction of Minimum-Redundancy
//     Codes", Proceedings of the IRE, 1952
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffpack
