/*
Package fieldpath addresses a value inside a parsed namespace tree.

The format is a dot-separated sequence of field names, each optionally
followed by a list index, e.g. `output.format` or `cart.counts[1]`.
Sub-parser results are reached by their attachment name; lifted sub-parsers
have no segment of their own because their fields live in the parent.
*/
package fieldpath
