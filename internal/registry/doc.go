// Package registry binds the names used in declaration files to Go code.
//
// A declaration can only describe data: the converter of an argument, the
// validation and post-processing hooks of a parser and the function run by
// a callback argument are referenced by name ("positive_int",
// "check_ranges"). The Registry maps those names to the compiled converters
// and functions. Modules register their hooks at startup, and the declaration
// loader validates every reference before a parser tree is built, so a typo
// in a file is reported once with all the other missing names instead of
// failing halfway through a parse.
package registry
