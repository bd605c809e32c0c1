// Package parser implements the recursive parser tree.
//
// A Node owns an ordered set of arguments and an ordered set of named child
// nodes. Parsing a token list runs the same protocol at every node:
//
//  1. The tokens are grouped: everything before the first child name belongs
//     to the node, everything after a child name belongs to that child.
//  2. Depending on the node's Order, the children are parsed before
//     (DepthFirst) or after (BreadthFirst) the node's own step.
//  3. The own step matches the node's tokens against its arguments, enters
//     the lifted branches, validates the result and finally runs the
//     Produce hook.
//
// Lifted children are invisible on the command line. Their arguments live
// in the parent's namespace and are matched together with the parent's own
// arguments; only their children keep a name the user types.
//
// A child configured to skip when absent (the default) is stored as nil
// when its name does not appear in the input, and none of its hooks run.
//
// Nothing in this package terminates the process. Every fatal condition is
// returned as a *ParseError naming the node it happened in, a help request
// as *HelpRequest, and a callback that ends the pass as *argument.Exit.
package parser
