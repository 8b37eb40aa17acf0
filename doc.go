// Package tracelabel rewrites labeled statements used as logging
// pseudo-keywords into calls to a pluggable emission function.
//
// The input is ordinary Go syntax where a label carries a payload:
//
//	func login(name string) {
//		trace: println("user login", name)
//		...
//	}
//
// Each label whose name is registered in the alias table (trace, log and
// warn by default) is replaced with an emission call carrying a context
// prefix derived from the file and the enclosing function path:
//
//	tracelog.Log("auth:User:login:", "user login", name)
//
// or deleted entirely when the strip policy applies, giving zero runtime
// presence. The TRACE_CONTEXT, TRACE_FILE and TRACE_LEVEL environment
// variables selectively keep labels a policy would strip. Labels with
// unknown names, regular break/continue targets among them, are left
// untouched.
//
// Core components:
//
//   - Alias table
//     Maps label names to renderers: level-named sink calls by default,
//     user call templates or renderer functions when configured.
//
//   - Context metadata collector
//     Derives the file prefix, the colon-joined enclosing function path,
//     the nesting depth and the start-message flags per label instance.
//
//   - Strip engine
//     Combines the static policy with the environment override sets.
//
//   - Rewriter
//     Validates that label bodies are side-effect free and performs the
//     tree mutation, unwrapping the label into its parent.
package tracelabel
