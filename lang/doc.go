// Package lang implements a minimal brace-delimited template language.
//
// A template is plain text in which '{' and '}' delimit nested groups. Each
// group invokes a macro, named by the first word of the group's leading
// text, which compiles the rest of the group (its argument and body) into
// instructions. A compiled [Program] is executed against arbitrary data to
// produce text.
//
// # Pipeline
//
//	source --Parse--> *Group --Compile--> *Program --Execute(data)--> string
//
// [Parse] builds the tree, [Compile] parses and compiles (caching the result
// by source), and [Program.Execute] runs a program. [Render] does all three.
//
// # Built-in macros
//
//	{. p}            value at path p (the rest of the group is ignored)
//	{-> p body}      body with the current path extended by p
//	{has p body}     body only if the value at p is defined
//	{each p body}    body once per member of the value at p
//	{path p}         the current path extended by p, as text
//	{out body}       body compiled as ordinary template text
//	{literal body}   body verbatim, braces included
//	{fn name}        the result of the host function name (see [WithFuncs])
//
// Callers may add macros, or replace built-ins, with [WithMacros].
//
// # Paths
//
// Paths are dotted strings such as "user.name" or "items.0". The path "."
// (or the empty path) names the root of the data. Relative paths are
// extended with [AddToPath] and looked up with [Resolve]; a lookup stops at
// the first missing or falsy member, making the whole path undefined.
// Undefined values render as nothing.
//
// # Example
//
//	out, err := lang.Render(ctx,
//		"{each pages <li>{. title}</li>}",
//		map[string]any{"pages": []any{
//			map[string]any{"title": "A"},
//			map[string]any{"title": "B"},
//		}},
//	)
//	// out == "<li>A</li><li>B</li>"
//
// # Concurrency
//
// Programs are immutable after compilation. A single Program may be executed
// by any number of goroutines at once, each against its own data.
package lang
