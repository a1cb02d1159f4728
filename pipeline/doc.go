// Package pipeline compiles quark source to output text.
//
// A [Pipeline] owns a root [lang.Context] and attaches itself to it, so
// Markdown nested in function arguments is parsed and expanded the same
// way as the top-level document. [Pipeline.Execute] runs the stages in
// order, calling the configured [Hooks] after each:
//
//	lexing -> parsing -> expansion -> rendering -> wrapping
//
// Output is produced by a [Renderer], such as the html or markdown
// renderers in the render tree.
package pipeline
