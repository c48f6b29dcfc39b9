// Package text defines the rich-text model consumed by the layout engine and
// the measurement contract it relies on.
//
// # Rich text
//
// [RichText] is a closed recursive variant: [Empty], [Plain], [Concat] and
// [Span]. Documents build it from JSON or TOML (see pkg/io); the layout
// engine never inspects it beyond [IsEmpty] and hands it to a [Measurer].
//
// # Style stacks
//
// A [StyleStack] is an ordered, push-only list of [Directive] values. It is
// a value type: [StyleStack.Push] returns a new stack and never writes into
// storage shared with the receiver, so a stack handed to a callee cannot be
// changed behind the caller's back.
//
//	stack := text.StyleStack{}.
//	    Push(text.FontSize(17)).
//	    Push(text.Serif(true))
//	attrs := stack.Resolve() // innermost directive wins
//
// # Measurement
//
// A [Measurer] turns rich text plus a style stack into a [Box] of wrapped
// lines. [Estimator] is a deterministic implementation based on average
// glyph widths and Unicode line breaking; pkg/core/text/fontmetrics provides
// one backed by real TrueType advances. Both share the greedy line breaker
// in [Wrap].
package text
