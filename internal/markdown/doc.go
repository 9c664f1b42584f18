// Package markdown implements a small line-oriented markup compiler.
//
// Compilation runs four stages in sequence:
//
//  1. Tokenize turns the input into a flat, lossless token stream. Concatenating
//     every token's Literal reproduces the input exactly.
//  2. ParseBlocks walks the tokens one physical line at a time and picks the
//     block type from the leading marker pair (`#`, `-`, `1.`, `>` followed by
//     spaces). Lines without a marker become paragraphs.
//  3. ScanInline resolves the rest of each line into text, inline code and
//     link nodes. Unmatched constructs degrade to literal text.
//  4. Transform merges adjacent text nodes inside every block.
//
// Compile wires the stages together. Only headings, paragraphs, bulleted and
// ordered list items, blockquotes, inline code, links and plain text are
// recognised; nothing nests beyond a link's text.
package markdown
