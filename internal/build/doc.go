// Package build compiles a tree of markdown files into rendered output.
//
// A Builder walks the source directory, compiles every *.md file with a
// bounded worker pool and writes one output file per requested format,
// mirroring the source layout. Rendered output is cached by content
// fingerprint so unchanged documents skip both compilation and rendering.
package build
