// Package normalisers provides text normalisation for extracted document
// text. Transcribed output is noisy: misread character runs, erratic
// whitespace, and structural markers buried mid-line. The normalisers
// rewrite that text into a stable form the chunker and ranker can rely on.
package normalisers
