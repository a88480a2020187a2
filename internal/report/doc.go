// Package report renders rows describing format strings and builds in the
// output formats of the cfmt command.
//
// [Write] and [Marshal] take a [Format] and items of any type. JSON, JSONL
// and YAML encode the items themselves; Table, Markdown, CSV and TSV need
// the items to implement [Rower], and optional interfaces refine the
// layout:
//
//   - [Headed]: a header row (required by Markdown)
//   - [Titled]: a title line above a bordered table
//   - [Captioned]: a line below the table
//   - [Bordered]: the border style, rounded by default
//   - [Aligned]: per-column alignment
//   - [Indented]: the JSON and YAML indent
//
// The rows defined here carry a [Layout] picked at run time, so the
// command's -border and -indent flags reach them through [ExplainWith]
// and [FeatureRows].
//
// Widths are measured in terminal columns, so wide runes line up.
//
// [WriteSeq] renders an iter.Seq2 as it is produced, which lets
// [Explain] stream the directives of a format string and stop at the first
// malformed one.
package report
