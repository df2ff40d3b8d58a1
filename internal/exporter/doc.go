// Package exporter writes the market summary extracts to disk: one CSV per
// extract, a combined JSON document, and a summary workbook with one sheet
// per extract. Output is a pure function of the summary, so identical runs
// produce identical files.
package exporter
