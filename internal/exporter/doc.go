// Package exporter persists pipeline outputs: the integrated fact table
// and per-vessel metrics as CSV, summary statistics, an Excel analytics
// workbook, and a plain-text executive summary. CSV files are written
// with a UTF-8 BOM for Excel compatibility.
package exporter
