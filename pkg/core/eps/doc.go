// Package eps extracts Earnings-Per-Share figures from the tables of a filing.
//
// Filings encode their statements as loosely marked-up tables: a label such
// as "Diluted earnings per share" may sit in one row and its figures in the
// next, negatives may be written as "(0.30" with the ")" in another cell, and
// one filing reports several variants (basic, diluted, GAAP, adjusted) side
// by side. The package works in stages:
//
//	Normalize      cell text -> signed decimal string
//	IsEPSLabel     row text  -> is this a per-share value row
//	Stitch         label row -> numeric candidates, looking ahead when needed
//	Select         candidates -> one Occurrence per label row
//	Extract        Document -> all Occurrences, in document order
//	Resolve        Occurrences -> one EPS figure for the document
//
// Everything here is pure and synchronous. HTML parsing lives in the edgar
// package, which builds the Document this package consumes.
package eps
