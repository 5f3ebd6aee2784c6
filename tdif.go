// # TDIF: A Writer for the Tabular Data Interchange Format
//
// TDIF is a comma-separated text format with quoted string fields, a mandatory
// header row and optional '#' comment lines. This package writes TDIF streams to
// any io.Writer or to a file, optionally compressed.
//
// # Format
//
//   - The header is written once. Every name is quoted, non-empty and unique ignoring case.
//   - Every record has exactly as many fields as the header.
//   - Null is an unquoted \N. Numbers and booleans are unquoted.
//   - Strings are enclosed in double quotes; embedded '"' and '\' are prefixed with '\'.
//   - Comment lines start with '#' and must not contain line breaks.
//   - Lines end with the platform line separator unless Writer.LineTerminator says otherwise.
//
// # Errors
//
// Every operation returns an *Error whose Kind distinguishes null values, invalid
// arguments, wrong lifecycle phase and sink failures. Use errors.Is with
// ErrNullValue, ErrInvalidArgument, ErrInvalidState or ErrIO to classify them.
package tdif
