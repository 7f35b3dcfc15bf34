// Package tablefile reads and writes grids and equations on disk.
//
// Supported table formats, chosen by file extension:
//   - .csv: UTF-8 delimited text, header row = group names. A leading byte
//     order mark is ignored.
//   - .tsv: as .csv, tab separated.
//   - .xlsx: spreadsheet, first sheet unless a sheet name is given.
//   - .yaml, .yml: a list of named groups with their terms.
//
// Cell text is NFC normalized on read so visually identical terms compare
// equal. Blank cells become grid.Absent and ragged columns are padded.
//
// Writers render into memory first. Render returns every output for a
// conversion so callers can write nothing when any rendering fails.
package tablefile
