// Package dataprocessing turns the raw NSE equity-market export into a typed,
// cleaned RecordSet.
//
// Loading happens in two steps. Header translation maps the exchange's raw
// column names onto canonical field names and fails hard (SchemaError) when a
// required column cannot be located; numeric normalization then coerces cell
// text to floats, treating the "-" sentinel and unparsable values as missing
// and silently dropping any row that is not fully defined. The surviving rows
// keep their source order.
package dataprocessing
