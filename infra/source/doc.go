// Package source registers the row decoders for CSV, JSON and XLSX
// schedule exports. Import it for its side effect:
//
//	import _ "github.com/kilianp07/haulplan/infra/source"
package source
