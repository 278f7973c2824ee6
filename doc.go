/*
Package prefixdict compresses the asset-URL prefixes of a catalog dataset into
a hierarchical two-table dictionary.

Thousands of catalog records reference images, audio files and thumbnails on a
small number of hosting paths. The build step counts every resource URL, cuts
each one at its final path separator (the level-1 prefix), mines reusable
fragments shared by many prefixes (protocols, domain templates and leading
path segments, called atoms) and rewrites every level-1 prefix as a
composition of atom references and literal runs. Records then store

	<compositionID>-><filename>

instead of the full URL. A Resolver, built from the same dictionary, turns a
composition ID back into its prefix text.

Atom IDs are assigned by descending estimated savings and composition IDs by
descending prefix frequency. Ties are broken by a canonical collection order,
so equal URL multisets always yield byte-identical dictionaries.

Mining tallies each candidate once per distinct prefix by default. With
WithFrequencyWeighting every URL occurrence counts; only in that mode do
three URLs below two CDN prefixes, such as https://cdn1.example.com/img/
twice and https://cdn2.example.com/img/ once, make "https://" an atom.

The package does no file or network I/O. Package dictfile reads and writes the
persisted dictionary, package catalog feeds it from CSV track tables.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package prefixdict

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'prefixdict'
func tracer() tracing.Trace {
	return tracing.Select("prefixdict")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
