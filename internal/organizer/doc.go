// Package organizer runs the classification and placement pass over the
// input directory: every file is classified, dated, resolved to a library
// path, checked for collisions, and then moved or copied.
//
// A run never aborts on a per-file problem; failures become recorded entries
// and the rest of the set is still processed. Only configuration errors stop
// a run, and they do so before any file has been touched.
package organizer
