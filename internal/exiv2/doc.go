// Package exiv2 wraps the exiv2 command line tool.
//
// ReadExif prints every EXIF tag of a file as "key value" lines and parses
// them into a map. WriteTags applies a tags.Set with one "set" modify
// command per key, sorted by key so the argument list is deterministic.
//
// Client satisfies photo.MetadataReader and the workflow's metadata writer.
package exiv2
