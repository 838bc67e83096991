// Package media classifies files by kind and extracts the capture timestamp
// used to place them in the library. Embedded metadata (EXIF, MP4 movie
// header) is preferred, then date patterns in the file name, then the
// filesystem modification time.
package media
