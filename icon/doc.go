// Package icon writes and reads ICO containers holding a single image entry.
//
// An ICO file starts with a 6 byte ICONDIR header followed by one 16 byte
// ICONDIRENTRY per image and the image payloads. A payload is either a PNG
// stream or a headerless device independent bitmap (DIB) whose declared
// height is doubled to account for the trailing 1 bpp AND mask.
// Entries are at most 256 pixels wide and high; the value 256 is stored as 0
// in the one byte width and height fields of the directory entry.
package icon
