// Package qrcode renders the document's footer URL as an SVG QR code.
//
// Symbols use error correction level L and are drawn at ten user units per
// module with no quiet zone, a #2a2a2a foreground and no background fill.
// The output file is replaced atomically, so a failed run leaves the
// previous artifact in place.
package qrcode
