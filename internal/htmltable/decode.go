package htmltable

import (
    "bytes"
    "io"
    "unicode/utf8"

    "golang.org/x/net/html/charset"
    "golang.org/x/text/encoding/charmap"
)

// DecodeToUTF8 converts a fetched page body to UTF-8 using the Content-Type
// charset and any <meta> declaration in the document. Pages from the 1999
// archive are commonly Windows-1252 without declaring it, so bodies that are
// not valid UTF-8 fall back to that decoding. Always returns usable bytes;
// on any decode failure the input is returned unchanged.
func DecodeToUTF8(raw []byte, contentType string) []byte {
    r, err := charset.NewReader(bytes.NewReader(raw), contentType)
    if err == nil {
        if out, rerr := io.ReadAll(r); rerr == nil && len(out) > 0 {
            return out
        }
    }
    if !utf8.Valid(raw) {
        if out, derr := charmap.Windows1252.NewDecoder().Bytes(raw); derr == nil {
            return out
        }
    }
    return raw
}
