// Package qrcode renders provisioning payloads as QR codes, either as raw
// PNG bytes or as a base64 data URI for direct embedding in HTML.
package qrcode
