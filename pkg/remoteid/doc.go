// Package remoteid encodes and decodes the fixed-layout broadcast messages
// used by unmanned aircraft to transmit identity, location and operational
// metadata (ASTM F3411 Remote ID).
//
// Every message on the wire is 25 bytes: one header byte carrying the message
// type (high nibble) and protocol version (low nibble), followed by a 24 byte
// payload. The Pack message is the exception, carrying up to nine other
// messages back to back.
//
// Decoding should generally go through DecodeMessage, encoding through
// Message.Encode with a buffer of Message.EncodingByteLength bytes. Partial
// decoding is possible through the payload decoders (DecodeBasicID,
// DecodeLocation, ...), which take the 24 byte payload without its header.
//
// The package performs no I/O and keeps no state; every function only borrows
// the buffers it is given for the duration of the call.
package remoteid
