package encoding

// Encoder reads user-provided text and turns it into its encoded form.
type Encoder interface {
	Encode([]byte) ([]byte, error)
}

// Decoder reads the encoded form and turns it back into the original text.
type Decoder interface {
	Decode([]byte) ([]byte, error)
}
