package utils

import (
	"bytes"
	"crypto/subtle"
	"encoding/binary"

	"github.com/overnest/safecrypto-go/cryptoerr"
)

const (
	FieldLengthSerialSize = 4

	domain = "utils"
)

// XOR combines two equal length, non-empty byte strings.
func XOR(first, second []byte) ([]byte, error) {
	if len(first) != len(second) || len(first) == 0 {
		return nil, cryptoerr.Invalid(domain, "size mismatch or zero: %d and %d bytes", len(first), len(second))
	}
	result := make([]byte, len(first))
	subtle.XORBytes(result, first, second)
	return result, nil
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}

// WriteField writes data prefixed with its big endian int32 length.
func WriteField(buf *bytes.Buffer, data []byte) error {
	if err := binary.Write(buf, binary.BigEndian, int32(len(data))); err != nil {
		return err
	}
	_, err := buf.Write(data)
	return err
}

// ReadField reads a field written by WriteField.
func ReadField(buf *bytes.Buffer) ([]byte, error) {
	var fieldLen int32
	if err := binary.Read(buf, binary.BigEndian, &fieldLen); err != nil {
		return nil, cryptoerr.Invalid(domain, "reading field length: %v", err)
	}
	if fieldLen < 0 || int(fieldLen) > buf.Len() {
		return nil, cryptoerr.Invalid(domain, "field length %v exceeds the %v remaining bytes", fieldLen, buf.Len())
	}
	field := make([]byte, fieldLen)
	copy(field, buf.Next(int(fieldLen)))
	return field, nil
}
