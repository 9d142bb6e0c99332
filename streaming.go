package safecrypto

import (
	"crypto/cipher"
	"io"

	"github.com/samber/oops"

	"github.com/overnest/safecrypto-go/symm"
)

var (
	ErrStreamClosed = oops.In("stream").Code("stream_closed").Errorf("the stream is closed")
)

// cfbPipe buffers the output of a cipher.Stream until it is read.
type cfbPipe struct {
	stream      cipher.Stream
	output      []byte
	closed      bool
	writeClosed bool
}

func (c *cfbPipe) write(p []byte) (int, error) {
	if c.closed || c.writeClosed {
		return 0, ErrStreamClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	out := make([]byte, len(p))
	c.stream.XORKeyStream(out, p)
	c.output = append(c.output, out...)
	return len(p), nil
}

func (c *cfbPipe) read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrStreamClosed
	}
	if len(c.output) == 0 && c.writeClosed {
		return 0, io.EOF
	}
	n := copy(p, c.output)
	c.output = c.output[n:]
	return n, nil
}

func (c *cfbPipe) readLast() ([]byte, error) {
	if c.closed {
		return nil, ErrStreamClosed
	}
	out := c.output
	if out == nil {
		out = []byte{}
	}
	c.close()
	return out, nil
}

func (c *cfbPipe) closeWrite() error {
	if c.closed {
		return ErrStreamClosed
	}
	c.writeClosed = true
	return nil
}

func (c *cfbPipe) close() {
	c.closed = true
	c.writeClosed = true
	c.output = nil
}

//
// Encryptor
//

// Encryptor encrypts whatever is written to it with AES-256-CFB. The
// ciphertext read back is identical to SymmEncrypt over the concatenated
// input with the same key and IV.
type Encryptor struct {
	pipe cfbPipe
}

func NewEncryptor(key, iv []byte) (*Encryptor, error) {
	stream, err := symm.NewEncryptStream(key, iv)
	if err != nil {
		return nil, err
	}
	return &Encryptor{pipe: cfbPipe{stream: stream}}, nil
}

func (e *Encryptor) Write(p []byte) (int, error) {
	return e.pipe.write(p)
}

func (e *Encryptor) Read(p []byte) (int, error) {
	return e.pipe.read(p)
}

// ReadLast returns all pending ciphertext and closes the stream.
func (e *Encryptor) ReadLast() ([]byte, error) {
	return e.pipe.readLast()
}

// CloseWrite stops accepting plaintext. Pending ciphertext stays readable.
func (e *Encryptor) CloseWrite() error {
	return e.pipe.closeWrite()
}

func (e *Encryptor) Close() error {
	e.pipe.close()
	return nil
}

//
// Decryptor
//

type Decryptor struct {
	pipe cfbPipe
}

func NewDecryptor(key, iv []byte) (*Decryptor, error) {
	stream, err := symm.NewDecryptStream(key, iv)
	if err != nil {
		return nil, err
	}
	return &Decryptor{pipe: cfbPipe{stream: stream}}, nil
}

func (d *Decryptor) Write(p []byte) (int, error) {
	return d.pipe.write(p)
}

func (d *Decryptor) Read(p []byte) (int, error) {
	return d.pipe.read(p)
}

func (d *Decryptor) ReadLast() ([]byte, error) {
	return d.pipe.readLast()
}

func (d *Decryptor) CloseWrite() error {
	return d.pipe.closeWrite()
}

func (d *Decryptor) Close() error {
	d.pipe.close()
	return nil
}
