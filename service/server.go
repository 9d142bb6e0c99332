// Package service exposes the primitives as a JSON over HTTP API. Byte
// fields travel as URL-safe base64 strings. Rejected input answers 400 and
// failed operations answer 422 with the error text; a failed request never
// carries partial output.
package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-i2p/logger"
	"github.com/rs/cors"

	safecrypto "github.com/overnest/safecrypto-go"
	"github.com/overnest/safecrypto-go/cryptoerr"
)

const (
	domain = "service"

	shutdownTimeout = 5 * time.Second
)

var log = logger.GetGoI2PLogger()

type cryptoData struct {
	Input      string `json:",omitempty"`
	Other      string `json:",omitempty"`
	Key        string `json:",omitempty"`
	IV         string `json:",omitempty"`
	PublicKey  string `json:",omitempty"`
	PrivateKey string `json:",omitempty"`
	Signature  string `json:",omitempty"`
	Salt       string `json:",omitempty"`
	Label      string `json:",omitempty"`
	Pin        uint32 `json:",omitempty"`
	Level      int    `json:",omitempty"`
	Size       int    `json:",omitempty"`
	Bits       int    `json:",omitempty"`
}

type resultData struct {
	Output     string `json:",omitempty"`
	PublicKey  string `json:",omitempty"`
	PrivateKey string `json:",omitempty"`
	Number     string `json:",omitempty"`
	Valid      *bool  `json:",omitempty"`
}

type Server struct {
	cfg     Config
	handler http.Handler
}

func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg}

	mux := http.NewServeMux()
	s.initializeMux(mux)
	s.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Address,
		Handler: s.handler,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", s.cfg.Address).Debug("service listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) initializeMux(mux *http.ServeMux) {
	mux.HandleFunc("POST /keys", s.handle(s.generateKeys))
	mux.HandleFunc("POST /asym/encrypt", s.handle(asymEncrypt))
	mux.HandleFunc("POST /asym/decrypt", s.handle(asymDecrypt))
	mux.HandleFunc("POST /sign", s.handle(asymSign))
	mux.HandleFunc("POST /verify", s.handle(asymVerify))
	mux.HandleFunc("POST /symm/encrypt", s.handle(symmEncrypt))
	mux.HandleFunc("POST /symm/decrypt", s.handle(symmDecrypt))
	mux.HandleFunc("POST /password", s.handle(securePassword))
	mux.HandleFunc("POST /compress", s.handle(compress))
	mux.HandleFunc("POST /uncompress", s.handle(s.uncompress))
	mux.HandleFunc("POST /xor", s.handle(xor))
	mux.HandleFunc("POST /random", s.handle(s.random))
}

type operation func(req *decodedData) (*resultData, error)

// handle decodes the request, runs op and writes either its result or the
// error with the matching status.
func (s *Server) handle(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		reqData := &cryptoData{}
		body := http.MaxBytesReader(w, req.Body, s.cfg.MaxBodyBytes)
		if err := json.NewDecoder(body).Decode(reqData); err != nil {
			writeError(w, req, cryptoerr.Invalid(domain, "decoding request json: %v", err))
			return
		}
		decoded, err := decode(reqData)
		if err != nil {
			writeError(w, req, err)
			return
		}
		resData, err := op(decoded)
		if err != nil {
			writeError(w, req, err)
			return
		}
		resJson, err := json.Marshal(resData)
		if err != nil {
			writeError(w, req, cryptoerr.Primitive(domain, err, "encoding response json"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(resJson)
	}
}

func writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusUnprocessableEntity
	if errors.Is(err, cryptoerr.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	log.WithField("path", req.URL.Path).WithField("status", status).WithError(err).Warn("request failed")
	http.Error(w, err.Error(), status)
}

/*
** Request decoding
 */

type decodedData struct {
	input, other, key, iv  []byte
	publicKey, privateKey  []byte
	signature, salt, label []byte
	pin                    uint32
	level, size, bits      int
}

func decode(reqData *cryptoData) (*decodedData, error) {
	d := &decodedData{
		pin:   reqData.Pin,
		level: reqData.Level,
		size:  reqData.Size,
		bits:  reqData.Bits,
	}
	fields := []struct {
		name string
		src  string
		dst  *[]byte
	}{
		{"Input", reqData.Input, &d.input},
		{"Other", reqData.Other, &d.other},
		{"Key", reqData.Key, &d.key},
		{"IV", reqData.IV, &d.iv},
		{"PublicKey", reqData.PublicKey, &d.publicKey},
		{"PrivateKey", reqData.PrivateKey, &d.privateKey},
		{"Signature", reqData.Signature, &d.signature},
		{"Salt", reqData.Salt, &d.salt},
		{"Label", reqData.Label, &d.label},
	}
	for _, f := range fields {
		data, err := base64.URLEncoding.DecodeString(f.src)
		if err != nil {
			return nil, cryptoerr.Invalid(domain, "decoding base64 %v: %v", f.name, err)
		}
		*f.dst = data
	}
	return d, nil
}

func encode(data []byte) string {
	return base64.URLEncoding.EncodeToString(data)
}

func output(data []byte, err error) (*resultData, error) {
	if err != nil {
		return nil, err
	}
	return &resultData{Output: encode(data)}, nil
}

/*
** Operations
 */

func (s *Server) generateKeys(req *decodedData) (*resultData, error) {
	bits := req.bits
	if bits == 0 {
		bits = s.cfg.DefaultKeySize
	}
	if bits > s.cfg.MaxKeySize {
		return nil, cryptoerr.Invalid(domain, "key size %d above limit %d", bits, s.cfg.MaxKeySize)
	}
	kp := &safecrypto.RsaKeyPair{}
	if err := kp.GenerateKeys(bits); err != nil {
		return nil, err
	}
	return &resultData{
		PrivateKey: encode(kp.PrivateKey()),
		PublicKey:  encode(kp.PublicKey()),
	}, nil
}

func asymEncrypt(req *decodedData) (*resultData, error) {
	return output(safecrypto.AsymEncrypt(req.input, req.publicKey))
}

func asymDecrypt(req *decodedData) (*resultData, error) {
	return output(safecrypto.AsymDecrypt(req.input, req.privateKey))
}

func asymSign(req *decodedData) (*resultData, error) {
	return output(safecrypto.AsymSign(req.input, req.privateKey))
}

func asymVerify(req *decodedData) (*resultData, error) {
	valid := safecrypto.AsymCheckSig(req.input, req.signature, req.publicKey)
	return &resultData{Valid: &valid}, nil
}

func symmEncrypt(req *decodedData) (*resultData, error) {
	return output(safecrypto.SymmEncrypt(req.input, req.key, req.iv))
}

func symmDecrypt(req *decodedData) (*resultData, error) {
	return output(safecrypto.SymmDecrypt(req.input, req.key, req.iv))
}

func securePassword(req *decodedData) (*resultData, error) {
	return output(safecrypto.SecurePassword(req.input, req.salt, req.pin, req.label))
}

func compress(req *decodedData) (*resultData, error) {
	return output(safecrypto.Compress(req.input, req.level))
}

func (s *Server) uncompress(req *decodedData) (*resultData, error) {
	return output(safecrypto.UncompressLimit(req.input, s.cfg.MaxOutputBytes))
}

func xor(req *decodedData) (*resultData, error) {
	return output(safecrypto.XOR(req.input, req.other))
}

// random answers Size random bytes and, when Bits is set, a random number of
// that many bits in decimal.
func (s *Server) random(req *decodedData) (*resultData, error) {
	if req.size < 0 || int64(req.size) > s.cfg.MaxOutputBytes || req.bits < 0 || int64(req.bits) > 8*s.cfg.MaxOutputBytes {
		return nil, cryptoerr.Invalid(domain, "random size %d or bit count %d out of range", req.size, req.bits)
	}
	res := &resultData{Output: encode(safecrypto.RandomBlock(req.size))}
	if req.bits > 0 {
		res.Number = safecrypto.RandomNumber(req.bits).String()
	}
	return res, nil
}
