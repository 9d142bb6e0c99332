package interfaces

type Serializable interface {
	Serialize() ([]byte, error)
}

// KdfBase is implemented by every registered password based key derivation.
// New returns a fresh instance with random parameters; Deserialize restores
// the parameters of an earlier instance so the same key can be derived again.
type KdfBase interface {
	Serializable
	New() (KdfBase, error)
	Deserialize([]byte) (KdfBase, error)
	GenerateKey(password []byte, keyLen int) ([]byte, error)
}
