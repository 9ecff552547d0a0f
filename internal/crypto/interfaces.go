package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyChain is responsible for all password-derived key management in the
// zero-knowledge scheme. It knows nothing about the network, the database or
// users; its only job is to generate and protect keys.
//
// Scheme:
//
//	Salt, DEK = GenerateEncryptionSalt() + GenerateDEK()   (setup)
//	KEK       = DeriveKEK(password, salt)                  (slow, Argon2id)
//	EncDEK    = WrapDEK(DEK, KEK)                          (stored server-side)
//	Verifier  = VerifierHash(KEK)                          (stored device-side)
type KeyChain interface {
	// GenerateEncryptionSalt generates a random 16-byte salt. The salt is
	// not a secret; it is stored in the vault configuration so that equal
	// passwords derive different KEKs.
	GenerateEncryptionSalt() ([]byte, error)

	// GenerateDEK generates the random 256-bit vault data-encryption key.
	// The DEK encrypts all field data and never leaves process memory in
	// the clear.
	GenerateDEK() ([]byte, error)

	// DeriveKEK derives the key-encryption key from the master password
	// and salt via Argon2id. Deliberately slow; callers must budget for a
	// multi-hundred-millisecond call and must not retry automatically.
	DeriveKEK(masterPassword string, salt []byte) []byte

	// WrapDEK encrypts the DEK under the KEK with AES-256-GCM. The result
	// (nonce ‖ ciphertext) is safe to store server-side: without the KEK
	// it is random noise.
	WrapDEK(dek, kek []byte) ([]byte, error)

	// UnwrapDEK reverses WrapDEK. An authentication failure almost always
	// means a wrong master password produced a wrong KEK; it is surfaced
	// as ErrCiphertextAuthentication.
	UnwrapDEK(wrappedDEK, kek []byte) ([]byte, error)

	// VerifierHash computes the one-way, device-local verification
	// artifact of the KEK. It is domain-separated from the KEK itself and
	// never transmitted or stored server-side.
	VerifierHash(kek []byte) []byte
}

// FieldCipher performs per-field authenticated encryption under a live
// session key. Fields are independent: one corrupted field never prevents
// the rest of a record from decrypting.
type FieldCipher interface {
	// EncryptField encrypts one plaintext field value. The output is a
	// Base64 (standard encoding) string of the blob: nonce ‖ ciphertext.
	EncryptField(plaintext string, key *SessionKey) (string, error)

	// DecryptField decrypts one field value produced by EncryptField.
	// Tampering or a wrong key yields ErrCiphertextAuthentication, never
	// garbage plaintext.
	DecryptField(ciphertext string, key *SessionKey) (string, error)

	// DecryptRecord decrypts a whole record of named fields, isolating
	// per-field failures: successfully decrypted fields are returned in
	// the map and the names of failed fields are returned separately.
	DecryptRecord(fields map[string]string, key *SessionKey) (map[string]string, []string, error)
}
