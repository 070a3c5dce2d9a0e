package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/crypto/hkdf"
)

const (
	storeKeySize   = 32
	storeNonceSize = 12
	// storeKeyInfo domain-separates the storage-state key from any other
	// use of the master key.
	storeKeyInfo = "quorum-e2e:session-state:v1"
)

// Store persists Playwright storage state (cookies, local storage) so later
// runs skip the login flow. With a master key the file is sealed with
// AES-256-GCM; without one it is written as plain JSON.
type Store struct {
	key []byte // nil means plaintext
}

// NewStore creates a store. masterKeyHex is 64 hex characters or empty.
func NewStore(masterKeyHex string) (*Store, error) {
	if masterKeyHex == "" {
		return &Store{}, nil
	}
	master, err := hex.DecodeString(masterKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}
	if len(master) != storeKeySize {
		return nil, fmt.Errorf("master key must be %d bytes, got %d", storeKeySize, len(master))
	}

	reader := hkdf.New(sha256.New, master, nil, []byte(storeKeyInfo))
	key := make([]byte, storeKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive state key: %w", err)
	}
	return &Store{key: key}, nil
}

// Encrypted reports whether state files are sealed.
func (st *Store) Encrypted() bool {
	return st.key != nil
}

// Save captures the context's storage state into path.
func (st *Store) Save(browserCtx playwright.BrowserContext, path string) error {
	state, err := browserCtx.StorageState()
	if err != nil {
		return fmt.Errorf("capture storage state: %w", err)
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal storage state: %w", err)
	}
	sealed, err := st.seal(raw)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, sealed, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	log.Info("saved session state", "path", path, "encrypted", st.Encrypted())
	return nil
}

// ContextOptions loads a saved state file into browser context options.
func (st *Store) ContextOptions(path string) (playwright.BrowserNewContextOptions, error) {
	sealed, err := os.ReadFile(path)
	if err != nil {
		return playwright.BrowserNewContextOptions{}, fmt.Errorf("read state file: %w", err)
	}
	raw, err := st.open(sealed)
	if err != nil {
		return playwright.BrowserNewContextOptions{}, err
	}
	var state playwright.OptionalStorageState
	if err := json.Unmarshal(raw, &state); err != nil {
		return playwright.BrowserNewContextOptions{}, fmt.Errorf("unmarshal storage state: %w", err)
	}
	return playwright.BrowserNewContextOptions{StorageState: &state}, nil
}

// seal encrypts data as nonce || ciphertext; plaintext mode passes through.
func (st *Store) seal(data []byte) ([]byte, error) {
	if st.key == nil {
		return data, nil
	}
	block, err := aes.NewCipher(st.key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init GCM: %w", err)
	}
	nonce := make([]byte, storeNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

func (st *Store) open(sealed []byte) ([]byte, error) {
	if st.key == nil {
		return sealed, nil
	}
	if len(sealed) < storeNonceSize {
		return nil, fmt.Errorf("sealed state too short: %d bytes", len(sealed))
	}
	block, err := aes.NewCipher(st.key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init GCM: %w", err)
	}
	nonce, ciphertext := sealed[:storeNonceSize], sealed[storeNonceSize:]
	data, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("unseal state (wrong master key?): %w", err)
	}
	return data, nil
}
