// Package vault is an encrypted at rest key and value store for archive
// passwords and other secrets.
//
// Each secret is encrypted with OpenPGP symmetric encryption using the vault
// passphrase, and saved in a single JSON file keyed by the secret id.
package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

var (
	ErrDecrypt    = errors.New("secret could not be decrypted, the passphrase is wrong")
	ErrID         = errors.New("secret id is empty")
	ErrPassphrase = errors.New("vault passphrase is empty")
)

const (
	fileMode fs.FileMode = 0o600
	dirMode  fs.FileMode = 0o700
	block                = "PGP MESSAGE"
)

// Vault is the store of secrets saved in the named file.
// It is safe for concurrent use within a single process.
type Vault struct {
	name       string
	passphrase []byte
	mu         sync.Mutex
}

// file is the on disk format of the vault.
type file struct {
	Secrets map[string]string `json:"secrets"`
}

// Open returns the vault saved in the named file. The file is created on the
// first Put, so a missing file is an empty vault.
func Open(name, passphrase string) (*Vault, error) {
	if passphrase == "" {
		return nil, ErrPassphrase
	}
	return &Vault{name: name, passphrase: []byte(passphrase)}, nil
}

// Put encrypts and saves the secret with the id.
// Nothing is saved unless remember is true.
func (v *Vault) Put(id, secret string, remember bool) error {
	if !remember {
		return nil
	}
	if id == "" {
		return ErrID
	}
	cipher, err := v.encrypt([]byte(secret))
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	f, err := v.load()
	if err != nil {
		return err
	}
	f.Secrets[id] = cipher
	return v.save(f)
}

// Get returns the decrypted secret with the id.
// False is returned if there is no secret with the id,
// and ErrDecrypt is returned if the passphrase does not match.
func (v *Vault) Get(id string) (string, bool, error) {
	v.mu.Lock()
	f, err := v.load()
	v.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	cipher, ok := f.Secrets[id]
	if !ok {
		return "", false, nil
	}
	b, err := v.decrypt(cipher)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

// Delete removes the secret with the id, it is not an error if it does not exist.
func (v *Vault) Delete(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	f, err := v.load()
	if err != nil {
		return err
	}
	if _, ok := f.Secrets[id]; !ok {
		return nil
	}
	delete(f.Secrets, id)
	return v.save(f)
}

// IDs returns the sorted ids of the saved secrets.
func (v *Vault) IDs() ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	f, err := v.load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(f.Secrets))
	for id := range f.Secrets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (v *Vault) load() (file, error) {
	f := file{Secrets: map[string]string{}}
	b, err := os.ReadFile(v.name)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("vault read %w", err)
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("vault parse %w", err)
	}
	if f.Secrets == nil {
		f.Secrets = map[string]string{}
	}
	return f, nil
}

func (v *Vault) save(f file) error {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("vault marshal %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(v.name), dirMode); err != nil {
		return fmt.Errorf("vault dir %w", err)
	}
	tmp := v.name + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), fileMode); err != nil {
		return fmt.Errorf("vault write %w", err)
	}
	if err := os.Rename(tmp, v.name); err != nil {
		defer os.Remove(tmp)
		return fmt.Errorf("vault rename %w", err)
	}
	return nil
}

// encrypt returns the armored OpenPGP message of the plaintext.
func (v *Vault) encrypt(plain []byte) (string, error) {
	var buf bytes.Buffer
	aw, err := armor.Encode(&buf, block, nil)
	if err != nil {
		return "", fmt.Errorf("vault armor %w", err)
	}
	w, err := openpgp.SymmetricallyEncrypt(aw, v.passphrase, nil, nil)
	if err != nil {
		return "", fmt.Errorf("vault encrypt %w", err)
	}
	if _, err := w.Write(plain); err != nil {
		return "", fmt.Errorf("vault encrypt write %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("vault encrypt close %w", err)
	}
	if err := aw.Close(); err != nil {
		return "", fmt.Errorf("vault armor close %w", err)
	}
	return buf.String(), nil
}

// decrypt returns the plaintext of the armored OpenPGP message.
func (v *Vault) decrypt(cipher string) ([]byte, error) {
	blk, err := armor.Decode(bytes.NewBufferString(cipher))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	tried := false
	prompt := func(_ []openpgp.Key, _ bool) ([]byte, error) {
		if tried {
			return nil, ErrDecrypt
		}
		tried = true
		return v.passphrase, nil
	}
	md, err := openpgp.ReadMessage(blk.Body, nil, prompt, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	b, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	return b, nil
}
