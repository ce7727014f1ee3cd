// Package tinkfpe registers NIST FPE with Tink's registry so keysets can be
// generated, stored, and loaded using Tink's usual keyset.Handle machinery
// instead of passing raw keys around.
package tinkfpe

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/proto/tink_go_proto"
	"google.golang.org/protobuf/proto"

	fpe "github.com/nist-fpe/gofpe"
)

// FPEKeyTypeURL is the type URL this package registers with Tink's registry.
const FPEKeyTypeURL = "type.googleapis.com/nistfpe.FpeKey"

// KeyManager implements registry.KeyManager for NIST FPE keys, so FPE
// primitives can be produced from a keyset.Handle the same way any other
// Tink primitive is.
type KeyManager struct{}

// NewKeyManager returns a new FPE key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// RegisterKeyManager registers a KeyManager with Tink's global registry. It
// is safe to call more than once: a "already registered" error from Tink is
// treated as success.
func RegisterKeyManager() error {
	err := registry.RegisterKeyManager(NewKeyManager())
	if err != nil && !isAlreadyRegistered(err) {
		return err
	}
	return nil
}

func isAlreadyRegistered(err error) bool {
	// Tink's registry returns a plain *errors.errorString here; matching on
	// the message substring is the only option it gives us.
	return err != nil && strings.Contains(err.Error(), "already registered")
}

// Primitive decodes serializedKey (a keyBlob) and returns an initialized,
// ready-to-use *fpe.Context.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	blob, err := decodeKeyBlob(serializedKey)
	if err != nil {
		return nil, err
	}
	ctx := fpe.NewContext()
	if err := ctx.Init(blob.mode, blob.cipherKind, blob.key, blob.radix); err != nil {
		return nil, fmt.Errorf("tinkfpe: %w", err)
	}
	return ctx, nil
}

// DoesSupport reports whether typeURL is this manager's FPE key type.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == FPEKeyTypeURL
}

// TypeURL returns this manager's key type URL.
func (km *KeyManager) TypeURL() string {
	return FPEKeyTypeURL
}

// NewKey is unsupported: Tink calls it when it needs a proto.Message key
// representation, which this flat-byte-layout key type does not have. Use
// NewKeyData, which Tink's keyset generation path calls instead.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	return nil, fmt.Errorf("tinkfpe: NewKey is not supported, use NewKeyData")
}

// NewKeyData generates a random key of the length serializedKeyTemplate's
// cipher kind requires, and returns it wrapped in a KeyData blob.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	blob, err := decodeKeyBlob(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}
	keyLen := blob.cipherKind.KeyLen()
	if keyLen == 0 {
		return nil, fmt.Errorf("tinkfpe: unsupported cipher kind %d in template", blob.cipherKind)
	}
	blob.key = make([]byte, keyLen)
	if _, err := rand.Read(blob.key); err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to generate random key: %w", err)
	}

	return &tink_go_proto.KeyData{
		TypeUrl:         FPEKeyTypeURL,
		Value:           encodeKeyBlob(blob),
		KeyMaterialType: 2, // SYMMETRIC
	}, nil
}

var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate builds a key template for mode/cipherKind/radix. Generating a
// keyset with this template (keyset.NewHandle(tinkfpe.KeyTemplate(...)))
// produces a random key of the size cipherKind requires.
func KeyTemplate(mode fpe.Mode, cipherKind fpe.CipherKind, radix uint32) *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          FPEKeyTypeURL,
		Value:            encodeKeyBlob(keyBlob{mode: mode, cipherKind: cipherKind, radix: radix}),
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}
