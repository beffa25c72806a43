package generation

import (
	"strings"
	"sync/atomic"
)

// CredentialPool is an ordered set of credentials for one provider.
// Next rotates through the pool using a cursor shared by every caller
// of the same pool; the cursor wraps modulo the pool size.
type CredentialPool struct {
	credentials []string
	cursor      atomic.Uint64
}

// NewCredentialPool creates a pool from the given credentials, dropping blanks.
func NewCredentialPool(credentials ...string) *CredentialPool {
	cleaned := make([]string, 0, len(credentials))
	for _, c := range credentials {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	return &CredentialPool{credentials: cleaned}
}

// ParseCredentialPool builds a pool from a comma-separated list.
func ParseCredentialPool(list string) *CredentialPool {
	return NewCredentialPool(strings.Split(list, ",")...)
}

// Size returns the number of credentials in the pool.
func (p *CredentialPool) Size() int {
	return len(p.credentials)
}

// Next returns the credential under the cursor and advances the cursor.
// It returns ErrNoCredentials without advancing when the pool is empty.
func (p *CredentialPool) Next() (string, error) {
	if len(p.credentials) == 0 {
		return "", ErrNoCredentials
	}
	n := p.cursor.Add(1) - 1
	return p.credentials[n%uint64(len(p.credentials))], nil
}

// Cursor returns how many credentials have been handed out so far.
func (p *CredentialPool) Cursor() uint64 {
	return p.cursor.Load()
}

// MaskCredential returns a short prefix of a credential suitable for logs.
func MaskCredential(credential string) string {
	const visible = 8
	if len(credential) <= visible {
		return strings.Repeat("*", len(credential))
	}
	return credential[:visible] + "..."
}
