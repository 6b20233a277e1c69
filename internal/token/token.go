// Package token describes the tokens and pairs the forms trade.
package token

import (
	"errors"
	"slices"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrUnknownToken = errors.New("unknown token")
	ErrSameToken    = errors.New("pair tokens must differ")
)

// Descriptor identifies a token. Address is the zero address until the
// token has been selected from a registry.
type Descriptor struct {
	Address common.Address `json:"address"`
	Name    string         `json:"name"`
	Logo    string         `json:"logo,omitempty"`
}

// Selected reports whether the descriptor points at a contract.
func (d Descriptor) Selected() bool {
	return d.Address != (common.Address{})
}

// Pair is two tokens plus, once resolved through the factory, the liquidity
// token of their pool.
type Pair struct {
	A  Descriptor `json:"token_a"`
	B  Descriptor `json:"token_b"`
	LP Descriptor `json:"token_lp"`
}

// NewPair validates that a and b are distinct selected tokens.
func NewPair(a, b Descriptor) (Pair, error) {
	if !a.Selected() || !b.Selected() {
		return Pair{}, ErrUnknownToken
	}
	if a.Address == b.Address {
		return Pair{}, ErrSameToken
	}
	return Pair{A: a, B: b}, nil
}

// Reversed swaps the roles of A and B.
func (p Pair) Reversed() Pair {
	return Pair{A: p.B, B: p.A, LP: p.LP}
}

// Registry is an ordered, immutable token list.
type Registry struct {
	tokens []Descriptor
}

func NewRegistry(tokens []Descriptor) *Registry {
	return &Registry{tokens: slices.Clone(tokens)}
}

// DefaultRegistry returns the tokens deployed for the RDX test network.
func DefaultRegistry() *Registry {
	return NewRegistry([]Descriptor{
		{Address: common.HexToAddress("0xf3b2b3a36f3d54543ea4b9c69fbe405b55fc9201"), Name: "RDA", Logo: "usdc.png"},
		{Address: common.HexToAddress("0x774da806ed54186490ad70a56dad7937d6579869"), Name: "RDB", Logo: "usdc.png"},
		{Address: common.HexToAddress("0x477663aa6652d8511f11ece012dc6918cd180426"), Name: "RDC", Logo: "usdc.png"},
		{Address: common.HexToAddress("0x80a57f6c181ab3fbc58037ae78afd2d40fcc26ac"), Name: "RDD", Logo: "usdc.png"},
		{Address: common.HexToAddress("0x9e61a8ea7ce2b073fc72a03ecceb285571721e55"), Name: "RDE", Logo: "usdc.png"},
		{Address: common.HexToAddress("0x1bd4d9cc02634b5d2379ffd793daab7f46b7bbfa"), Name: "RDF", Logo: "usdc.png"},
	})
}

func (r *Registry) All() []Descriptor {
	return slices.Clone(r.tokens)
}

// Find resolves a token by name (case-insensitive) or by hex address.
func (r *Registry) Find(nameOrAddress string) (Descriptor, error) {
	key := strings.TrimSpace(nameOrAddress)
	if common.IsHexAddress(key) {
		addr := common.HexToAddress(key)
		if d, ok := slice.FindBy(r.tokens, func(_ int, d Descriptor) bool { return d.Address == addr }); ok {
			return d, nil
		}
		return Descriptor{Address: addr, Name: addr.Hex()}, nil
	}
	if d, ok := slice.FindBy(r.tokens, func(_ int, d Descriptor) bool { return strings.EqualFold(d.Name, key) }); ok {
		return d, nil
	}
	return Descriptor{}, ErrUnknownToken
}

// Search returns the tokens whose name contains query, ignoring case, minus
// the names listed in exclude. An empty query matches everything.
func (r *Registry) Search(query string, exclude []string) []Descriptor {
	q := strings.ToLower(strings.TrimSpace(query))
	return slice.Filter(r.tokens, func(_ int, d Descriptor) bool {
		if slice.ContainBy(exclude, func(name string) bool { return strings.EqualFold(name, d.Name) }) {
			return false
		}
		return q == "" || strings.Contains(strings.ToLower(d.Name), q)
	})
}
