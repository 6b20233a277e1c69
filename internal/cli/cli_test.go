package cli

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulln0ne/rdx-dex/internal/form"
	"github.com/nulln0ne/rdx-dex/internal/quote"
	"github.com/nulln0ne/rdx-dex/internal/token"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteSwap(t *testing.T) {
	out, err := execute(t, "quote", "swap", "--reserve-in", "1000", "--reserve-out", "2000", "--amount", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "amount out:     181.000000 (181 units)")
	assert.Contains(t, out, "exact out:      181.818182 units")
	assert.Contains(t, out, "minimum out:    171.000000 (500 bps)")
}

func TestQuoteSwap_InvalidAmount(t *testing.T) {
	_, err := execute(t, "quote", "swap", "--reserve-in", "1000", "--reserve-out", "2000", "--amount", "-1")
	assert.ErrorIs(t, err, quote.ErrInvalidAmount)

	_, err = execute(t, "quote", "swap", "--reserve-in", "x", "--reserve-out", "2000", "--amount", "1")
	assert.ErrorIs(t, err, quote.ErrInvalidAmount)
}

func TestQuoteAdd(t *testing.T) {
	out, err := execute(t, "quote", "add", "--reserve-a", "500", "--reserve-b", "1000", "--amount", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "amount b:       20.000000 (20 units)")

	out, err = execute(t, "quote", "add", "--reserve-a", "0", "--reserve-b", "0", "--amount", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "pool is empty")
}

func TestQuoteRemove(t *testing.T) {
	out, err := execute(t, "quote", "remove", "--lp", "50", "--lp-balance", "100", "--lp-supply", "1000", "--reserve-a", "500", "--reserve-b", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "receive a:      25.000000 (25 units)")
	assert.Contains(t, out, "receive b:      50.000000 (50 units)")

	_, err = execute(t, "quote", "remove", "--lp", "150", "--lp-balance", "100", "--lp-supply", "1000", "--reserve-a", "500", "--reserve-b", "1000")
	assert.ErrorIs(t, err, quote.ErrInsufficientBalance)
}

func TestTokens(t *testing.T) {
	out, err := execute(t, "tokens", "rd", "--exclude", "RDA,RDF")
	require.NoError(t, err)
	assert.NotContains(t, out, "RDA")
	assert.Contains(t, out, "RDC")
}

type staticLoader struct {
	snap form.Snapshot
}

func (l staticLoader) Load(ctx context.Context, pair token.Pair) (form.Snapshot, error) {
	s := l.snap
	s.Pair = pair
	return s, nil
}

func TestRunSession(t *testing.T) {
	pair := token.Pair{
		A:  token.Descriptor{Address: common.HexToAddress("0xaa"), Name: "RDA"},
		B:  token.Descriptor{Address: common.HexToAddress("0xbb"), Name: "RDB"},
		LP: token.Descriptor{Address: common.HexToAddress("0xab"), Name: "RDA-RDB LP"},
	}
	loader := staticLoader{snap: form.Snapshot{
		ReserveA:  big.NewInt(500),
		ReserveB:  big.NewInt(1000),
		LPSupply:  big.NewInt(1000),
		BalanceA:  big.NewInt(100),
		BalanceB:  big.NewInt(1000),
		BalanceLP: big.NewInt(100),
	}}

	var out bytes.Buffer
	err := runSession(context.Background(), &out, form.NewSession(loader, 500), pair, "10", 0)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "swap:           10 RDA -> 19.000000 RDB, min 18.000000 [Swap]")
	assert.Contains(t, out.String(), "supply:         10.000000 RDA + 20.000000 RDB [Supply]")
	assert.Contains(t, out.String(), "remove all LP:  50.000000 RDA + 100.000000 RDB [Remove]")

	out.Reset()
	err = runSession(context.Background(), &out, form.NewSession(loader, 500), pair, "", 50)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "shortcut:       50%")
	assert.Contains(t, out.String(), "swap:           50 RDA")
	assert.Contains(t, out.String(), "supply:         50.000000 RDA + 100.000000 RDB [Supply]")

	out.Reset()
	err = runSession(context.Background(), &out, form.NewSession(loader, 500), pair, "", 40)
	assert.ErrorContains(t, err, "--percent")
	assert.Empty(t, out.String())
}
