package wallet

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// well-known development key (hardhat account #0)
const devKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type fixedChain struct{ id int64 }

func (f fixedChain) ChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(f.id), nil
}

func TestKeyWallet(t *testing.T) {
	w, err := NewKeyWallet(devKey, big.NewInt(31337), fixedChain{31337})
	require.NoError(t, err)

	acct, ok := w.Account(context.Background())
	require.True(t, ok)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), acct)

	signer, err := w.RequestSigner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, acct, signer.Address())

	to := common.HexToAddress("0x01")
	tx := types.NewTx(&types.LegacyTx{Nonce: 1, To: &to, Gas: 21000, GasPrice: big.NewInt(1), Value: big.NewInt(0)})
	signed, err := signer.SignTx(tx, w.ChainID())
	require.NoError(t, err)
	from, err := types.Sender(types.LatestSignerForChainID(w.ChainID()), signed)
	require.NoError(t, err)
	assert.Equal(t, acct, from)

	assert.NoError(t, w.SwitchToCorrectNetwork(context.Background()))
}

func TestKeyWallet_ReadOnly(t *testing.T) {
	w, err := NewKeyWallet("", big.NewInt(1), fixedChain{1})
	require.NoError(t, err)

	_, ok := w.Account(context.Background())
	assert.False(t, ok)
	_, err = w.RequestSigner(context.Background())
	assert.ErrorIs(t, err, ErrNoSigner)
}

func TestKeyWallet_WrongNetwork(t *testing.T) {
	w, err := NewKeyWallet("", big.NewInt(97), fixedChain{1})
	require.NoError(t, err)
	assert.ErrorIs(t, w.SwitchToCorrectNetwork(context.Background()), ErrWrongNetwork)
}

func TestKeyWallet_BadKey(t *testing.T) {
	_, err := NewKeyWallet("zz", big.NewInt(1), fixedChain{1})
	assert.Error(t, err)
}
