package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ERC165 interface ids of the two supported asset standards.
var (
	interfaceIdErc721  = [4]byte{0x80, 0xac, 0x58, 0xcd}
	interfaceIdErc1155 = [4]byte{0xd9, 0xb6, 0x7a, 0x26}
)

const (
	erc165AbiJson  = `[{"name":"supportsInterface","type":"function","stateMutability":"view","inputs":[{"name":"interfaceId","type":"bytes4"}],"outputs":[{"name":"","type":"bool"}]}]`
	erc721AbiJson  = `[{"name":"safeTransferFrom","type":"function","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]}]`
	erc1155AbiJson = `[{"name":"safeTransferFrom","type":"function","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"id","type":"uint256"},{"name":"amount","type":"uint256"},{"name":"data","type":"bytes"}],"outputs":[]}]`
	erc20AbiJson   = `[{"name":"transfer","type":"function","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},{"name":"transferFrom","type":"function","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}]`
)

var (
	erc165Abi  abi.ABI
	erc721Abi  abi.ABI
	erc1155Abi abi.ABI
	erc20Abi   abi.ABI
)

func init() {
	erc165Abi = mustParseAbi(erc165AbiJson)
	erc721Abi = mustParseAbi(erc721AbiJson)
	erc1155Abi = mustParseAbi(erc1155AbiJson)
	erc20Abi = mustParseAbi(erc20AbiJson)
}

func mustParseAbi(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}

// EvmClient drives custody transfers on one EVM chain. The operator account
// holds the marketplace's custody approvals and signs every transfer.
type EvmClient struct {
	name         string
	chainId      *big.Int
	client       *ethclient.Client
	operatorKey  *ecdsa.PrivateKey
	operatorAddr common.Address
}

func NewEvmClient(ctx context.Context, endpoint, name string, chainId int, operatorKeyHex string) (*EvmClient, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed on dial chain endpoint")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(operatorKeyHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse operator key")
	}
	return &EvmClient{
		name:         name,
		chainId:      big.NewInt(int64(chainId)),
		client:       client,
		operatorKey:  key,
		operatorAddr: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (e *EvmClient) CustodyAccount() string {
	return strings.ToLower(e.operatorAddr.Hex())
}

func (e *EvmClient) Classify(ctx context.Context, assetAddress string) (AssetKind, error) {
	is721, err := e.supportsInterface(ctx, assetAddress, interfaceIdErc721)
	if err != nil {
		return KindUnknown, err
	}
	if is721 {
		return Kind721, nil
	}
	is1155, err := e.supportsInterface(ctx, assetAddress, interfaceIdErc1155)
	if err != nil {
		return KindUnknown, err
	}
	if is1155 {
		return Kind1155, nil
	}
	return KindUnknown, ErrUnsupportedAssetKind
}

func (e *EvmClient) supportsInterface(ctx context.Context, assetAddress string, id [4]byte) (bool, error) {
	contract := common.HexToAddress(assetAddress)
	input, err := erc165Abi.Pack("supportsInterface", id)
	if err != nil {
		return false, errors.Wrap(err, "failed on pack supportsInterface call")
	}
	out, err := e.client.CallContract(ctx, callMsg(contract, input), nil)
	if err != nil {
		// A contract without ERC165 reverts here. Introspection being
		// inconclusive is not a transport failure.
		return false, nil
	}
	results, err := erc165Abi.Unpack("supportsInterface", out)
	if err != nil || len(results) != 1 {
		return false, nil
	}
	supported, ok := results[0].(bool)
	return ok && supported, nil
}

func (e *EvmClient) TransferAsset(ctx context.Context, kind AssetKind, assetAddress, from, to, assetId string, quantity int64) error {
	id, ok := new(big.Int).SetString(assetId, 10)
	if !ok {
		return errors.Errorf("invalid asset id: %s", assetId)
	}
	var input []byte
	var err error
	switch kind {
	case Kind721:
		input, err = erc721Abi.Pack("safeTransferFrom",
			common.HexToAddress(from), common.HexToAddress(to), id)
	case Kind1155:
		input, err = erc1155Abi.Pack("safeTransferFrom",
			common.HexToAddress(from), common.HexToAddress(to), id, big.NewInt(quantity), []byte{})
	default:
		return ErrUnsupportedAssetKind
	}
	if err != nil {
		return errors.Wrap(err, "failed on pack asset transfer call")
	}
	return e.sendAndWait(ctx, common.HexToAddress(assetAddress), input, nil)
}

func (e *EvmClient) PullPayment(ctx context.Context, token, from string, amount decimal.Decimal) error {
	input, err := erc20Abi.Pack("transferFrom",
		common.HexToAddress(from), e.operatorAddr, amount.BigInt())
	if err != nil {
		return errors.Wrap(err, "failed on pack transferFrom call")
	}
	return e.sendAndWait(ctx, common.HexToAddress(token), input, nil)
}

func (e *EvmClient) PushPayment(ctx context.Context, token, to string, amount decimal.Decimal) error {
	if IsNativeCurrency(token) {
		// Raw value transfer; the receipt status is the success report.
		return e.sendAndWait(ctx, common.HexToAddress(to), nil, amount.BigInt())
	}
	input, err := erc20Abi.Pack("transfer", common.HexToAddress(to), amount.BigInt())
	if err != nil {
		return errors.Wrap(err, "failed on pack transfer call")
	}
	return e.sendAndWait(ctx, common.HexToAddress(token), input, nil)
}

func (e *EvmClient) sendAndWait(ctx context.Context, to common.Address, input []byte, value *big.Int) error {
	nonce, err := e.client.PendingNonceAt(ctx, e.operatorAddr)
	if err != nil {
		return errors.Wrap(err, "failed on fetch operator nonce")
	}
	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return errors.Wrap(err, "failed on suggest gas price")
	}
	if value == nil {
		value = big.NewInt(0)
	}
	gasLimit, err := e.client.EstimateGas(ctx, callMsgWithValue(e.operatorAddr, to, input, value))
	if err != nil {
		return errors.Wrap(err, "failed on estimate gas")
	}
	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, input)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(e.chainId), e.operatorKey)
	if err != nil {
		return errors.Wrap(err, "failed on sign transaction")
	}
	if err := e.client.SendTransaction(ctx, signed); err != nil {
		return errors.Wrap(err, "failed on send transaction")
	}
	receipt, err := bind.WaitMined(ctx, e.client, signed)
	if err != nil {
		return errors.Wrap(err, "failed on wait transaction mined")
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return errors.Errorf("transaction reverted: %s", signed.Hash().Hex())
	}
	return nil
}

func callMsg(to common.Address, input []byte) ethereum.CallMsg {
	return ethereum.CallMsg{To: &to, Data: input}
}

func callMsgWithValue(from, to common.Address, input []byte, value *big.Int) ethereum.CallMsg {
	return ethereum.CallMsg{From: from, To: &to, Data: input, Value: value}
}
