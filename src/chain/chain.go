package chain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// AssetKind is the closed set of supported asset contract kinds.
type AssetKind int8

const (
	KindUnknown AssetKind = 0
	Kind721     AssetKind = 1
	Kind1155    AssetKind = 2
)

// NativeCurrency is the sentinel token address for the chain's native coin.
const NativeCurrency = "0x0000000000000000000000000000000000000000"

// ErrUnsupportedAssetKind is returned when interface introspection matches
// neither supported kind.
var ErrUnsupportedAssetKind = errors.New("unsupported asset kind")

func IsNativeCurrency(token string) bool {
	return token == NativeCurrency
}

// Client is the custody and payment capability of one chain. The engine only
// ever moves assets and funds through it; all marketplace state stays local.
type Client interface {
	// CustodyAccount is the address holding deposited assets and escrowed
	// funds on this chain.
	CustodyAccount() string

	// Classify introspects the asset contract and returns its kind, or
	// ErrUnsupportedAssetKind when introspection matches neither.
	Classify(ctx context.Context, assetAddress string) (AssetKind, error)

	// TransferAsset moves custody of asset units from one holder to another.
	// Quantity is ignored for Kind721.
	TransferAsset(ctx context.Context, kind AssetKind, assetAddress, from, to, assetId string, quantity int64) error

	// PullPayment pulls fungible-token funds from a payer into the engine's
	// custody account. Never called for the native currency: native value
	// arrives attached to the originating call.
	PullPayment(ctx context.Context, token, from string, amount decimal.Decimal) error

	// PushPayment pays out of the engine's custody account. A zero-address
	// token means a raw native-currency transfer; its failure must be
	// reported, not swallowed.
	PushPayment(ctx context.Context, token, to string, amount decimal.Decimal) error
}
