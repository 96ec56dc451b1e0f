package mock

import (
	"context"
	"sync"

	"NFTMarketEngine/src/chain"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Transfer records one asset or payment movement the engine requested.
type Transfer struct {
	Kind     chain.AssetKind
	Token    string
	From     string
	To       string
	AssetId  string
	Quantity int64
	Amount   decimal.Decimal
}

// Client implements chain.Client in memory for tests and demos. Asset kinds
// are registered up front; every transfer is recorded and can be made to fail.
type Client struct {
	mu sync.Mutex

	kinds     map[string]chain.AssetKind
	Assets    []Transfer // custody movements, in order
	Pulls     []Transfer // funds pulled from payers
	Pushes    []Transfer // funds pushed to beneficiaries
	FailPush  bool       // next PushPayment fails
	FailPull  bool       // next PullPayment fails
	FailAsset bool       // next TransferAsset fails
}

func NewClient() *Client {
	return &Client{kinds: make(map[string]chain.AssetKind)}
}

// CustodyAddress is where the mock holds deposited assets.
const CustodyAddress = "0x000000000000000000000000000000000000c0de"

func (c *Client) CustodyAccount() string {
	return CustodyAddress
}

// RegisterAsset fixes the kind Classify reports for an asset contract.
func (c *Client) RegisterAsset(assetAddress string, kind chain.AssetKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kinds[assetAddress] = kind
}

func (c *Client) Classify(ctx context.Context, assetAddress string) (chain.AssetKind, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kind, ok := c.kinds[assetAddress]
	if !ok {
		return chain.KindUnknown, chain.ErrUnsupportedAssetKind
	}
	return kind, nil
}

func (c *Client) TransferAsset(ctx context.Context, kind chain.AssetKind, assetAddress, from, to, assetId string, quantity int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailAsset {
		c.FailAsset = false
		return errors.New("mock asset transfer failed")
	}
	c.Assets = append(c.Assets, Transfer{
		Kind: kind, Token: assetAddress, From: from, To: to, AssetId: assetId, Quantity: quantity,
	})
	return nil
}

func (c *Client) PullPayment(ctx context.Context, token, from string, amount decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailPull {
		c.FailPull = false
		return errors.New("mock payment pull failed")
	}
	c.Pulls = append(c.Pulls, Transfer{Token: token, From: from, Amount: amount})
	return nil
}

func (c *Client) PushPayment(ctx context.Context, token, to string, amount decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailPush {
		c.FailPush = false
		return errors.New("mock payment push failed")
	}
	c.Pushes = append(c.Pushes, Transfer{Token: token, To: to, Amount: amount})
	return nil
}
