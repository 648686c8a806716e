package dexscreener

import (
	"strconv"

	"dexwatch/internal/domain"
)

// searchResponse is the feed's /search payload.
type searchResponse struct {
	Pairs []wirePair `json:"pairs"`
}

// wirePair mirrors the feed's pair object. Numeric fields the feed
// omits decode to their zero values.
type wirePair struct {
	ChainID       string          `json:"chainId"`
	PairAddress   string          `json:"pairAddress"`
	BaseToken     wireToken       `json:"baseToken"`
	QuoteToken    wireToken       `json:"quoteToken"`
	PriceUsd      string          `json:"priceUsd"`
	Txns          wireTxns        `json:"txns"`
	Volume        wireVolume      `json:"volume"`
	Liquidity     wireLiquidity   `json:"liquidity"`
	PairCreatedAt int64           `json:"pairCreatedAt"` // Unix milliseconds
	Holders       []wireHolder    `json:"holders"`
	Maker         wireMaker       `json:"maker"`
}

type wireToken struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
}

type wireTxns struct {
	M5  wireBuysSells `json:"m5"`
	H1  wireBuysSells `json:"h1"`
	H24 wireBuysSells `json:"h24"`
}

type wireBuysSells struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

type wireVolume struct {
	H1  float64 `json:"h1"`
	H24 float64 `json:"h24"`
}

type wireLiquidity struct {
	Usd float64 `json:"usd"`
}

type wireHolder struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
}

type wireMaker struct {
	Address string `json:"address"`
}

// toDomain converts a wire pair to a PairRecord. Unparseable prices
// become zero, matching the feed's own omission semantics.
func (p *wirePair) toDomain() *domain.PairRecord {
	rec := &domain.PairRecord{
		PairAddress:  p.PairAddress,
		ChainID:      p.ChainID,
		Symbol:       p.BaseToken.Symbol,
		LiquidityUSD: p.Liquidity.Usd,
		Volume24h:    p.Volume.H24,
		PriceUSD:     parseFloat(p.PriceUsd),
		TxCount24h:   p.Txns.H24.Buys + p.Txns.H24.Sells,
		CreatedAt:    p.PairCreatedAt,
		DevAddress:   p.Maker.Address,
	}
	for _, h := range p.Holders {
		rec.Holders = append(rec.Holders, domain.Holder{Address: h.Address, Amount: h.Amount})
	}
	return rec
}

func parseFloat(val string) float64 {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return f
}
