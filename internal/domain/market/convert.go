package market

import "math"

// USDToETH converts a USD amount at the given USD-per-ETH rate,
// rounded to 6 decimal places the way prices are displayed.
func USDToETH(usd, usdPerEth float64) float64 {
	if usdPerEth <= 0 {
		return 0
	}
	eth := usd / usdPerEth
	return math.Round(eth*1e6) / 1e6
}
