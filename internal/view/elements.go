package view

import "cryptoDashboard/internal/ports"

// Page element ids and classes the views render into.
const (
	ElementChart         = "chart"
	ElementEvents        = "eventsList"
	ElementMomentum      = "momentumLabel"
	ElementStopLoss      = "stopLossLabel"
	ElementPnlCanvas     = "pnlCanvas"
	ElementAssetValue    = "assetValue"
	ElementAssetDelta    = "assetDelta"
	TimeframeButtonClass = "tf-btn"
)

// CoinElements are the page elements owned by one coin view.
type CoinElements struct {
	Chart    ports.Chart
	Ledger   ports.Ledger
	Momentum ports.Label
	StopLoss ports.Label
	Selector ports.TimeframeSelector
}

// CoinElementsFor resolves the coin view elements on page.
func CoinElementsFor(page ports.Page, timeframes []string) CoinElements {
	return CoinElements{
		Chart:    page.Chart(ElementChart),
		Ledger:   page.Ledger(ElementEvents),
		Momentum: page.Label(ElementMomentum),
		StopLoss: page.Label(ElementStopLoss),
		Selector: page.Selector(TimeframeButtonClass, timeframes),
	}
}

// HomeElements are the page elements owned by the home view.
type HomeElements struct {
	PnlChart   ports.Chart
	AssetValue ports.Label
	AssetDelta ports.Label
}

// HomeElementsFor resolves the home view elements on page.
func HomeElementsFor(page ports.Page) HomeElements {
	return HomeElements{
		PnlChart:   page.Chart(ElementPnlCanvas),
		AssetValue: page.Label(ElementAssetValue),
		AssetDelta: page.Label(ElementAssetDelta),
	}
}
