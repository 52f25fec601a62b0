package catalog

import (
	"errors"
	"fmt"

	"atelier/internal/order"
)

// The catalog is fixed: two sections, each a flat list of numbered designs.
// Kaptans are priced per sleeve variant; a zero price means that variant is
// not offered for the design. Agbadas have a single price and no variant.

// Kaptan is a kaptan design with per-sleeve pricing.
type Kaptan struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	PriceShort int64  `json:"price_short"`
	PriceLong  int64  `json:"price_long,omitempty"`
}

// Agbada is an agbada design at a flat price.
type Agbada struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Price int64  `json:"price"`
}

var ErrUnknownItem = errors.New("unknown catalog item")

// VariantUnavailableError reports which sleeve option a design does not offer.
type VariantUnavailableError struct {
	Sleeve string
}

func (e *VariantUnavailableError) Error() string {
	return fmt.Sprintf("%s sleeve is not available for this design", e.Sleeve)
}

// Kaptans returns the kaptan section of the catalog.
func Kaptans() []Kaptan { return kaptans }

// Agbadas returns the agbada section of the catalog.
func Agbadas() []Agbada { return agbadas }

// Resolve maps a (productType, itemID, sleeve) selection to the item
// reference and price the draft will carry. An unavailable or unpriced
// variant is rejected with a VariantUnavailableError naming the option.
func Resolve(productType order.ProductType, itemID int, sleeve string) (order.ItemRef, int64, error) {
	switch productType {
	case order.ProductKaptan:
		return resolveKaptan(itemID, sleeve)
	case order.ProductAgbada:
		return resolveAgbada(itemID)
	default:
		return order.ItemRef{}, 0, fmt.Errorf("%w: product type %q", ErrUnknownItem, productType)
	}
}

func resolveKaptan(itemID int, sleeve string) (order.ItemRef, int64, error) {
	for _, k := range kaptans {
		if k.ID != itemID {
			continue
		}
		ref := order.ItemRef{
			ProductType: order.ProductKaptan,
			ItemID:      k.ID,
			Name:        k.Name,
			Image:       k.Image,
		}
		var price int64
		switch sleeve {
		case "short":
			price = k.PriceShort
		case "long":
			price = k.PriceLong
		default:
			return order.ItemRef{}, 0, fmt.Errorf("%w: sleeve %q", ErrUnknownItem, sleeve)
		}
		if price <= 0 {
			return order.ItemRef{}, 0, &VariantUnavailableError{Sleeve: sleeve}
		}
		return ref, price, nil
	}
	return order.ItemRef{}, 0, fmt.Errorf("%w: kaptan %d", ErrUnknownItem, itemID)
}

func resolveAgbada(itemID int) (order.ItemRef, int64, error) {
	for _, a := range agbadas {
		if a.ID != itemID {
			continue
		}
		if a.Price <= 0 {
			return order.ItemRef{}, 0, &VariantUnavailableError{Sleeve: "standard"}
		}
		return order.ItemRef{
			ProductType: order.ProductAgbada,
			ItemID:      a.ID,
			Name:        a.Name,
			Image:       a.Image,
		}, a.Price, nil
	}
	return order.ItemRef{}, 0, fmt.Errorf("%w: agbada %d", ErrUnknownItem, itemID)
}

var kaptans = []Kaptan{
	{ID: 1, Name: "Kaptan 1", Image: "https://i.imgur.com/fsdYxPK.jpeg", PriceShort: 17000, PriceLong: 20000},
	{ID: 2, Name: "Kaptan 2", Image: "https://i.imgur.com/PJ1LnvI.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 3, Name: "Kaptan 3", Image: "https://i.imgur.com/nZgbZfT.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 4, Name: "Kaptan 4", Image: "https://i.imgur.com/pa977uJ.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 5, Name: "Kaptan 5", Image: "https://i.imgur.com/N8pFXuw.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 6, Name: "Kaptan 6", Image: "https://i.imgur.com/fGR07Yb.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 7, Name: "Kaptan 7", Image: "https://i.imgur.com/zNFZnyU.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 8, Name: "Kaptan 8", Image: "https://i.imgur.com/WMPnozi.jpeg", PriceShort: 17000, PriceLong: 20000},
	{ID: 9, Name: "Kaptan 9", Image: "https://i.imgur.com/XCkBqyq.jpeg", PriceShort: 17000},
	{ID: 10, Name: "Kaptan 10", Image: "https://i.imgur.com/8UFOt2B.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 11, Name: "Kaptan 11", Image: "https://i.imgur.com/38AevD5.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 12, Name: "Kaptan 12", Image: "https://i.imgur.com/72prNqt.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 13, Name: "Kaptan 13", Image: "https://i.imgur.com/wUHIw2a.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 14, Name: "Kaptan 14", Image: "https://i.imgur.com/CUPoMgY.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 15, Name: "Kaptan 15", Image: "https://i.imgur.com/rBmS3QW.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 16, Name: "Kaptan 16", Image: "https://i.imgur.com/kz1WBoF.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 17, Name: "Kaptan 17", Image: "https://i.imgur.com/dIPts0g.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 18, Name: "Kaptan 18", Image: "https://i.imgur.com/IKZG8Dt.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 19, Name: "Kaptan 19", Image: "https://i.imgur.com/gKblrBD.jpeg", PriceShort: 17000},
	{ID: 20, Name: "Kaptan 20", Image: "https://i.imgur.com/V7KW32J.jpeg", PriceShort: 20000},
	{ID: 21, Name: "Kaptan 21", Image: "https://i.imgur.com/j7nNDN8.jpeg", PriceShort: 17000},
	{ID: 22, Name: "Kaptan 22", Image: "https://i.imgur.com/8rcURfB.jpeg", PriceShort: 20000},
	{ID: 23, Name: "Kaptan 23", Image: "https://i.imgur.com/xpQVRTA.jpeg", PriceShort: 17000},
	{ID: 24, Name: "Kaptan 24", Image: "https://i.imgur.com/afTCoMM.jpeg", PriceShort: 17000, PriceLong: 20000},
	{ID: 25, Name: "Kaptan 25", Image: "https://i.imgur.com/VnezYwh.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 26, Name: "Kaptan 26", Image: "https://i.imgur.com/RaTs4CA.jpeg", PriceShort: 17000, PriceLong: 20000},
	{ID: 27, Name: "Kaptan 27", Image: "https://i.imgur.com/AMIAksb.jpeg", PriceShort: 17000, PriceLong: 20000},
	{ID: 28, Name: "Kaptan 28", Image: "https://i.imgur.com/UO7pQYl.jpeg", PriceShort: 17000, PriceLong: 20000},
	{ID: 29, Name: "Kaptan 29", Image: "https://i.imgur.com/K9Q0AxJ.jpeg", PriceShort: 17000, PriceLong: 20000},
	{ID: 30, Name: "Kaptan 30", Image: "https://i.imgur.com/dp3yYdh.jpeg", PriceShort: 17000, PriceLong: 20000},
	{ID: 31, Name: "Kaptan 31", Image: "https://i.imgur.com/FYR1WTJ.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 32, Name: "Kaptan 32", Image: "https://i.imgur.com/NyQJ6oF.jpeg", PriceShort: 0, PriceLong: 28000}, // long sleeve only
	{ID: 33, Name: "Kaptan 33", Image: "https://i.imgur.com/D2Ad3x4.jpeg", PriceShort: 21000, PriceLong: 26000},
	{ID: 34, Name: "Kaptan 34", Image: "https://i.imgur.com/pKYZmdb.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 35, Name: "Kaptan 35", Image: "https://i.imgur.com/c8dZrhp.jpeg", PriceShort: 20000, PriceLong: 25000},
	{ID: 36, Name: "Kaptan 36", Image: "https://i.imgur.com/ES2L878.jpeg", PriceShort: 20000, PriceLong: 25000},
}

var agbadas = []Agbada{
	{ID: 1, Name: "Agbada 1", Image: "https://i.imgur.com/sI4O9jO.jpeg", Price: 35000},
	{ID: 2, Name: "Agbada 2", Image: "https://i.imgur.com/di0GayQ.jpeg", Price: 35000},
	{ID: 3, Name: "Agbada 3", Image: "https://i.imgur.com/mO0qA0N.jpeg", Price: 35000},
	{ID: 4, Name: "Agbada 4", Image: "https://i.imgur.com/qMB38em.jpeg", Price: 35000},
	{ID: 5, Name: "Agbada 5", Image: "https://i.imgur.com/MltE3Xz.jpeg", Price: 35000},
	{ID: 6, Name: "Agbada 6", Image: "https://i.imgur.com/HP8KH5P.jpeg", Price: 35000},
	{ID: 7, Name: "Agbada 7", Image: "https://i.imgur.com/je0jf4H.jpeg", Price: 35000},
	{ID: 8, Name: "Agbada 8", Image: "https://i.imgur.com/PTsXbMm.jpeg", Price: 35000},
	{ID: 9, Name: "Agbada 9", Image: "https://i.imgur.com/D1i90CI.jpeg", Price: 35000},
	{ID: 10, Name: "Agbada 10", Image: "https://i.imgur.com/0moVcXI.jpeg", Price: 35000},
	{ID: 11, Name: "Agbada 11", Image: "https://i.imgur.com/7p29ZrB.jpeg", Price: 35000},
	{ID: 12, Name: "Agbada 12", Image: "https://i.imgur.com/I77I5Ck.jpeg", Price: 35000},
	{ID: 13, Name: "Agbada 13", Image: "https://i.imgur.com/Y3OdlRt.jpeg", Price: 35000},
	{ID: 14, Name: "Agbada 14", Image: "https://i.imgur.com/fAHk1pq.jpeg", Price: 35000},
	{ID: 15, Name: "Agbada 15", Image: "https://i.imgur.com/dHtWwiV.jpeg", Price: 35000},
	{ID: 16, Name: "Agbada 16", Image: "https://i.imgur.com/8wQbEyj.jpeg", Price: 35000},
	{ID: 17, Name: "Agbada 17", Image: "https://i.imgur.com/RHAFkru.jpeg", Price: 35000},
	{ID: 18, Name: "Agbada 18", Image: "https://i.imgur.com/TVoc0H7.jpeg", Price: 35000},
	{ID: 19, Name: "Agbada 19", Image: "https://i.imgur.com/FPJ8OYK.jpeg", Price: 35000},
	{ID: 20, Name: "Agbada 20", Image: "https://i.imgur.com/Ej0XX5O.jpeg", Price: 35000},
	{ID: 21, Name: "Agbada 21", Image: "https://i.imgur.com/tKHtdq5.jpeg", Price: 35000},
	{ID: 22, Name: "Agbada 22", Image: "https://i.imgur.com/GYfZ6cb.jpeg", Price: 35000},
	{ID: 23, Name: "Agbada 23", Image: "https://i.imgur.com/l28eUfx.jpeg", Price: 35000},
	{ID: 24, Name: "Agbada 24", Image: "https://i.imgur.com/2TngrLC.jpeg", Price: 35000},
	{ID: 25, Name: "Agbada 25", Image: "https://i.imgur.com/Mn2YWUp.jpeg", Price: 35000},
	{ID: 26, Name: "Agbada 26", Image: "https://i.imgur.com/taRe601.jpeg", Price: 35000},
	{ID: 27, Name: "Agbada 27", Image: "https://i.imgur.com/IAWPzqZ.jpeg", Price: 35000},
	{ID: 28, Name: "Agbada 28", Image: "https://i.imgur.com/Kr9hXQQ.jpeg", Price: 35000},
	{ID: 29, Name: "Agbada 29", Image: "https://i.imgur.com/eAPiFH8.jpeg", Price: 35000},
	{ID: 30, Name: "Agbada 30", Image: "https://i.imgur.com/MuviFgu.jpeg", Price: 35000},
	{ID: 31, Name: "Agbada 31", Image: "https://i.imgur.com/xY96WCe.jpeg", Price: 35000},
	{ID: 32, Name: "Agbada 32", Image: "https://i.imgur.com/60aTCqW.jpeg", Price: 35000},
}
