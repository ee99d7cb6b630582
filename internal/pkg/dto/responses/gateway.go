package responses

import (
	"strings"
	"time"
)

type GatewayPixCharge struct {
	TransactionID string
	Status        string
	ReferenceCode string
	QRCodeText    string
	QRCodeImage   string
	ExpiresAt     *time.Time

	// QRCodeImageData holds the PNG behind QRCodeImage when it could be
	// downloaded.
	QRCodeImageData []byte
}

type GatewayCardCharge struct {
	TransactionID  string
	Status         string
	TransactionRef string
}

type GatewayCheckout struct {
	CheckoutID  string
	RedirectURL string
}

type GatewayCharge struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type GatewayLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type GatewayCheckoutDetails struct {
	ID          string          `json:"id"`
	ReferenceID string          `json:"reference_id"`
	Status      string          `json:"status"`
	Charges     []GatewayCharge `json:"charges"`
	Links       []GatewayLink   `json:"links"`
}

func (d *GatewayCheckoutDetails) ChargeStatuses() []string {
	statuses := make([]string, 0, len(d.Charges))
	for _, charge := range d.Charges {
		statuses = append(statuses, charge.Status)
	}
	return statuses
}

func (d *GatewayCheckoutDetails) LinkByRel(rel string) string {
	return findLink(d.Links, rel)
}

type GatewayQRCode struct {
	ID             string        `json:"id"`
	Text           string        `json:"text"`
	ExpirationDate *time.Time    `json:"expiration_date,omitempty"`
	Links          []GatewayLink `json:"links"`
}

func (q *GatewayQRCode) ImageURL(rel string) string {
	return findLink(q.Links, rel)
}

type GatewayOrderDetails struct {
	ID      string          `json:"id"`
	QRCodes []GatewayQRCode `json:"qr_codes"`
	Charges []GatewayCharge `json:"charges"`
}

func findLink(links []GatewayLink, rel string) string {
	for _, link := range links {
		if strings.EqualFold(link.Rel, rel) {
			return link.Href
		}
	}
	return ""
}
