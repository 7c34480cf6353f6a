package hcapi

import (
	"context"
	"net/http"
)

// Price is a single price with and without VAT.
type Price struct {
	Net   string `json:"net"`
	Gross string `json:"gross"`
}

// LocationPrice is a price that applies in a specific location.
type LocationPrice struct {
	Location     string `json:"location"`
	PriceHourly  Price  `json:"price_hourly"`
	PriceMonthly Price  `json:"price_monthly"`
}

// ServerTypePricing holds the prices of one server type across locations.
type ServerTypePricing struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Prices []LocationPrice `json:"prices"`
}

// LoadBalancerTypePricing holds the prices of one load balancer type
// across locations.
type LoadBalancerTypePricing struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Prices []LocationPrice `json:"prices"`
}

// Pricing holds the project's price list. All prices are in the project's
// billing currency.
type Pricing struct {
	Currency string `json:"currency"`
	VATRate  string `json:"vat_rate"`

	Image struct {
		PricePerGBMonth Price `json:"price_per_gb_month"`
	} `json:"image"`
	Volume struct {
		PricePerGBMonth Price `json:"price_per_gb_month"`
	} `json:"volume"`
	FloatingIP struct {
		PriceMonthly Price `json:"price_monthly"`
	} `json:"floating_ip"`
	PrimaryIPs []struct {
		Type   string `json:"type"`
		Prices []struct {
			Location     string `json:"location"`
			PriceHourly  Price  `json:"price_hourly"`
			PriceMonthly Price  `json:"price_monthly"`
		} `json:"prices"`
	} `json:"primary_ips"`
	Traffic struct {
		PricePerTB Price `json:"price_per_tb"`
	} `json:"traffic"`
	ServerTypes       []ServerTypePricing       `json:"server_types"`
	LoadBalancerTypes []LoadBalancerTypePricing `json:"load_balancer_types"`
}

// PricingClient provides access to the price list.
type PricingClient struct {
	client *Client
}

// Get returns the full price list for the project.
func (c PricingClient) Get(ctx context.Context) (Pricing, *Response, error) {
	var body struct {
		Pricing Pricing `json:"pricing"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/pricing", nil, nil, &body)
	if err != nil {
		return Pricing{}, resp, err
	}
	return body.Pricing, resp, nil
}
