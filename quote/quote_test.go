package quote

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":150.25,"currency":"USD"}}],"error":null}}`)
	}))
	defer server.Close()

	c := New()
	c.SetBaseURL(server.URL)
	price, err := c.Quote("AAPL")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if !price.Equal(decimal.NewFromFloat(150.25)) {
		t.Errorf("price = %s, want 150.25", price)
	}
}

func TestQuoteErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"provider error", `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`, 200},
		{"empty result", `{"chart":{"result":[],"error":null}}`, 200},
		{"no market price", `{"chart":{"result":[{"meta":{"currency":"USD"}}],"error":null}}`, 200},
		{"http error", `server overloaded`, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			c := New()
			c.SetBaseURL(server.URL)
			if _, err := c.Quote("UNKNOWN"); err == nil {
				t.Error("Quote should fail")
			}
		})
	}
}
