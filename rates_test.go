package papertrade

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRateTableDefaults(t *testing.T) {
	table := NewRateTable()
	if !table.Stale() {
		t.Error("a fresh table must be stale")
	}
	if !table.Rate(USD).Equal(decimal.NewFromInt(1)) {
		t.Errorf("USD rate = %s, want 1", table.Rate(USD))
	}
	if !table.Rate(INR).Equal(decimal.NewFromInt(83)) {
		t.Errorf("INR rate = %s, want default 83", table.Rate(INR))
	}
	if !table.Rate(MYR).Equal(decimal.NewFromFloat(4.5)) {
		t.Errorf("MYR rate = %s, want default 4.5", table.Rate(MYR))
	}
}

func TestRateTableRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"INR":83.5,"MYR":4.7,"EUR":0.9}}`))
	}))
	defer server.Close()

	table := NewRateTable()
	table.endpoint = server.URL
	table.Refresh(server.Client())

	if table.Stale() {
		t.Error("table should not be stale after a successful refresh")
	}
	if !table.Rate(INR).Equal(decimal.NewFromFloat(83.5)) {
		t.Errorf("INR rate = %s, want 83.5", table.Rate(INR))
	}
	if !table.Rate(MYR).Equal(decimal.NewFromFloat(4.7)) {
		t.Errorf("MYR rate = %s, want 4.7", table.Rate(MYR))
	}
}

func TestRateTableRefreshFailureKeepsPreviousRates(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance</html>"))
		}},
		{"missing rates", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9}}`))
		}},
		{"non numeric rate", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"rates":{"INR":"eighty-three","MYR":4.7}}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			table := NewRateTable()
			table.endpoint = server.URL
			table.Refresh(server.Client())

			if !table.Stale() {
				t.Error("failed refresh must leave the table stale")
			}
			if !table.Rate(INR).Equal(decimal.NewFromInt(83)) {
				t.Errorf("INR rate = %s, want previous value kept", table.Rate(INR))
			}
		})
	}
}

func TestRateTableConvert(t *testing.T) {
	table := NewRateTable()

	if got := table.ToUSD(M(83000, INR)); !got.Equal(M(1000, USD)) {
		t.Errorf("ToUSD(₹83,000) = %s, want $1,000.00", got)
	}
	if got := table.FromUSD(M(1000, USD), MYR); !got.Equal(M(4500, MYR)) {
		t.Errorf("FromUSD($1,000, MYR) = %s, want RM4,500.00", got)
	}
	// INR to MYR pivots through USD.
	if got := table.Convert(M(83000, INR), MYR); !got.Equal(M(4500, MYR)) {
		t.Errorf("Convert(₹83,000, MYR) = %s, want RM4,500.00", got)
	}
	// Same-currency conversion is the identity.
	if got := table.Convert(M(42, USD), USD); !got.Equal(M(42, USD)) {
		t.Errorf("Convert($42, USD) = %s", got)
	}
}
