package papertrade

import "testing"

func TestClassifySymbol(t *testing.T) {
	tests := []struct {
		symbol string
		want   Currency
	}{
		{"AAPL", USD},
		{"MSFT", USD},
		{"RELIANCE.NS", INR},
		{"TATAMOTORS.BO", INR},
		{"MAYBANK.KL", MYR},
		{"", USD},
		{"reliance.ns", USD}, // suffixes are case-sensitive
		{"BRK.B", USD},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if got := ClassifySymbol(tt.symbol); got != tt.want {
				t.Errorf("ClassifySymbol(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestParseCurrency(t *testing.T) {
	for _, c := range Currencies {
		got, err := ParseCurrency(string(c))
		if err != nil {
			t.Fatalf("ParseCurrency(%q) returned error: %v", c, err)
		}
		if got != c {
			t.Errorf("ParseCurrency(%q) = %v", c, got)
		}
	}
	if _, err := ParseCurrency("EUR"); err == nil {
		t.Error("ParseCurrency(\"EUR\") should fail: unsupported currency")
	}
}
