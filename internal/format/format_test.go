package format

import (
	"strings"
	"testing"
	"time"
)

func TestCPFProgressivo(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"123", "123"},
		{"1234", "123.4"},
		{"123456", "123.456"},
		{"1234567", "123.456.7"},
		{"123456789", "123.456.789"},
		{"12345678901", "123.456.789-01"},
		{"123.456.789-01", "123.456.789-01"},
		{"12345678901999", "123.456.789-01"},
		{"abc111def222", "111.222"},
	}

	for _, tc := range tests {
		if got := CPF(tc.in); got != tc.want {
			t.Errorf("CPF(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestCPFSomenteDigitosESeparadores(t *testing.T) {
	inputs := []string{"", "1", "99999999999", "a1b2c3d4e5f6g7h8i9j0k1", "  123-456  "}
	for _, in := range inputs {
		out := CPF(in)
		for _, r := range out {
			if !(r >= '0' && r <= '9') && r != '.' && r != '-' {
				t.Fatalf("CPF(%q) produziu caractere inesperado %q em %q", in, r, out)
			}
		}

		want := OnlyDigits(in)
		if len(want) > 11 {
			want = want[:11]
		}
		if got := OnlyDigits(out); got != want {
			t.Errorf("CPF(%q): dígitos %q, esperava %q", in, got, want)
		}
	}
}

func TestPlaca(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc1234", "ABC-1234"},
		{"ABC1D23", "ABC-1D23"},
		{"ab", "AB"},
		{"abc", "ABC"},
		{"abc-1234", "ABC-1234"},
		{"abc12345678", "ABC-1234"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Placa(tc.in); got != tc.want {
			t.Errorf("Placa(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{1234.56, "R$ 1.234,56"},
		{999999, "R$ 999.999,00"},
		{0.5, "R$ 0,50"},
		{-10.9, "-R$ 10,90"},
	}

	for _, tc := range tests {
		if got := Currency(tc.in); got != tc.want {
			t.Errorf("Currency(%v) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	values := []float64{0, 0.01, 1, 10.5, 150, 1234.56, 98765.43, 999999}
	for _, v := range values {
		if got := ParseCurrencyToNumber(Currency(v)); got != v {
			t.Errorf("round-trip de %v resultou em %v", v, got)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"R$ 1.234,56", 1234.56, false},
		{"1234,56", 1234.56, false},
		{"1234.56", 123456, false}, // ponto é separador de milhar
		{"150", 150, false},
		{"", 0, true},
		{"abc", 0, true},
		{"R$", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseCurrency(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCurrency(%q): esperava erro, obteve %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCurrency(%q): erro inesperado %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCurrency(%q) = %v, esperava %v", tc.in, got, tc.want)
		}
	}
}

func TestParseCurrencyToNumberDegradaParaZero(t *testing.T) {
	for _, in := range []string{"", "abc", "R$ --"} {
		if got := ParseCurrencyToNumber(in); got != 0 {
			t.Errorf("ParseCurrencyToNumber(%q) = %v, esperava 0", in, got)
		}
	}
}

func TestDate(t *testing.T) {
	ts := time.Date(2026, time.March, 7, 14, 30, 0, 0, time.UTC)

	if got := Date(ts, DateShort); got != "07/03/2026" {
		t.Errorf("short = %q", got)
	}
	if got := Date(ts, DateLong); got != "07 de março de 2026" {
		t.Errorf("long = %q", got)
	}
	if got := Date(ts, DateTime); got != "07/03/2026 14:30" {
		t.Errorf("time = %q", got)
	}
	if got := Date(ts, "qualquer"); got != "07/03/2026" {
		t.Errorf("modo desconhecido deveria cair no short, obteve %q", got)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"11", "(11"},
		{"119876", "(11) 9876"},
		{"1198765432", "(11) 9876-5432"},
		{"11987654321", "(11) 98765-4321"},
		{"(11) 98765-4321", "(11) 98765-4321"},
	}

	for _, tc := range tests {
		if got := Phone(tc.in); got != tc.want {
			t.Errorf("Phone(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrencyStringToleraEntradaRuim(t *testing.T) {
	if got := CurrencyString("R$ 1.234,56"); got != "R$ 1.234,56" {
		t.Errorf("CurrencyString = %q", got)
	}
	if got := CurrencyString("lixo"); got != "R$ 0,00" {
		t.Errorf("CurrencyString(lixo) = %q", got)
	}
	if strings.Contains(CurrencyString("10"), "NaN") {
		t.Error("não deve produzir NaN")
	}
}
