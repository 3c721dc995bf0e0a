// Package format concentra as transformações de exibição usadas pelo sistema
// (CPF, placa, moeda, data e telefone). Todas as funções são puras e nunca
// retornam erro de formatação: entrada malformada produz a melhor string
// possível.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CPF agrupa progressivamente os dígitos no padrão XXX.XXX.XXX-XX.
// Aceita entrada parcial (digitação em andamento) e descarta tudo que não
// for dígito, limitando a 11 dígitos.
func CPF(raw string) string {
	digits := OnlyDigits(raw)
	if len(digits) > 11 {
		digits = digits[:11]
	}

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return digits[:3] + "." + digits[3:]
	case len(digits) <= 9:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:]
	default:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
	}
}

// Placa normaliza a placa para maiúsculas e insere o separador após o
// terceiro caractere (padrões antigo e Mercosul).
func Placa(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if len(cleaned) <= 3 {
		return cleaned
	}
	if len(cleaned) > 7 {
		cleaned = cleaned[:7]
	}
	return cleaned[:3] + "-" + cleaned[3:]
}

// Currency renderiza o valor no formato monetário brasileiro (R$ 1.234,56).
func Currency(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	cents := int64(v*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := fmt.Sprintf("R$ %s,%02d", b.String(), frac)
	if negative {
		return "-" + out
	}
	return out
}

// CurrencyString formata uma string monetária já digitada, tolerando símbolo
// de moeda e vírgula decimal. Entrada que não puder ser interpretada vira
// R$ 0,00.
func CurrencyString(s string) string {
	return Currency(ParseCurrencyToNumber(s))
}

// ParseCurrency converte uma string monetária ("R$ 1.234,56") em número.
// Diferente de ParseCurrencyToNumber, falha explicitamente quando a entrada
// não contém um valor interpretável. É a variante usada antes de persistir.
func ParseCurrency(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := strings.ReplaceAll(b.String(), ",", ".")
	if cleaned == "" || cleaned == "-" {
		return 0, fmt.Errorf("valor monetário vazio: %q", s)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("valor monetário inválido: %q", s)
	}
	return v, nil
}

// ParseCurrencyToNumber mantém o contrato tolerante usado na camada de
// exibição: entrada sem valor interpretável resulta em 0.
func ParseCurrencyToNumber(s string) float64 {
	v, err := ParseCurrency(s)
	if err != nil {
		return 0
	}
	return v
}

// Modos de exibição de data.
const (
	DateShort = "short" // 02/01/2006
	DateLong  = "long"  // 02 de janeiro de 2006
	DateTime  = "time"  // 02/01/2006 15:04
)

var meses = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Date formata a data em um dos três modos fixos de exibição. Não há
// conversão de fuso além do embutido no próprio time.Time.
func Date(t time.Time, mode string) string {
	switch mode {
	case DateLong:
		return fmt.Sprintf("%02d de %s de %d", t.Day(), meses[t.Month()-1], t.Year())
	case DateTime:
		return t.Format("02/01/2006 15:04")
	default:
		return t.Format("02/01/2006")
	}
}

// Phone formata telefone fixo ou celular brasileiro conforme a quantidade de
// dígitos: (XX) XXXX-XXXX ou (XX) XXXXX-XXXX.
func Phone(raw string) string {
	digits := OnlyDigits(raw)
	if digits == "" {
		return ""
	}

	switch {
	case len(digits) <= 2:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[:2] + ") " + digits[2:]
	case len(digits) <= 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:11]
	}
}

// OnlyDigits remove tudo que não for dígito decimal.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
