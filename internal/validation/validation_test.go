package validation

import "testing"

func TestValidCPF(t *testing.T) {
	tests := []struct {
		cpf  string
		want bool
	}{
		{"529.982.247-25", true}, // dígitos verificadores corretos
		{"52998224725", true},
		{"529.982.247-24", false}, // segundo dígito errado
		{"111.111.111-11", false}, // todos iguais
		{"00000000000", false},
		{"1234567890", false}, // 10 dígitos
		{"123456789012", false},
		{"", false},
		{"abc", false},
	}

	for _, tc := range tests {
		if got := ValidCPF(tc.cpf); got != tc.want {
			t.Errorf("ValidCPF(%q) = %v, esperava %v", tc.cpf, got, tc.want)
		}
	}
}

func TestValidPlaca(t *testing.T) {
	tests := []struct {
		placa string
		want  bool
	}{
		{"ABC-1234", true},
		{"ABC1234", true},
		{"ABC-1D23", true}, // Mercosul
		{"abc-1234", true}, // normaliza antes de casar
		{"AB-1234", false},
		{"ABCD-123", false},
		{"ABC-12345", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := ValidPlaca(tc.placa); got != tc.want {
			t.Errorf("ValidPlaca(%q) = %v, esperava %v", tc.placa, got, tc.want)
		}
	}
}

func TestValidateClienteNomeCurto(t *testing.T) {
	errs := ValidateCliente(ClienteInput{Nome: "Al", CPF: "529.982.247-25"})
	if len(errs) != 1 {
		t.Fatalf("esperava 1 violação, obteve %d: %v", len(errs), errs)
	}
	if errs[0].Field != "nome" {
		t.Errorf("violação deveria referenciar nome, referencia %q", errs[0].Field)
	}
}

func TestValidateClienteAceito(t *testing.T) {
	errs := ValidateCliente(ClienteInput{
		Nome:        "Alice Silva",
		CPF:         "529.982.247-25",
		Observacoes: "cliente recorrente",
		FotoURL:     "https://fotos.example.com/alice.jpg",
	})
	if len(errs) != 0 {
		t.Fatalf("esperava aceitação, obteve %v", errs)
	}
}

func TestValidateClienteReportaTodasViolacoes(t *testing.T) {
	longo := make([]rune, ObservacoesMax+1)
	for i := range longo {
		longo[i] = 'x'
	}

	errs := ValidateCliente(ClienteInput{
		Nome:        "Al",
		CPF:         "111.111.111-11",
		Observacoes: string(longo),
		FotoURL:     "::not-a-url::",
	})
	if len(errs) != 4 {
		t.Fatalf("esperava 4 violações reportadas juntas, obteve %d: %v", len(errs), errs)
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"nome", "cpf", "observacoes", "foto_url"} {
		if !fields[f] {
			t.Errorf("faltou violação do campo %q", f)
		}
	}
}

func TestValidateVistoria(t *testing.T) {
	valida := VistoriaInput{
		Placa:       "ABC-1D23",
		Modelo:      "Onix LTZ",
		Tipo:        "ECV/TRANSFERENCIA",
		Valor:       150,
		Pagamento:   "PIX",
		ClienteNome: "Alice Silva",
	}
	if errs := ValidateVistoria(valida); len(errs) != 0 {
		t.Fatalf("esperava aceitação, obteve %v", errs)
	}

	invalida := VistoriaInput{
		Placa:       "A1",
		Modelo:      "X",
		Tipo:        "",
		Valor:       0,
		Pagamento:   "",
		ClienteNome: "Jo",
		ClienteCPF:  "123",
	}
	errs := ValidateVistoria(invalida)
	if len(errs) != 7 {
		t.Fatalf("esperava 7 violações, obteve %d: %v", len(errs), errs)
	}
}

func TestValidateVistoriaValorAlto(t *testing.T) {
	in := VistoriaInput{
		Placa:       "ABC-1234",
		Modelo:      "Gol",
		Tipo:        "OUTROS",
		Valor:       ValorMax + 1,
		Pagamento:   "DINHEIRO",
		ClienteNome: "Alice Silva",
	}
	errs := ValidateVistoria(in)
	if len(errs) != 1 || errs[0].Field != "valor" {
		t.Fatalf("esperava violação única de valor, obteve %v", errs)
	}
}
