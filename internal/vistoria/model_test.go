package vistoria

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValorUnmarshal(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    float64
		wantErr bool
	}{
		{name: "número", payload: `150.5`, want: 150.5},
		{name: "inteiro", payload: `200`, want: 200},
		{name: "string formatada", payload: `"R$ 1.234,56"`, want: 1234.56},
		{name: "string simples", payload: `"150,00"`, want: 150},
		{name: "string sem centavos", payload: `"R$ 80"`, want: 80},
		{name: "string vazia", payload: `""`, wantErr: true},
		{name: "texto aleatório", payload: `"abc"`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v Valor
			err := json.Unmarshal([]byte(tc.payload), &v)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("esperava erro para %s", tc.payload)
				}
				return
			}
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if math.Abs(float64(v)-tc.want) > 1e-9 {
				t.Fatalf("esperava %v, obteve %v", tc.want, float64(v))
			}
		})
	}
}

func TestValorDentroDeInput(t *testing.T) {
	var in Input
	payload := `{"placa":"abc1d23","valor":"R$ 150,00"}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if float64(in.Valor) != 150 {
		t.Fatalf("valor coercido incorreto: %v", float64(in.Valor))
	}
}

func TestInputFieldsDefaults(t *testing.T) {
	in := Input{
		Placa:       "abc1d23",
		Modelo:      "  Onix LTZ  ",
		ClienteNome: "Alice",
		ClienteCPF:  "52998224725",
	}
	fields := in.Fields()

	if fields["situacao"] != SituacaoPendente {
		t.Errorf("situação padrão deveria ser PENDENTE, obteve %v", fields["situacao"])
	}
	if fields["modalidade"] != ModalidadeInterno {
		t.Errorf("modalidade padrão deveria ser INTERNO, obteve %v", fields["modalidade"])
	}
	if fields["placa"] != "ABC-1D23" {
		t.Errorf("placa não normalizada: %v", fields["placa"])
	}
	if fields["modelo"] != "Onix LTZ" {
		t.Errorf("modelo não aparado: %v", fields["modelo"])
	}
	if fields["cliente_cpf"] != "529.982.247-25" {
		t.Errorf("cpf não normalizado: %v", fields["cliente_cpf"])
	}
	if fotos, ok := fields["fotos"].([]string); !ok || fotos == nil {
		t.Error("fotos deveria ser fatia vazia, nunca nil")
	}
}

func TestUpdateInputFieldsSomenteInformados(t *testing.T) {
	modelo := "Gol"
	in := UpdateInput{Modelo: &modelo}
	fields := in.Fields()

	if len(fields) != 1 {
		t.Fatalf("esperava 1 campo, obteve %d: %v", len(fields), fields)
	}
	if fields["modelo"] != "Gol" {
		t.Fatalf("modelo inesperado: %v", fields["modelo"])
	}
}

func TestConjuntosFechados(t *testing.T) {
	if !IsValidSituacao("aprovado") {
		t.Error("situação deve aceitar minúsculas")
	}
	if IsValidSituacao("EM_ANALISE") {
		t.Error("situação fora do conjunto aceita")
	}
	if !IsValidPagamento(" pix ") {
		t.Error("pagamento deve tolerar espaços")
	}
	if IsValidPagamento("CHEQUE") {
		t.Error("pagamento fora do conjunto aceito")
	}
	if !IsValidModalidade("EXTERNO") || IsValidModalidade("HIBRIDO") {
		t.Error("modalidade com conjunto incorreto")
	}
}
