package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func linhasExemplo() []Linha {
	return []Linha{
		{Data: "07/03/2026", Placa: "ABC-1234", Modelo: "Onix LTZ", Cliente: "Alice Silva", Valor: "R$ 150,00", Pagamento: "PIX", Situacao: "APROVADO"},
		{Data: "06/03/2026", Placa: "DEF-5678", Modelo: "Gol", Cliente: "Bruno Costa", Valor: "R$ 120,00", Pagamento: "DINHEIRO", Situacao: "PENDENTE"},
		{Data: "05/03/2026", Placa: "GHI-9B01", Modelo: "HB20", Cliente: "Carla Souza", Valor: "R$ 200,00", Pagamento: "PIX", Situacao: "APROVADO"},
	}
}

func TestPDF(t *testing.T) {
	out, err := PDF(linhasExemplo())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("saída não parece um PDF")
	}
}

func TestPDFListaVazia(t *testing.T) {
	if _, err := PDF(nil); err != nil {
		t.Fatalf("lista vazia deveria gerar relatório: %v", err)
	}
}

func TestXLSXPreservaOrdemEColunas(t *testing.T) {
	out, err := XLSX(linhasExemplo())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("abrindo planilha gerada: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Vistorias")
	if err != nil {
		t.Fatalf("lendo linhas: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("esperava cabeçalho + 3 linhas, obteve %d", len(rows))
	}
	if rows[0][0] != "Data" || rows[0][6] != "Situação" {
		t.Errorf("cabeçalho inesperado: %v", rows[0])
	}
	if rows[1][1] != "ABC-1234" || rows[2][1] != "DEF-5678" || rows[3][1] != "GHI-9B01" {
		t.Errorf("ordem de entrada não preservada: %v", rows)
	}
	if rows[1][4] != "R$ 150,00" {
		t.Errorf("valor formatado incorreto: %q", rows[1][4])
	}
}

func TestFilename(t *testing.T) {
	name := Filename("pdf")
	if !strings.HasPrefix(name, "vistorias_") || !strings.HasSuffix(name, ".pdf") {
		t.Errorf("nome inesperado: %q", name)
	}
}
