// Package report gera os relatórios tabulares de vistorias em PDF e XLSX.
// As linhas saem na mesma ordem em que entram, uma linha visual por
// registro, com as sete colunas de exibição.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Linha é um registro já formatado para exibição no relatório.
type Linha struct {
	Data      string
	Placa     string
	Modelo    string
	Cliente   string
	Valor     string
	Pagamento string
	Situacao  string
}

var colunas = []string{"Data", "Placa", "Modelo", "Cliente", "Valor", "Pagamento", "Situação"}

// Filename monta o nome do arquivo carimbado com a data corrente.
func Filename(ext string) string {
	return fmt.Sprintf("vistorias_%s.%s", time.Now().Format("2006-01-02"), ext)
}

// PDF renderiza o relatório com cabeçalho, total e contagem por situação.
func PDF(linhas []Linha) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Faixa de cabeçalho.
	pdf.SetFillColor(124, 58, 237)
	pdf.Rect(0, 0, 210, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(105-pdf.GetStringWidth(tr("RELATÓRIO DE VISTORIAS"))/2, 24, tr("RELATÓRIO DE VISTORIAS"))

	// Resumo: total e contagem por situação, na ordem de aparição.
	pdf.SetTextColor(31, 41, 55)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(14, 46)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total: %d", len(linhas))), "", 1, "L", false, 0, "")

	contagem := map[string]int{}
	var ordem []string
	for _, l := range linhas {
		if _, ok := contagem[l.Situacao]; !ok {
			ordem = append(ordem, l.Situacao)
		}
		contagem[l.Situacao]++
	}
	pdf.SetX(14)
	for _, s := range ordem {
		pdf.CellFormat(40, 6, tr(fmt.Sprintf("%s: %d", s, contagem[s])), "", 0, "L", false, 0, "")
	}
	pdf.Ln(10)

	larguras := []float64{22, 24, 38, 40, 24, 22, 20}

	pdf.SetY(62)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(124, 58, 237)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(10)
	for i, c := range colunas {
		pdf.CellFormat(larguras[i], 8, tr(c), "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(31, 41, 55)
	for i, l := range linhas {
		fill := i%2 == 1
		pdf.SetFillColor(243, 244, 246)
		cells := []string{l.Data, l.Placa, l.Modelo, l.Cliente, l.Valor, l.Pagamento, l.Situacao}
		pdf.SetX(10)
		for j, c := range cells {
			pdf.CellFormat(larguras[j], 7, tr(c), "", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("relatório pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX gera a planilha com as mesmas sete colunas e a mesma ordem.
func XLSX(linhas []Linha) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Vistorias"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("relatório xlsx: %w", err)
	}

	header := make([]any, len(colunas))
	for i, c := range colunas {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("relatório xlsx: %w", err)
	}

	for i, l := range linhas {
		row := []any{l.Data, l.Placa, l.Modelo, l.Cliente, l.Valor, l.Pagamento, l.Situacao}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("relatório xlsx: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("relatório xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
