// Package validation concentra as regras de consistência aplicadas antes de
// qualquer escrita. Cada validador devolve TODAS as violações encontradas,
// nunca apenas a primeira, porque o formulário exibe a lista completa.
package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/vistoriapro/api/internal/format"
)

// Limites de validação compartilhados entre cliente e vistoria.
const (
	NomeMin        = 3
	NomeMax        = 100
	ModeloMin      = 2
	ModeloMax      = 50
	ObservacoesMax = 1000
	ValorMax       = 999999
	CPFLength      = 11
)

// Mensagens padrão exibidas ao usuário.
const (
	MsgNomeMin         = "Nome deve ter no mínimo 3 caracteres"
	MsgNomeMax         = "Nome deve ter no máximo 100 caracteres"
	MsgModeloMin       = "Modelo deve ter no mínimo 2 caracteres"
	MsgModeloMax       = "Modelo deve ter no máximo 50 caracteres"
	MsgObservacoesMax  = "Observações devem ter no máximo 1000 caracteres"
	MsgCPFInvalido     = "CPF inválido"
	MsgPlacaInvalida   = "Formato de placa inválido"
	MsgValorPositivo   = "Valor deve ser positivo"
	MsgValorAlto       = "Valor muito alto"
	MsgFotoURLInvalida = "URL da foto inválida"
	MsgObrigatorio     = "Campo obrigatório"
)

// FieldError associa uma violação ao campo que a causou.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Aceita placas no padrão antigo (ABC-1234) e Mercosul (ABC-1D23), com ou
// sem separador.
var placaRe = regexp.MustCompile(`^[A-Z]{3}-?\d[A-Z0-9]\d{2}$`)

// ValidCPF aplica a validação estrita: 11 dígitos, não todos iguais e
// dígitos verificadores corretos.
func ValidCPF(cpf string) bool {
	digits := format.OnlyDigits(cpf)
	if len(digits) != CPFLength {
		return false
	}

	allEqual := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	check := 11 - sum%11
	if check >= 10 {
		check = 0
	}
	if check != int(digits[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	check = 11 - sum%11
	if check >= 10 {
		check = 0
	}
	return check == int(digits[10]-'0')
}

// ValidPlaca indica se a placa (já normalizada ou não) obedece à gramática.
func ValidPlaca(placa string) bool {
	return placaRe.MatchString(strings.ToUpper(strings.TrimSpace(placa)))
}

// ClienteInput reúne os campos validados de um cadastro de pessoa (cliente,
// vistoriador ou digitador, as regras são idênticas).
type ClienteInput struct {
	Nome        string
	CPF         string
	Observacoes string
	FotoURL     string
}

// ValidateCliente aplica as regras de cadastro de pessoa.
func ValidateCliente(in ClienteInput) []FieldError {
	var errs []FieldError

	nome := strings.TrimSpace(in.Nome)
	if len([]rune(nome)) < NomeMin {
		errs = append(errs, FieldError{Field: "nome", Message: MsgNomeMin})
	} else if len([]rune(nome)) > NomeMax {
		errs = append(errs, FieldError{Field: "nome", Message: MsgNomeMax})
	}

	if !ValidCPF(in.CPF) {
		errs = append(errs, FieldError{Field: "cpf", Message: MsgCPFInvalido})
	}

	if len([]rune(in.Observacoes)) > ObservacoesMax {
		errs = append(errs, FieldError{Field: "observacoes", Message: MsgObservacoesMax})
	}

	if in.FotoURL != "" {
		if u, err := url.Parse(in.FotoURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{Field: "foto_url", Message: MsgFotoURLInvalida})
		}
	}

	return errs
}

// VistoriaInput reúne os campos validados de uma vistoria. Valor chega aqui
// já convertido para número (a coerção de "R$ 1.234,56" acontece na camada
// de domínio).
type VistoriaInput struct {
	Placa       string
	Modelo      string
	Tipo        string
	Valor       float64
	Pagamento   string
	ClienteNome string
	ClienteCPF  string
	Digitador   string
	Liberador   string
}

// ValidateVistoria aplica as regras de criação/edição de vistoria.
func ValidateVistoria(in VistoriaInput) []FieldError {
	var errs []FieldError

	if !ValidPlaca(in.Placa) {
		errs = append(errs, FieldError{Field: "placa", Message: MsgPlacaInvalida})
	}

	modelo := strings.TrimSpace(in.Modelo)
	if len([]rune(modelo)) < ModeloMin {
		errs = append(errs, FieldError{Field: "modelo", Message: MsgModeloMin})
	} else if len([]rune(modelo)) > ModeloMax {
		errs = append(errs, FieldError{Field: "modelo", Message: MsgModeloMax})
	}

	if strings.TrimSpace(in.Tipo) == "" {
		errs = append(errs, FieldError{Field: "tipo", Message: MsgObrigatorio})
	}

	if in.Valor <= 0 {
		errs = append(errs, FieldError{Field: "valor", Message: MsgValorPositivo})
	} else if in.Valor > ValorMax {
		errs = append(errs, FieldError{Field: "valor", Message: MsgValorAlto})
	}

	if strings.TrimSpace(in.Pagamento) == "" {
		errs = append(errs, FieldError{Field: "pagamento", Message: MsgObrigatorio})
	}

	clienteNome := strings.TrimSpace(in.ClienteNome)
	if len([]rune(clienteNome)) < NomeMin {
		errs = append(errs, FieldError{Field: "cliente_nome", Message: MsgNomeMin})
	} else if len([]rune(clienteNome)) > NomeMax {
		errs = append(errs, FieldError{Field: "cliente_nome", Message: MsgNomeMax})
	}

	if in.ClienteCPF != "" && !ValidCPF(in.ClienteCPF) {
		errs = append(errs, FieldError{Field: "cliente_cpf", Message: "CPF do cliente inválido"})
	}

	// digitador e liberador são texto livre opcional: identidade copiada no
	// momento do registro, sem vínculo relacional.

	return errs
}
