package cadastro

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KromaEnergia/painel-usinas/internal/utils"
)

// TamanhoMaximoDocumento é o limite de cada documento já decodificado.
const TamanhoMaximoDocumento = 20 << 20

// ErrPayload: corpo ausente, JSON malformado ou grande demais.
var ErrPayload = errors.New("payload inválido")

// ErrValidacao carrega os campos rejeitados.
type ErrValidacao struct {
	Campos map[string]string
}

func (e *ErrValidacao) Error() string {
	partes := make([]string, 0, len(e.Campos))
	for campo, msg := range e.Campos {
		partes = append(partes, campo+": "+msg)
	}
	return "dados inválidos (" + strings.Join(partes, "; ") + ")"
}

var validate = novoValidador()

func novoValidador() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// mensagens usam o nome do campo no JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		nome := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if nome == "-" || nome == "" {
			return f.Name
		}
		return nome
	})
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return len(utils.SomenteDigitos(fl.Field().String())) == 11
	})
	_ = v.RegisterValidation("documento", func(fl validator.FieldLevel) bool {
		_, err := TamanhoDocumento(fl.Field().String())
		return err == nil
	})
	return v
}

// TamanhoDocumento decodifica o base64 (aceita o prefixo data:...;base64,) e devolve o tamanho em bytes.
func TamanhoDocumento(doc string) (int, error) {
	if i := strings.Index(doc, ";base64,"); i >= 0 && strings.HasPrefix(doc, "data:") {
		doc = doc[i+len(";base64,"):]
	}
	// descarta cedo o que certamente passa do limite
	if base64.StdEncoding.DecodedLen(len(doc)) > TamanhoMaximoDocumento+2 {
		return 0, fmt.Errorf("documento maior que %d MB", TamanhoMaximoDocumento>>20)
	}
	b, err := base64.StdEncoding.DecodeString(doc)
	if err != nil {
		return 0, fmt.Errorf("documento não está em base64: %w", err)
	}
	if len(b) > TamanhoMaximoDocumento {
		return 0, fmt.Errorf("documento maior que %d MB", TamanhoMaximoDocumento>>20)
	}
	return len(b), nil
}

func mensagem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return "obrigatório"
	case "email":
		return "e-mail inválido"
	case "cpf":
		return "CPF deve ter 11 dígitos"
	case "documento":
		return "documento inválido ou maior que 20 MB"
	case "oneof":
		return "valor deve ser um de: " + fe.Param()
	case "max":
		return "máximo de " + fe.Param() + " caracteres"
	case "min":
		return "mínimo de " + fe.Param() + " caracteres"
	case "gte", "gt":
		return "valor deve ser maior que " + fe.Param()
	}
	return "inválido"
}

// Validar aplica as tags validate do DTO.
func Validar(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	campos := make(map[string]string, len(ves))
	for _, fe := range ves {
		campos[fe.Field()] = mensagem(fe)
	}
	return &ErrValidacao{Campos: campos}
}

// Decodificar lê o JSON (até limite bytes) e valida.
func Decodificar(w http.ResponseWriter, r *http.Request, dst any, limite int64) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limite))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return Validar(dst)
}
