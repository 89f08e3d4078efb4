package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Fuso é o fuso usado para interpretar datas sem offset vindas da API (DATETIME do MySQL).
// Definido uma única vez na inicialização.
var Fuso = time.Local

// ID aceita número, string numérica, null, "" ou o sentinela "all" (os três últimos viram 0 = não atribuído).
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" || s == "all" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id inválido %q: %w", s, err)
	}
	*id = ID(v)
	return nil
}

// Atribuido indica se o ID aponta para uma entidade (0 significa "sem vínculo").
func (id ID) Atribuido() bool { return id > 0 }

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseID converte o valor de um parâmetro de rota/query.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return ID(v), nil
}

// Decimal aceita número ou string ("300.00", "300,00"); vazio ou null vira 0.
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("decimal inválido %q: %w", s, err)
	}
	*d = Decimal(v)
	return nil
}

// Inteiro aceita número ou string numérica.
type Inteiro int

func (n *Inteiro) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("inteiro inválido %q: %w", s, err)
	}
	*n = Inteiro(v)
	return nil
}

// Booleano aceita true/false, 1/0 e "1"/"0".
type Booleano bool

func (v *Booleano) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`)) {
	case "true", "1", "sim", "yes":
		*v = true
	default:
		*v = false
	}
	return nil
}

var layoutsData = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Data é um instante vindo da API. Valores ausentes ou ilegíveis viram o zero (sem data), nunca erro.
type Data struct {
	time.Time
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		d.Time = time.Time{}
		return nil
	}
	d.Time = ParseData(s)
	return nil
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// ParseData interpreta os formatos conhecidos; retorna o zero para entradas inválidas.
func ParseData(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		return time.Time{}
	}
	for _, layout := range layoutsData {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, Fuso)
		}
		if err == nil {
			return t
		}
	}
	return time.Time{}
}

// Valida indica se a data foi informada e pôde ser interpretada.
func (d Data) Valida() bool { return !d.IsZero() }

func isNullOrEmptyArray(b []byte) bool {
	t := bytes.TrimSpace(b)
	return bytes.Equal(t, []byte("null")) || bytes.Equal(t, []byte("[]"))
}
