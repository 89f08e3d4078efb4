package filtro

import (
	"strconv"
	"strings"

	"github.com/KromaEnergia/painel-usinas/internal/formato"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/utils"
)

// MarcadorID antecede uma busca exata por id ("#7").
const MarcadorID = "#"

const pontuacaoCPF = "0123456789.-/ "

// CorrespondeBusca aplica a busca livre: "#n" compara o id exatamente; o resto procura o termo
// no nome (sem diferenciar maiúsculas); termo feito só de dígitos e pontuação de documento
// também procura seus dígitos dentro dos dígitos do CPF.
func CorrespondeBusca(termo string, id models.ID, nome, cpf string) bool {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return true
	}
	if strings.HasPrefix(termo, MarcadorID) {
		n, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(termo, MarcadorID)), 10, 64)
		if err != nil {
			return false
		}
		return int64(id) == n
	}
	if strings.Contains(formato.Dobrar(nome), formato.Dobrar(termo)) {
		return true
	}
	if strings.Trim(termo, pontuacaoCPF) != "" {
		return false
	}
	digitos := utils.SomenteDigitos(termo)
	return digitos != "" && strings.Contains(utils.SomenteDigitos(cpf), digitos)
}
