package remoto

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/models"
)

func (c *Client) ListarClientes(ctx context.Context) ([]models.Cliente, error) {
	return listar[models.Cliente](ctx, c, ColecaoClientes, nil)
}

func (c *Client) ListarSetores(ctx context.Context) ([]models.Setor, error) {
	return listar[models.Setor](ctx, c, ColecaoSetores, nil)
}

func (c *Client) ListarUsuarios(ctx context.Context) ([]models.Usuario, error) {
	return listar[models.Usuario](ctx, c, ColecaoUsuarios, nil)
}

func (c *Client) ListarUsinas(ctx context.Context) ([]models.Usina, error) {
	return listar[models.Usina](ctx, c, ColecaoUsinas, nil)
}

// ListarComissoes busca o agregado por consultor; datas zero não são enviadas.
func (c *Client) ListarComissoes(ctx context.Context, de, ate time.Time) ([]models.LinhaComissao, error) {
	q := url.Values{}
	if !de.IsZero() {
		q.Set("start_date", de.Format("2006-01-02"))
	}
	if !ate.IsZero() {
		q.Set("end_date", ate.Format("2006-01-02"))
	}
	return listar[models.LinhaComissao](ctx, c, ColecaoComissao, q)
}

// Login autentica na API e devolve o usuário correspondente.
func (c *Client) Login(ctx context.Context, email, senha string) (models.Usuario, error) {
	const op = "login"
	corpo := map[string]string{"email": email, "password": senha}
	raw, err := c.executar(ctx, chamada{op: op, metodo: http.MethodPost, caminho: "login", corpo: corpo, repetir: true})
	if err != nil {
		return models.Usuario{}, err
	}
	env, err := decodeEnvelope(op, raw)
	if err != nil {
		return models.Usuario{}, err
	}
	if len(env.User) == 0 || string(env.User) == "null" {
		return models.Usuario{}, &Erro{Operacao: op, Causa: ErrResposta, Mensagem: ErrSemUsuario.Error()}
	}
	var u models.Usuario
	if err := json.Unmarshal(env.User, &u); err != nil {
		return models.Usuario{}, &Erro{Operacao: op, Causa: ErrResposta, Mensagem: err.Error()}
	}
	return u, nil
}
