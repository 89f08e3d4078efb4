package models

// Cliente representa um lead captado por um consultor.
type Cliente struct {
	ID           ID     `json:"id"`
	Nome         string `json:"name"`
	CPF          string `json:"cpf"`
	Email        string `json:"email"`
	Telefone     string `json:"phone"`
	SetorID      ID     `json:"sector_id"`
	UsuarioID    ID     `json:"user_id"`
	UsinaID      ID     `json:"usina_id"`
	Status       string `json:"status"`
	Observacoes  string `json:"observations"`
	CriadoEm     Data   `json:"created_at"`
	AtualizadoEm Data   `json:"updated_at"`

	// Documentos anexados em base64 (até três).
	Documento1 string `json:"document_1,omitempty"`
	Documento2 string `json:"document_2,omitempty"`
	Documento3 string `json:"document_3,omitempty"`
}

// Setor agrupa usuários e clientes.
type Setor struct {
	ID        ID     `json:"id"`
	Nome      string `json:"name"`
	Descricao string `json:"description"`
	CriadoEm  Data   `json:"created_at"`
}

// Usuario é um admin, supervisor ou consultor. A senha nunca é lida de volta.
type Usuario struct {
	ID      ID        `json:"id"`
	Nome    string    `json:"name"`
	Email   string    `json:"email"`
	Papel   Papel     `json:"role"`
	SetorID ID        `json:"sector_id"`
	Ativo   *Booleano `json:"active,omitempty"`
}

// Inativo só quando a API diz explicitamente que o usuário foi desativado.
func (u Usuario) Inativo() bool { return u.Ativo != nil && !bool(*u.Ativo) }

// Usina é a planta à qual um cliente é vinculado; paga um valor fixo de comissão por contrato.
type Usina struct {
	ID        ID      `json:"id"`
	Nome      string  `json:"name"`
	Descricao string  `json:"description"`
	Comissao  Decimal `json:"commission_value"`
}
