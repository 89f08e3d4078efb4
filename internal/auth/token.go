package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalido cobre assinatura, expiração e claims malformadas.
var ErrTokenInvalido = errors.New("token inválido ou expirado")

const emissorPadrao = "painel-usinas"

// Claims do token de sessão: a Capacidade inteira vai junto para não depender de estado no servidor.
type Claims struct {
	Capacidade Capacidade `json:"cap"`
	jwt.RegisteredClaims
}

// Emissor gera e valida tokens HS256.
type Emissor struct {
	segredo []byte
	ttl     time.Duration
	agora   func() time.Time
}

// NewEmissor cria um Emissor; ttl <= 0 usa 12h.
func NewEmissor(segredo string, ttl time.Duration) (*Emissor, error) {
	if segredo == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Emissor{segredo: []byte(segredo), ttl: ttl, agora: time.Now}, nil
}

// TTL do token emitido.
func (e *Emissor) TTL() time.Duration { return e.ttl }

// GerarToken emite o token de sessão para a Capacidade.
func (e *Emissor) GerarToken(c Capacidade) (string, error) {
	now := e.agora()
	claims := &Claims{
		Capacidade: c,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    emissorPadrao,
			Subject:   c.UsuarioID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(e.segredo)
}

// ValidarToken valida assinatura, emissor e expiração e devolve as claims.
func (e *Emissor) ValidarToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(emissorPadrao),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(e.agora),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return e.segredo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalido, err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalido
	}
	if !claims.Capacidade.Papel.Valido() {
		return nil, fmt.Errorf("%w: papel %q", ErrTokenInvalido, claims.Capacidade.Papel)
	}
	return claims, nil
}
