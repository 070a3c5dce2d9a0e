package stubapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3"
)

// stClaims is the payload of the st session token the product appends to
// post-login redirect URLs.
type stClaims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
}

// signSessionToken produces the compact JWS carried in the st query param.
func (s *Server) signSessionToken(sess *session) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: s.tokenSecret},
		(&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return "", fmt.Errorf("build token signer: %w", err)
	}
	payload, err := json.Marshal(stClaims{
		SessionID: sess.id,
		Email:     sess.email,
		IssuedAt:  time.Now().Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal token claims: %w", err)
	}
	sig, err := signer.Sign(payload)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return sig.CompactSerialize()
}

// verifySessionToken checks the signature and returns the session id.
func (s *Server) verifySessionToken(token string) (string, error) {
	obj, err := jose.ParseSigned(token)
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	payload, err := obj.Verify(s.tokenSecret)
	if err != nil {
		return "", fmt.Errorf("verify session token: %w", err)
	}
	var claims stClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("decode session token claims: %w", err)
	}
	if claims.SessionID == "" {
		return "", fmt.Errorf("session token missing sid")
	}
	return claims.SessionID, nil
}
