package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const tokenTTL = time.Hour * 24

type AuthService interface {
	GenerateToken(identity string) (string, error)
	ResolveIdentity(credential string) (string, error)
}

type authServiceImpl struct {
	secretKey []byte
}

func NewAuthService(secretKey string) AuthService {
	return &authServiceImpl{
		secretKey: []byte(secretKey),
	}
}

func (that *authServiceImpl) GenerateToken(identity string) (string, error) {
	claims := jwt.MapClaims{}
	claims["sub"] = identity
	claims["email"] = identity
	claims["exp"] = time.Now().Add(tokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ResolveIdentity verifies an HS256 token and returns its subject,
// falling back to the email claim for tokens issued without one.
func (that *authServiceImpl) ResolveIdentity(credential string) (string, error) {
	if credential == "" {
		return "", fmt.Errorf("%w: empty credential", apperror.ErrUnauthenticated)
	}

	token, err := jwt.Parse(credential, func(*jwt.Token) (any, error) {
		return that.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: unexpected claims", apperror.ErrUnauthenticated)
	}

	identity, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrUnauthenticated, err)
	}

	if identity == "" {
		identity, _ = claims["email"].(string)
	}

	if identity == "" {
		return "", fmt.Errorf("%w: token has no identity", apperror.ErrUnauthenticated)
	}

	return identity, nil
}
