package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"chatpoker-server/internal/config"
	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "chatpoker.server"

// Audience is the intended JWT audience
const Audience = "chatpoker.table"

// TTL is how long a signed token stays valid
const TTL = time.Hour * 24 * 30

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// Claims identify the chat user holding the token
// The subject is the chat user id, which is also the seat address
type Claims struct {
	jwtgo.RegisteredClaims
	Name string `json:"name"`
}

// LoadKeys will load the public and private keys
// this method should only be called once.
func LoadKeys() error {
	cfg := config.Instance().JWT

	var err error
	if privateKey, err = loadPrivateKey(cfg.PrivateKey); err != nil {
		return err
	}

	publicKey, err = loadPublicKey(cfg.PublicKey)
	return err
}

// LoadPublicKey loads only the public key, which is all that validating tokens requires
func LoadPublicKey() error {
	var err error
	publicKey, err = loadPublicKey(config.Instance().JWT.PublicKey)
	return err
}

// SetKeys replaces the keys. This is intended for tests
func SetKeys(private *rsa.PrivateKey, public *rsa.PublicKey) {
	privateKey = private
	publicKey = public
}

// Sign will sign a JWT for the chat user
func Sign(userID, name string) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, Claims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience:  jwtgo.ClaimStrings{Audience},
			ExpiresAt: jwtgo.NewNumericDate(now.Add(TTL)),
			ID:        uuid.New().String(),
			IssuedAt:  jwtgo.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   userID,
		},
		Name: name,
	})

	return token.SignedString(privateKey)
}

// Validate will validate a signed JWT and return its claims
func Validate(signedString string) (*Claims, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &Claims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	}, jwtgo.WithAudience(Audience), jwtgo.WithIssuer(Issuer))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("expected *jwt.Claims, got %T", token.Claims)
	}

	if !token.Valid || claims.Subject == "" {
		logrus.Warn("token claims were not valid. did not expect to reach this code")
		return nil, errors.New("claims were not valid")
	}

	return claims, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read public key: %w", err)
	}

	key, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return key, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read private key: %w", err)
	}

	key, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return key, nil
}
