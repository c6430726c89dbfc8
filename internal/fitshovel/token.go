package fitshovel

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// brokerClaims is the daemon's JWT claim set: a single write scope for the
// configured topic, adapted from
// opensciencegrid-xrootd-monitoring-shoveler/cmd/createtoken/main.go's
// MyCustomClaims.
type brokerClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// MintToken signs an RS256 JWT authorizing "write" access to topic, valid
// for validHours, using the PEM-encoded PKCS#1 private key in pemBytes.
func MintToken(pemBytes []byte, topic string, validHours int) (string, error) {
	key, err := parsePrivateKey(pemBytes)
	if err != nil {
		return "", fmt.Errorf("fitshovel: parsing token private key: %w", err)
	}

	claims := brokerClaims{
		Scope: "broker.write:fit-records/" + topic,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(validHours) * time.Hour)),
			Issuer:    "fitshovel",
			Audience:  jwt.ClaimStrings{"fit-broker"},
			Subject:   "fitshovel",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "fitshovel"

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("fitshovel: signing token: %w", err)
	}
	return signed, nil
}

func parsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in token private key")
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	return key, nil
}
