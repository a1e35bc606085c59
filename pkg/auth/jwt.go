package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GameClaims bind a client to one game. The token is issued when the
// game is created and must accompany every move, suggestion, and
// websocket init for that game, so a browser refresh can resume play but
// strangers cannot drive someone else's board.
type GameClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// GenerateGameToken creates a signed token for gameID.
func GenerateGameToken(gameID, secret string, ttl time.Duration) (string, error) {
	claims := &GameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateGameToken validates a game token and returns its claims.
func ValidateGameToken(tokenString, secret string) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
