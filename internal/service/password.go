package service

import "golang.org/x/crypto/bcrypt"

// passwordCost es el factor de trabajo fijo para bcrypt.
const passwordCost = 12

// PasswordHasher encapsula hashing y verificación de contraseñas.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() PasswordHasher {
	return PasswordHasher{cost: passwordCost}
}

func (p PasswordHasher) Hash(plaintext string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Verify devuelve false ante cualquier mismatch, incluso con un hash
// almacenado malformado; nunca propaga el error.
func (p PasswordHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
