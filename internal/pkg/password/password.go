package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for stored credentials.
const Cost = 12

func Hash(plain string) (string, error) {
	return HashWithCost(plain, Cost)
}

func HashWithCost(plain string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
