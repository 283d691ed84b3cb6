package main

import (
	"fmt"
	"syscall"

	"github.com/kashafa/tadreeb-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Hashes the admin panel secret for the ADMIN_SECRET_HASH environment
// variable so the plaintext never has to live in deployment config.
func main() {
	cfg := config.Load()

	fmt.Println("=== Hash Admin Secret ===")
	fmt.Print("Enter Secret: ")
	byteSecret, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading secret")
		return
	}
	secret := string(byteSecret)
	fmt.Println() // Newline after hidden input
	if len(secret) < 12 {
		fmt.Println("Error: Secret must be at least 12 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cfg.BcryptCost)
	if err != nil {
		fmt.Printf("Error hashing secret: %v\n", err)
		return
	}

	fmt.Println("\nAdd this to the environment:")
	fmt.Printf("ADMIN_SECRET_HASH=%s\n", string(hash))
}
