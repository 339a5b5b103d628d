package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador curto para planos e testes de criativo
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 8)
}

// MustGenerateID gera um identificador curto, com fallback determinístico
// apenas em caso de falha do gerador de entropia
func MustGenerateID() string {
	id, err := gonanoid.Generate(characters, 8)
	if err != nil {
		return "00000000"
	}
	return id
}
