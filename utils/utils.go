package utils

import "strings"

// NormalizeSignature recovers a bare transaction signature from user input,
// stripping whitespace and pasted explorer URLs.
func NormalizeSignature(input string) string {
	signature := strings.TrimSpace(input)
	for _, prefix := range []string{"solscan.io/tx/", "explorer.solana.com/tx/"} {
		if idx := strings.Index(signature, prefix); idx != -1 {
			signature = signature[idx+len(prefix):]
			if q := strings.IndexAny(signature, "?#"); q != -1 {
				signature = signature[:q]
			}
			signature = strings.TrimSpace(signature)
		}
	}
	return signature
}

func ShortenAddress(address string) string {
	if len(address) <= 8 {
		return address
	}
	return address[:4] + "..." + address[len(address)-4:]
}
