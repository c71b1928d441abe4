// cmd/indelfix/main.go
package main

import (
	"os"

	"indelfix/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr))
}
