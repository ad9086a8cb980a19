// cmd/realign/main.go
package main

import (
	"realign/internal/app"
	"realign/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
