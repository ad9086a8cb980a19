// cmd/realign-windows/main.go
package main

import (
	"realign/internal/appshell"
	"realign/internal/windowsapp"
)

func main() {
	appshell.Main(windowsapp.RunContext)
}
