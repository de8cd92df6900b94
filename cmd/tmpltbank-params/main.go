// cmd/tmpltbank-params/main.go
package main

import (
	"tmpltbank/internal/app"
	"tmpltbank/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
