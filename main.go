package main

import (
	"os"

	"github.com/GoACL-Admin/GoACL-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
