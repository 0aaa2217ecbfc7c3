package main

import (
	"os"

	"github.com/GoRadius-Admin/GoRadius-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
