package main

import (
	"github.com/AW1534/lommus/cmd"
)

func main() {
	cmd.Execute()
}
