package main

import (
	"github.com/concavehq/concave/cmd"
)

func main() {
	cmd.Execute()
}
