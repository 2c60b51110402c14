// @title       Basalt API
// @version     1.0
// @description Serviço de contas multi-sistema e serviço de recursos protegido por JWT.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"fmt"
	"os"

	"github.com/Joker-Pro-Max/Basalt/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
