package main

import (
	"fmt"
	"os"
)

// @title           Examhall API
// @version         1.0
// @description     Generates randomized tests from a question bank, records answers and scores them by difficulty.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
