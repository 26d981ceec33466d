package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cfg := LoadConfig()

	if err := Execute(context.Background(), cfg); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
