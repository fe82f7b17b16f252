package main

import (
	"context"
	"log"

	"github.com/CeDev0224/inventree/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("fulfillment API exited: %v", err)
	}
}
