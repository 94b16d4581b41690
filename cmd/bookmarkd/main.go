package main

import (
	"log"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ bookmarkd failed to start: %v", err)
	}
}
