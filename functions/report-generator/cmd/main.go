package main

import (
	"log"
	"os"

	// Blank import to register the functions
	_ "github.com/Cam55-baseball/hammer-ai-huddle-sub006/functions/report-generator"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
)

func main() {
	port := "8080"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}
	if err := funcframework.Start(port); err != nil {
		log.Fatalf("funcframework.Start: %v\n", err)
	}
}
