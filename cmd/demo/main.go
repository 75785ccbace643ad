package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Paulescu/crypto-sentiment-with-llms/internal/config"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/signal"
	"github.com/joho/godotenv"
)

var examples = []string{
	// positive signal
	"Trump Said appoints Crypto Lawyer Teresa Goody Guillén to Lead SEC",
	// negative signal
	"FED to increase interest rates",
	// non-relevant
	"City Holder Daily Combo and Daily Quiz November 22, 2024",
	"The grass is green",
}

func main() {
	godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	extractor, err := signal.FromConfig(cfg.Backend())
	if err != nil {
		log.Fatalf("error creating extractor: %v", err)
	}

	ctx := context.Background()
	for _, text := range examples {
		result, err := extractor.GetSignal(ctx, text)
		if err != nil {
			log.Fatalf("error extracting signal for %q: %v", text, err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("error encoding signal: %v", err)
		}

		fmt.Println(text)
		fmt.Println(string(out))
	}
}
