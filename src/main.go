package main

import (
	"bookkeeping-server/src/api"
	"bookkeeping-server/src/config"
	"bookkeeping-server/src/db"
	"bookkeeping-server/src/finance"
	"bookkeeping-server/src/twse"
	"log"
	"net/http"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	db.InitCache()

	quotes := twse.NewClient(cfg.TwseAPIURL)
	rules := finance.DefaultRules()

	// Router
	router := api.NewRouter(pool, quotes, rules, cfg.AllowedOrigins)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
