package main

import (
	"log"
	"net/http"

	"chemgraph/internal/api"
	"chemgraph/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	h := api.NewServer(cfg)
	log.Printf("chemgraph api listening on %s data_in=%s data_out=%s", cfg.APIAddr, cfg.DataInRoot, cfg.DataOutRoot)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
