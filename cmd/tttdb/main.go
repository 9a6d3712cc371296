package main

import (
	"github.com/joho/godotenv"

	"github.com/Workflow-Manager-admin/tictactoe-db-init/internal/cli"
)

func main() {
	// .env is optional; DATABASE_URL may arrive through it.
	_ = godotenv.Load()

	cli.Execute()
}
