package main

import (
	"dailybrief/cmd/handlers"
	"dailybrief/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
