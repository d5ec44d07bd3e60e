package main

import (
	"github.com/minishop/order/internal/app"
	"github.com/minishop/order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
